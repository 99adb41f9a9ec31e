package counttable

// MaterializeLeaf fills dst with the implicit column of a size-1
// subtemplate's color c: dst[v] = 1 if color[v] == c, else 0.
func MaterializeLeaf(color []int32, c int, dst []float32) {
	cc := int32(c)
	for v, col := range color {
		if col == cc {
			dst[v] = 1
		} else {
			dst[v] = 0
		}
	}
}
