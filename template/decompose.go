package template

import (
	"sort"

	"github.com/colorcount/colorcount/cerr"
)

// Subtemplate is one node of a decomposed template chain.
type Subtemplate struct {
	Size int
	Main int // index of main child, -1 for leaves
	Aux  int // index of aux child, -1 for leaves
	// Verts holds the original template vertex ids belonging to this
	// subtree, sorted ascending. Kept for debugging/printing only; the
	// counting engine never inspects it.
	Verts []int
}

// Chain is the ordered subtemplate decomposition of a template: N = 2k-1
// entries with children strictly preceding parents by index, sorted
// ascending by size.
type Chain struct {
	Nodes []Subtemplate
}

// Decompose builds the subtemplate chain for t by repeatedly cutting the
// tree edge whose removal yields an aux-side component as large as
// possible but not exceeding floor(w/2), recursing on both sides. Ties
// between candidate edges are broken by the smaller side's root vertex
// index. The raw post-order result is then stable-sorted ascending by
// size; since every child has strictly smaller size than its parent, the
// sort preserves the children-precede-parents
// invariant.
func Decompose(t *Tree) (*Chain, error) {
	if t.N == 0 {
		return nil, cerr.New(cerr.MalformedInput, "empty template")
	}

	var nodes []Subtemplate
	verts := make([]int, t.N)
	for i := range verts {
		verts[i] = i
	}

	root, err := decomposeRec(t, verts, &nodes)
	if err != nil {
		return nil, err
	}
	_ = root

	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return nodes[order[a]].Size < nodes[order[b]].Size
	})

	newIndex := make([]int, len(nodes))
	for newPos, oldPos := range order {
		newIndex[oldPos] = newPos
	}

	sorted := make([]Subtemplate, len(nodes))
	for oldPos, node := range nodes {
		newPos := newIndex[oldPos]
		remapped := node
		if node.Main >= 0 {
			remapped.Main = newIndex[node.Main]
			remapped.Aux = newIndex[node.Aux]
		}
		sorted[newPos] = remapped
	}

	for s, node := range sorted {
		if node.Main >= 0 && (node.Main >= s || node.Aux >= s) {
			return nil, cerr.New(cerr.InvariantViolated, "subtemplate %d: child index not less than parent", s)
		}
	}

	return &Chain{Nodes: sorted}, nil
}

// decomposeRec recursively decomposes the induced subtree on verts,
// appending every node it produces (children before the subtree's own
// entry) to chain, and returns the index of verts' own entry.
func decomposeRec(t *Tree, verts []int, chain *[]Subtemplate) (int, error) {
	w := len(verts)
	if w == 1 {
		*chain = append(*chain, Subtemplate{Size: 1, Main: -1, Aux: -1, Verts: verts})
		return len(*chain) - 1, nil
	}

	member := make(map[int]bool, w)
	for _, v := range verts {
		member[v] = true
	}

	bestSize := -1
	var bestAuxVerts []int
	var bestRoot int

	for _, u := range verts {
		for _, v := range t.Adj[u] {
			if v <= u || !member[v] {
				continue
			}
			compV := component(t, member, v, u)
			sizeV := len(compV)
			sizeU := w - sizeV

			var candVerts []int
			var candSize, candRoot int
			switch {
			case sizeV <= w/2:
				candVerts, candSize, candRoot = compV, sizeV, v
			case sizeU <= w/2:
				candVerts = complement(verts, compV)
				candSize, candRoot = sizeU, u
			default:
				continue
			}

			if candSize > bestSize || (candSize == bestSize && candRoot < bestRoot) {
				bestSize = candSize
				bestAuxVerts = candVerts
				bestRoot = candRoot
			}
		}
	}

	if bestSize < 0 {
		return 0, cerr.New(cerr.InvariantViolated, "no splitting edge found for subtree of size %d", w)
	}

	sort.Ints(bestAuxVerts)
	mainVerts := complement(verts, bestAuxVerts)
	sort.Ints(mainVerts)

	mainIdx, err := decomposeRec(t, mainVerts, chain)
	if err != nil {
		return 0, err
	}
	auxIdx, err := decomposeRec(t, bestAuxVerts, chain)
	if err != nil {
		return 0, err
	}

	*chain = append(*chain, Subtemplate{Size: w, Main: mainIdx, Aux: auxIdx, Verts: verts})
	return len(*chain) - 1, nil
}

// component returns the connected component containing start within the
// induced subtree on member, after removing the edge to exclude.
func component(t *Tree, member map[int]bool, start, exclude int) []int {
	seen := map[int]bool{start: true}
	stack := []int{start}
	var out []int
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, v)
		for _, u := range t.Adj[v] {
			if u == exclude && v == start {
				continue
			}
			if !member[u] || seen[u] {
				continue
			}
			seen[u] = true
			stack = append(stack, u)
		}
	}
	return out
}

func complement(all, subset []int) []int {
	excl := make(map[int]bool, len(subset))
	for _, v := range subset {
		excl[v] = true
	}
	out := make([]int, 0, len(all)-len(subset))
	for _, v := range all {
		if !excl[v] {
			out = append(out, v)
		}
	}
	return out
}
