// Package counttable owns the per-subtemplate dense count arrays the
// counting engine's DP recurrence fills bottom-up, plus the FMA primitives
// and numeric-scaling bookkeeping that keep values representable in
// float32.
package counttable

// Table is the arena of per-subtemplate column arrays for one color-coding
// iteration. Leaf subtemplates (size 1) are never materialized here: their
// values are implicit in the coloring vector and computed on demand via
// MaterializeLeaf.
type Table struct {
	n         int
	cols      [][][]float32 // cols[s][j] is a length-n column, nil until Init(s, ...)
	rootAccum []float64
}

// New allocates an empty table for a chain of numSubtemplates entries over
// n vertices. No per-subtemplate storage is allocated until Init.
func New(n, numSubtemplates int) *Table {
	return &Table{n: n, cols: make([][][]float32, numSubtemplates)}
}

// Init allocates l zeroed length-n columns for subtemplate s.
func (t *Table) Init(s, l int) {
	cols := make([][]float32, l)
	for j := range cols {
		cols[j] = make([]float32, t.n)
	}
	t.cols[s] = cols
}

// Column returns subtemplate s's j-th column.
func (t *Table) Column(s, j int) []float32 {
	return t.cols[s][j]
}

// Release frees subtemplate s's columns. Safe to call on an already-empty
// or never-initialized subtemplate.
func (t *Table) Release(s int) {
	t.cols[s] = nil
}

// InitRoot allocates the double-precision accumulator used by the root
// subtemplate's fma_last calls.
func (t *Table) InitRoot() {
	t.rootAccum = make([]float64, t.n)
}

// RootAccum returns the root subtemplate's double-precision accumulator.
func (t *Table) RootAccum() []float64 {
	return t.rootAccum
}
