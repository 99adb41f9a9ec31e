package graph

// Partitioned holds a CSC adjacency matrix split into P row-range-disjoint
// partitions. Each partition p owns rows in [p*perPiece, min((p+1)*perPiece, n))
// and stores its (col, row) pairs in column order, preserved from the source
// CSC. Vals are omitted from the partition arrays: adjacency is always 0/1,
// so the SpMV/SpMM kernels are add-only (the multiply by 1.0 is elided).
type Partitioned struct {
	G        *CSC
	P        int
	PerPiece int
	Cols     [][]int32 // Cols[p][i], Rows[p][i] is the i-th non-zero owned by partition p
	Rows     [][]int32
}

// Split partitions g's non-zeros into p row-range-disjoint groups: for
// every non-zero (c, r), place it into partition min(r/perPiece, p-1),
// preserving column order within each partition.
func Split(g *CSC, p int) *Partitioned {
	if p < 1 {
		p = 1
	}
	perPiece := (g.N + p - 1) / p
	if perPiece == 0 {
		perPiece = 1
	}

	cols := make([][]int32, p)
	rows := make([][]int32, p)

	for c := 0; c < g.N; c++ {
		for _, r := range g.Column(c) {
			owner := int(r) / perPiece
			if owner >= p {
				owner = p - 1
			}
			cols[owner] = append(cols[owner], int32(c))
			rows[owner] = append(rows[owner], r)
		}
	}

	return &Partitioned{G: g, P: p, PerPiece: perPiece, Cols: cols, Rows: rows}
}
