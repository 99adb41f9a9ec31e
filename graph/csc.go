// Package graph implements host graph ingest and the CSC-partitioned
// SpMV/SpMM kernels the counting engine drives its recurrence through.
package graph

import (
	"sort"

	"github.com/colorcount/colorcount/cerr"
)

// CSC is an undirected, simple host graph stored in compressed-sparse-column
// form. ColPtr has length N+1 and is monotone with ColPtr[N] == len(RowIdx).
// RowIdx holds, for each column, the sorted-ascending row indices of its
// non-zeros. Vals mirrors RowIdx and is always 1.0: the graph is symmetric
// and unweighted.
type CSC struct {
	N       int
	ColPtr  []int32
	RowIdx  []int32
	Vals    []float32
	NumEdge int // original edge count before symmetrization
}

// NNZ returns the number of non-zeros in the adjacency matrix.
func (g *CSC) NNZ() int {
	return len(g.RowIdx)
}

// Degree returns the degree of vertex v (equal to ColPtr[v+1]-ColPtr[v]).
func (g *CSC) Degree(v int) int {
	return int(g.ColPtr[v+1] - g.ColPtr[v])
}

// Column returns the sorted row indices of column c's non-zeros.
func (g *CSC) Column(c int) []int32 {
	return g.RowIdx[g.ColPtr[c]:g.ColPtr[c+1]]
}

// BuildCSC builds a symmetric CSC adjacency matrix from an edge list given
// as parallel src/dst slices. Vertex ids must already be compacted into
// [0, n); use CompactIDs first if the input may have holes.
//
// Construction counts degrees (one increment per endpoint, since the graph
// is undirected), prefix-sums into ColPtr, scatters into RowIdx with a
// per-column cursor, then sorts each column's row run ascending.
func BuildCSC(n int, src, dst []int32) (*CSC, error) {
	if len(src) != len(dst) {
		return nil, cerr.New(cerr.MalformedInput, "src/dst length mismatch: %d vs %d", len(src), len(dst))
	}
	for i := range src {
		if src[i] < 0 || int(src[i]) >= n || dst[i] < 0 || int(dst[i]) >= n {
			return nil, cerr.New(cerr.MalformedInput, "edge %d (%d,%d) out of range for n=%d", i, src[i], dst[i], n)
		}
	}

	deg := make([]int32, n)
	for i := range src {
		deg[dst[i]]++
		if src[i] != dst[i] {
			deg[src[i]]++
		}
	}

	colPtr := make([]int32, n+1)
	for i := 0; i < n; i++ {
		colPtr[i+1] = colPtr[i] + deg[i]
	}

	nnz := colPtr[n]
	rowIdx := make([]int32, nnz)
	vals := make([]float32, nnz)
	for i := range vals {
		vals[i] = 1.0
	}

	cursor := make([]int32, n)
	copy(cursor, colPtr[:n])

	for i := range src {
		s, d := src[i], dst[i]
		rowIdx[cursor[d]] = s
		cursor[d]++
		if s != d {
			rowIdx[cursor[s]] = d
			cursor[s]++
		}
	}

	for c := 0; c < n; c++ {
		col := rowIdx[colPtr[c]:colPtr[c+1]]
		sort.Sort(int32Slice(col))
	}

	return &CSC{N: n, ColPtr: colPtr, RowIdx: rowIdx, Vals: vals, NumEdge: len(src)}, nil
}

type int32Slice []int32

func (s int32Slice) Len() int           { return len(s) }
func (s int32Slice) Less(i, j int) bool { return s[i] < s[j] }
func (s int32Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// CompactIDs relabels a possibly sparse id space into [0, n) by rank, so
// BuildCSC's range check always succeeds. The mapping preserves relative
// order: the smallest original id maps to 0.
func CompactIDs(src, dst []int32) (newSrc, newDst []int32, n int) {
	seen := make(map[int32]struct{})
	for _, v := range src {
		seen[v] = struct{}{}
	}
	for _, v := range dst {
		seen[v] = struct{}{}
	}

	ids := make([]int32, 0, len(seen))
	for v := range seen {
		ids = append(ids, v)
	}
	sort.Sort(int32Slice(ids))

	remap := make(map[int32]int32, len(ids))
	for i, v := range ids {
		remap[v] = int32(i)
	}

	newSrc = make([]int32, len(src))
	newDst = make([]int32, len(dst))
	for i := range src {
		newSrc[i] = remap[src[i]]
		newDst[i] = remap[dst[i]]
	}
	return newSrc, newDst, len(ids)
}
