package graph

import (
	"github.com/colorcount/colorcount/simd"
	"github.com/colorcount/colorcount/simd/workerpool"
)

// SpMV computes y += A*x, where A is the partitioned adjacency matrix and x
// is a dense vector of length n. The caller must zero y before the call:
// this function only accumulates. Partitions own disjoint row ranges so no
// two goroutines ever write the same y[row], and no atomic is required.
// Because A's entries are always 1.0, the multiply is elided — this is an
// add-only accumulation.
func SpMV(part *Partitioned, pool *workerpool.Pool, x, y []float32) {
	pool.RunOverPartitions(part.P, func(start, end int) {
		for p := start; p < end; p++ {
			cols, rows := part.Cols[p], part.Rows[p]
			for i := range cols {
				y[rows[i]] += x[cols[i]]
			}
		}
	})
}

// SpMM computes Y += A*X for a batch of b dense column vectors. X and Y
// are column-major (length n per column, b columns). The caller must zero
// Y before the call. Internally the batch is converted
// to stride-b row-major layout so each non-zero drives one contiguous FMA
// over a SIMD-width lane block instead of b separate SpMV passes.
func SpMM(part *Partitioned, pool *workerpool.Pool, x, y []float32, b int) {
	n := part.G.N

	xRowMajor := make([]float32, n*b)
	yRowMajor := make([]float32, n*b)
	simd.InterleaveColumnMajor(x, n, b, xRowMajor)
	// yRowMajor starts zeroed (make zero-fills); Y is caller-zeroed so this
	// matches its column-major state exactly.

	pool.RunOverPartitions(part.P, func(start, end int) {
		for p := start; p < end; p++ {
			cols, rows := part.Cols[p], part.Rows[p]
			for i := range cols {
				src := xRowMajor[int(cols[i])*b : int(cols[i])*b+b]
				dst := yRowMajor[int(rows[i])*b : int(rows[i])*b+b]
				for k := range b {
					dst[k] += src[k]
				}
			}
		}
	})

	simd.DeinterleaveToColumnMajor(yRowMajor, n, b, y)
}

// SpMVNaive is the unpartitioned reference SpMV: a single sequential pass
// over every non-zero of g, used only to check SpMV against the partitioned
// kernel in tests.
func SpMVNaive(g *CSC, x, y []float32) {
	for c := 0; c < g.N; c++ {
		for _, r := range g.Column(c) {
			y[r] += x[c]
		}
	}
}
