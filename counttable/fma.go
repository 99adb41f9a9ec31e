package counttable

import "github.com/colorcount/colorcount/simd/workerpool"

// ScaleDown and ScaleUp are the scaling factor and its inverse applied to
// keep intermediate products representable in float32 on large graphs: every
// combine FMA of the first non-root, non-leaf subtemplate of an iteration
// scales its product down by ScaleDown, and the final root sum is multiplied
// back up by ScaleUp.
const (
	ScaleDown float32 = 1e-12
	ScaleUp   float64 = 1e+12
)

const fmaChunk = 4096

// FMA computes dst[v] += a[v]*b[v] over v in [0, n), chunked across the
// worker pool.
func FMA(pool *workerpool.Pool, dst, a, b []float32) {
	pool.RunOverVertexChunks(len(dst), fmaChunk, func(start, end int) {
		for v := start; v < end; v++ {
			dst[v] += a[v] * b[v]
		}
	})
}

// FMAScale computes dst[v] += scale*a[v]*b[v], used for the subtemplate
// whose combine loop runs scaled in a given color-coding iteration, to keep
// products from overflowing float32 on large graphs.
func FMAScale(pool *workerpool.Pool, dst, a, b []float32, scale float32) {
	pool.RunOverVertexChunks(len(dst), fmaChunk, func(start, end int) {
		for v := start; v < end; v++ {
			dst[v] += scale * a[v] * b[v]
		}
	})
}

// FMALast accumulates into a double-precision buffer, used only by the
// root subtemplate to preserve precision across the final reduction.
func FMALast(pool *workerpool.Pool, dst []float64, a, b []float32) {
	pool.RunOverVertexChunks(len(dst), fmaChunk, func(start, end int) {
		for v := start; v < end; v++ {
			dst[v] += float64(a[v]) * float64(b[v])
		}
	})
}
