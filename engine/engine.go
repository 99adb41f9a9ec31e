// Package engine drives the per-iteration color-coding recurrence: random
// vertex coloring, bottom-up subtemplate fill via the graph package's
// SpMV/SpMM kernels and the counttable package's FMA primitives, and final
// normalization by colorful-embedding probability and automorphism count.
package engine

import (
	"math"
	"math/rand"

	"github.com/colorcount/colorcount/cerr"
	"github.com/colorcount/colorcount/comb"
	"github.com/colorcount/colorcount/counttable"
	"github.com/colorcount/colorcount/graph"
	"github.com/colorcount/colorcount/simd"
	"github.com/colorcount/colorcount/simd/workerpool"
	"github.com/colorcount/colorcount/template"
)

// Chain is the decomposition a CountEngine runs its recurrence over: entry
// s has vertex count Size[s]; non-leaf s has children Main[s] and Aux[s]
// with indices strictly less than s; leaves have Main[s] == Aux[s] == -1.
// The last entry is always the root (the full template).
type Chain struct {
	Size []int
	Main []int
	Aux  []int
}

// ChainFromTemplate flattens a template.Chain's Subtemplate slice into the
// parallel-array form the counting engine drives its recurrence over.
func ChainFromTemplate(c *template.Chain) Chain {
	out := Chain{
		Size: make([]int, len(c.Nodes)),
		Main: make([]int, len(c.Nodes)),
		Aux:  make([]int, len(c.Nodes)),
	}
	for i, node := range c.Nodes {
		out.Size[i] = node.Size
		out.Main[i] = node.Main
		out.Aux[i] = node.Aux
	}
	return out
}

// Options configures a counting run.
type Options struct {
	Workers int
	UseSPMM bool
	// BaseSeed seeds the per-iteration RNG deterministically, replacing a
	// wall-clock reseed with a reproducible one.
	BaseSeed uint64
	// SaturationMax is the magnitude above which a post-kernel value is
	// treated as numeric saturation. Zero selects a default.
	SaturationMax float32
}

// CountEngine owns the partitioned graph, combination indexer, and worker
// pool for a counting run and drives the DP recurrence across iterations.
type CountEngine struct {
	g     *graph.CSC
	part  *graph.Partitioned
	pool  *workerpool.Pool
	idx   *comb.Indexer
	chain Chain
	k     int
	opts  Options
}

const defaultSaturationMax = 1e30

// New builds a CountEngine over g for the given decomposition chain and
// index tables. The graph is split into 4*Workers row-range-disjoint
// partitions and a worker pool sized to Workers is created; both are
// reused for the engine's entire lifetime.
func New(g *graph.CSC, idx *comb.Indexer, chain Chain, opts Options) *CountEngine {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.SaturationMax == 0 {
		opts.SaturationMax = defaultSaturationMax
	}
	part := graph.Split(g, 4*opts.Workers)
	pool := workerpool.New(opts.Workers)
	return &CountEngine{g: g, part: part, pool: pool, idx: idx, chain: chain, k: idx.K, opts: opts}
}

// Close shuts down the engine's worker pool. Safe to call once.
func (e *CountEngine) Close() { e.pool.Close() }

// Run executes r independent color-coding iterations and returns the
// normalized subgraph count, correcting for colorful-embedding probability
// and the template's automorphism count.
func (e *CountEngine) Run(r int, automorphisms int) (int64, error) {
	if r <= 0 {
		return 0, cerr.New(cerr.MalformedInput, "iteration count must be positive, got %d", r)
	}
	if automorphisms <= 0 {
		return 0, cerr.New(cerr.InvariantViolated, "automorphism count must be positive, got %d", automorphisms)
	}

	var total float64
	for it := 0; it < r; it++ {
		raw, err := e.runIteration(uint64(it))
		if err != nil {
			return 0, err
		}
		total += raw
	}

	avg := total / float64(r)
	pColorful := colorfulProbability(e.k)
	count := math.Round(avg / (pColorful * float64(automorphisms)))
	return int64(count), nil
}

// colorfulProbability is the chance that a uniform random coloring with k
// colors over k vertices assigns every vertex a distinct color: k!/k^k.
func colorfulProbability(k int) float64 {
	num := 1.0
	for i := 0; i < k; i++ {
		num *= float64(k - i)
	}
	return num / math.Pow(float64(k), float64(k))
}

func (e *CountEngine) runIteration(iteration uint64) (float64, error) {
	n := e.g.N
	N := len(e.chain.Size)
	root := N - 1

	color := make([]int32, n)
	e.sampleColoring(iteration, color)

	tbl := counttable.New(n, N)
	tbl.InitRoot()

	scaled := false

	for s := 0; s < N; s++ {
		if e.chain.Size[s] == 1 {
			continue
		}

		mainIdx, auxIdx := e.chain.Main[s], e.chain.Aux[s]
		wMain, wAux := e.chain.Size[mainIdx], e.chain.Size[auxIdx]

		effective := e.idx.EffectiveAuxIndices(s)
		auxProducts, err := e.preMultiplyAux(tbl, auxIdx, wAux, color, effective, n)
		if err != nil {
			return 0, err
		}
		if wAux != 1 {
			for alpha, y := range auxProducts {
				copy(tbl.Column(auxIdx, alpha), y)
			}
		}

		lS := e.idx.L[s]
		if s != root {
			tbl.Init(s, lS)
		}

		// The scale-down decision for this subtemplate's entire double loop
		// is made once, on entry: the first non-root, non-leaf subtemplate
		// processed in the iteration scales every one of its combine calls
		// (the root always accumulates unscaled through FMALast), and every
		// subtemplate after it runs unscaled. A call is never individually
		// gated on scaled mid-loop, or every other call in the same
		// destination column would mix scaled and unscaled magnitudes.
		useScale := s != root && !scaled

		numSplits := len(e.idx.MainSplit[s][0])
		for i := 0; i < lS; i++ {
			for j := 0; j < numSplits; j++ {
				auxSlot := e.idx.AuxSplit[s][i][j]
				mainSlot := e.idx.MainSplit[s][i][j]

				var a []float32
				if wAux == 1 {
					a = auxProducts[auxSlot]
				} else {
					a = tbl.Column(auxIdx, auxSlot)
				}

				var b []float32
				if wMain == 1 {
					b = make([]float32, n)
					counttable.MaterializeLeaf(color, mainSlot, b)
				} else {
					b = tbl.Column(mainIdx, mainSlot)
				}

				if s == root {
					counttable.FMALast(e.pool, tbl.RootAccum(), a, b)
					continue
				}

				dst := tbl.Column(s, i)
				if useScale {
					counttable.FMAScale(e.pool, dst, a, b, counttable.ScaleDown)
				} else {
					counttable.FMA(e.pool, dst, a, b)
				}
			}
		}

		if useScale {
			scaled = true
		}

		tbl.Release(mainIdx)
		tbl.Release(auxIdx)
	}

	recover := 1.0
	if scaled {
		recover = counttable.ScaleUp
	}

	var sum float64
	for _, v := range tbl.RootAccum() {
		sum += v
	}
	return recover * sum, nil
}

// preMultiplyAux computes y = A*x for every effective aux column, batching
// B columns at a time through SpMM when UseSPMM is set, else one SpMV per
// column. x is either a leaf's implicit color indicator or a non-leaf
// child's already-filled table column.
func (e *CountEngine) preMultiplyAux(tbl *counttable.Table, auxIdx, wAux int, color []int32, effective []int, n int) (map[int][]float32, error) {
	out := make(map[int][]float32, len(effective))

	loadColumn := func(alpha int, dst []float32) {
		if wAux == 1 {
			counttable.MaterializeLeaf(color, alpha, dst)
		} else {
			copy(dst, tbl.Column(auxIdx, alpha))
		}
	}

	if !e.opts.UseSPMM {
		for _, alpha := range effective {
			x := make([]float32, n)
			loadColumn(alpha, x)
			y := make([]float32, n)
			graph.SpMV(e.part, e.pool, x, y)
			if err := e.checkSaturation(auxIdx, y); err != nil {
				return nil, err
			}
			out[alpha] = y
		}
		return out, nil
	}

	b := simd.BatchWidth()
	for start := 0; start < len(effective); start += b {
		end := min(start+b, len(effective))
		batch := effective[start:end]

		x := make([]float32, n*b)
		y := make([]float32, n*b)
		for k, alpha := range batch {
			loadColumn(alpha, x[k*n:(k+1)*n])
		}

		graph.SpMM(e.part, e.pool, x, y, b)

		for k, alpha := range batch {
			col := y[k*n : (k+1)*n]
			if err := e.checkSaturation(auxIdx, col); err != nil {
				return nil, err
			}
			dst := make([]float32, n)
			copy(dst, col)
			out[alpha] = dst
		}
	}
	return out, nil
}

func (e *CountEngine) checkSaturation(s int, col []float32) error {
	max := e.opts.SaturationMax
	for start := 0; start < len(col); start += simd.MaxLanes() {
		end := min(start+simd.MaxLanes(), len(col))
		lane := simd.Load(col[start:end])
		if !simd.IsFinite(lane) {
			return cerr.NewAt(cerr.Saturation, s, "non-finite value in column at offset %d", start)
		}
		for _, x := range lane.Data() {
			if x > max || x < -max {
				return cerr.NewAt(cerr.Saturation, s, "value %v exceeds saturation threshold %v", x, max)
			}
		}
	}
	return nil
}

// sampleColoring fills color with a uniform-random value in [0, k) per
// vertex, seeded deterministically from the iteration index and the
// engine's base seed so runs are reproducible.
func (e *CountEngine) sampleColoring(iteration uint64, color []int32) {
	seed := deriveSeed(iteration, 0, e.opts.BaseSeed)
	rng := rand.New(rand.NewSource(int64(seed)))
	for v := range color {
		color[v] = int32(rng.Intn(e.k))
	}
}

// deriveSeed combines an iteration index, a worker/thread index, and a base
// seed into one deterministic 64-bit seed, replacing wall-clock reseeding
// with a reproducible scheme.
func deriveSeed(iteration, threadIndex, baseSeed uint64) uint64 {
	h := baseSeed
	h ^= iteration + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	h ^= threadIndex + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	return h
}
