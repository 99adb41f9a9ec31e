// Command colorcount counts non-induced occurrences of a tree-shaped
// template pattern inside a host graph via color coding, expressed as
// SpMV/SpMM kernels over a CSC-partitioned adjacency matrix.
//
// Usage:
//
//	colorcount graph.txt template.txt R workers load_binary write_binary \
//	    [pruned] [use_spmm] [profile_trigger_subtemplate_index] [benchmark_iterations]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/colorcount/colorcount/cerr"
	"github.com/colorcount/colorcount/comb"
	"github.com/colorcount/colorcount/engine"
	"github.com/colorcount/colorcount/graph"
	"github.com/colorcount/colorcount/simd"
	"github.com/colorcount/colorcount/template"
)

type args struct {
	graphPath           string
	templatePath        string
	r                   int
	workers             int
	loadBinary          bool
	writeBinary         bool
	pruned              bool
	useSPMM             bool
	profileTriggerSub   int
	benchmarkIterations int
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fail(cerr.New(cerr.MalformedInput, "%v", err))
	}

	if err := run(a); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "colorcount: %v\n", err)
	if ce, ok := err.(*cerr.Error); ok {
		os.Exit(ce.Kind.ExitCode())
	}
	os.Exit(1)
}

func parseArgs(argv []string) (args, error) {
	if len(argv) < 6 {
		return args{}, fmt.Errorf("usage: colorcount graph template R workers load_binary write_binary [pruned] [use_spmm] [profile_trigger_subtemplate_index] [benchmark_iterations]")
	}

	a := args{
		graphPath:           argv[0],
		templatePath:        argv[1],
		pruned:              true,
		useSPMM:             true,
		profileTriggerSub:   -1,
		benchmarkIterations: 1,
	}

	var err error
	if a.r, err = strconv.Atoi(argv[2]); err != nil {
		return args{}, fmt.Errorf("iteration count R: %w", err)
	}
	if a.workers, err = strconv.Atoi(argv[3]); err != nil {
		return args{}, fmt.Errorf("worker thread count: %w", err)
	}
	if a.loadBinary, err = parseBool(argv[4]); err != nil {
		return args{}, fmt.Errorf("load_binary: %w", err)
	}
	if a.writeBinary, err = parseBool(argv[5]); err != nil {
		return args{}, fmt.Errorf("write_binary: %w", err)
	}
	if len(argv) > 6 {
		if a.pruned, err = parseBool(argv[6]); err != nil {
			return args{}, fmt.Errorf("pruned: %w", err)
		}
	}
	if len(argv) > 7 {
		if a.useSPMM, err = parseBool(argv[7]); err != nil {
			return args{}, fmt.Errorf("use_spmm: %w", err)
		}
	}
	if len(argv) > 8 {
		if a.profileTriggerSub, err = strconv.Atoi(argv[8]); err != nil {
			return args{}, fmt.Errorf("profile_trigger_subtemplate_index: %w", err)
		}
	}
	if len(argv) > 9 {
		if a.benchmarkIterations, err = strconv.Atoi(argv[9]); err != nil {
			return args{}, fmt.Errorf("benchmark_iterations: %w", err)
		}
	}
	return a, nil
}

func parseBool(s string) (bool, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func run(a args) error {
	fmt.Printf("colorcount: simd=%s workers=%d\n", simd.CurrentName(), a.workers)

	loadStart := time.Now()
	g, err := loadGraph(a)
	if err != nil {
		return err
	}
	fmt.Printf("graph loaded: n=%d nnz=%d (%s)\n", g.N, g.NNZ(), time.Since(loadStart))

	if a.writeBinary {
		if err := writeGraphBinary(a.graphPath, g); err != nil {
			return err
		}
	}

	tf, err := os.Open(a.templatePath)
	if err != nil {
		return cerr.New(cerr.IoError, "opening template %q: %w", a.templatePath, err)
	}
	defer tf.Close()

	t, err := template.ReadTree(tf)
	if err != nil {
		return err
	}

	chain, err := template.Decompose(t)
	if err != nil {
		return err
	}
	automorphisms := template.Automorphisms(t)
	fmt.Printf("template: k=%d subtemplates=%d automorphisms=%d\n", t.N, len(chain.Nodes), automorphisms)

	size := make([]int, len(chain.Nodes))
	mainOf := make([]int, len(chain.Nodes))
	auxOf := make([]int, len(chain.Nodes))
	for i, node := range chain.Nodes {
		size[i], mainOf[i], auxOf[i] = node.Size, node.Main, node.Aux
	}
	idx := comb.Build(t.N, size, mainOf, auxOf)

	peak := estimatePeakBytes(g, idx, chain)
	fmt.Printf("peak memory estimate: %d bytes\n", peak)

	eng := engine.New(g, idx, engine.ChainFromTemplate(chain), engine.Options{
		Workers: a.workers,
		UseSPMM: a.useSPMM,
	})
	defer eng.Close()

	var count int64
	countStart := time.Now()
	for i := 0; i < a.benchmarkIterations; i++ {
		count, err = eng.Run(a.r, automorphisms)
		if err != nil {
			return err
		}
	}
	fmt.Printf("counting done: %s\n", time.Since(countStart))

	fmt.Printf("Final count is %d\n", count)
	return nil
}

func loadGraph(a args) (*graph.CSC, error) {
	f, err := os.Open(a.graphPath)
	if err != nil {
		return nil, cerr.New(cerr.IoError, "opening graph %q: %w", a.graphPath, err)
	}
	defer f.Close()

	if a.loadBinary {
		return graph.ReadBinary(f)
	}
	return graph.ReadEdgeList(f)
}

func writeGraphBinary(graphPath string, g *graph.CSC) error {
	outPath := graphPath + ".bin"
	f, err := os.Create(outPath)
	if err != nil {
		return cerr.New(cerr.IoError, "creating %q: %w", outPath, err)
	}
	defer f.Close()
	return graph.WriteBinary(f, g)
}

// estimatePeakBytes reports Σ_{live s} L_s * n * 4 + graph_bytes, an upper
// bound taken over every subtemplate's table size rather than tracking the
// driver's actual live set, which is cheap to compute up front and always
// overestimates.
func estimatePeakBytes(g *graph.CSC, idx *comb.Indexer, chain *template.Chain) int64 {
	var tables int64
	for s := range chain.Nodes {
		tables += int64(idx.L[s]) * int64(g.N) * 4
	}
	graphBytes := int64(len(g.ColPtr)+len(g.RowIdx))*4 + int64(len(g.Vals))*4
	return tables + graphBytes
}
