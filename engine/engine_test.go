package engine

import (
	"testing"

	"github.com/colorcount/colorcount/comb"
	"github.com/colorcount/colorcount/graph"
	"github.com/colorcount/colorcount/template"
)

// buildPath3 returns the P3 template: a path on 3 vertices, 0-1-2.
func buildPath3() *template.Tree {
	return &template.Tree{N: 3, Adj: [][]int{{1}, {0, 2}, {1}}}
}

func runScenario(t *testing.T, g *graph.CSC, tmpl *template.Tree, r int, seed uint64) int64 {
	t.Helper()

	chain, err := template.Decompose(tmpl)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	auto := template.Automorphisms(tmpl)

	size := make([]int, len(chain.Nodes))
	main := make([]int, len(chain.Nodes))
	aux := make([]int, len(chain.Nodes))
	for i, node := range chain.Nodes {
		size[i], main[i], aux[i] = node.Size, node.Main, node.Aux
	}
	idx := comb.Build(tmpl.N, size, main, aux)

	eng := New(g, idx, ChainFromTemplate(chain), Options{Workers: 2, BaseSeed: seed})
	defer eng.Close()

	count, err := eng.Run(r, auto)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return count
}

// TestTriangleCountsP3 grounds scenario S1: K3 contains 3 unordered copies
// of P3.
func TestTriangleCountsP3(t *testing.T) {
	g, err := graph.BuildCSC(3, []int32{0, 0, 1}, []int32{1, 2, 2})
	if err != nil {
		t.Fatalf("BuildCSC: %v", err)
	}

	count := runScenario(t, g, buildPath3(), 200, 1)
	if diff := count - 3; diff > 1 || diff < -1 {
		t.Errorf("triangle P3 count = %d, want within 1 of 3", count)
	}
}

// TestCycle4CountsP3 grounds scenario S2: C4 contains 4 unordered copies of
// P3.
func TestCycle4CountsP3(t *testing.T) {
	g, err := graph.BuildCSC(4, []int32{0, 1, 2, 3}, []int32{1, 2, 3, 0})
	if err != nil {
		t.Fatalf("BuildCSC: %v", err)
	}

	count := runScenario(t, g, buildPath3(), 200, 2)
	if diff := count - 4; diff > 1 || diff < -1 {
		t.Errorf("C4 P3 count = %d, want within 1 of 4", count)
	}
}

// TestStarCountsP3 grounds scenario S3: K_{1,5} contains C(5,2)=10
// unordered copies of P3 (one per pair of leaves through the center).
func TestStarCountsP3(t *testing.T) {
	g, err := graph.BuildCSC(6,
		[]int32{0, 0, 0, 0, 0},
		[]int32{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("BuildCSC: %v", err)
	}

	count := runScenario(t, g, buildPath3(), 500, 3)
	if diff := count - 10; diff > 2 || diff < -2 {
		t.Errorf("star P3 count = %d, want within 2 of 10", count)
	}
}

func TestRunRejectsNonPositiveIterations(t *testing.T) {
	g, err := graph.BuildCSC(3, []int32{0, 0, 1}, []int32{1, 2, 2})
	if err != nil {
		t.Fatalf("BuildCSC: %v", err)
	}
	tmpl := buildPath3()
	chain, err := template.Decompose(tmpl)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	size := make([]int, len(chain.Nodes))
	main := make([]int, len(chain.Nodes))
	aux := make([]int, len(chain.Nodes))
	for i, node := range chain.Nodes {
		size[i], main[i], aux[i] = node.Size, node.Main, node.Aux
	}
	idx := comb.Build(tmpl.N, size, main, aux)
	eng := New(g, idx, ChainFromTemplate(chain), Options{Workers: 1})
	defer eng.Close()

	if _, err := eng.Run(0, 2); err == nil {
		t.Error("Run(0, ...) should reject a non-positive iteration count")
	}
}

func TestColorfulProbabilityMatchesFormula(t *testing.T) {
	got := colorfulProbability(3)
	want := 6.0 / 27.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("colorfulProbability(3) = %v, want %v", got, want)
	}
}

func TestDeriveSeedVariesWithIteration(t *testing.T) {
	a := deriveSeed(0, 0, 42)
	b := deriveSeed(1, 0, 42)
	if a == b {
		t.Error("deriveSeed should differ across iterations")
	}
}
