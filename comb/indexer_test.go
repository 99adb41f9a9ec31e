package comb

import "testing"

func TestRankUnrankColexRoundTrip(t *testing.T) {
	b := NewBinom(6)
	universe := 6
	for w := 1; w <= universe; w++ {
		total := int(b.C(universe, w))
		for r := 0; r < total; r++ {
			subset := b.UnrankColex(r, w, universe)
			got := b.RankColex(subset)
			if got != r {
				t.Fatalf("w=%d r=%d: unrank then rank = %d", w, r, got)
			}
		}
	}
}

func TestRankColexOrderMatchesKnownSequence(t *testing.T) {
	b := NewBinom(4)
	want := [][]int{
		{0, 1}, {0, 2}, {1, 2}, {0, 3}, {1, 3}, {2, 3},
	}
	for r, subset := range want {
		got := b.UnrankColex(r, 2, 4)
		if len(got) != len(subset) {
			t.Fatalf("rank %d: length mismatch", r)
		}
		for i := range subset {
			if got[i] != subset[i] {
				t.Fatalf("rank %d: got %v, want %v", r, got, subset)
			}
		}
	}
}

// buildChainForTest builds a 3-level chain: two leaves (size 1) combine
// into a size-2 parent, which combines with a third leaf into a size-3
// root. Mirrors a path template P3 decomposition.
func buildChainForTest() (size, main, aux []int) {
	size = []int{1, 1, 1, 2, 3}
	main = []int{-1, -1, -1, 0, 3}
	aux = []int{-1, -1, -1, 1, 2}
	return
}

func TestIndexerSplitsPartitionEverySubsetExactlyOnce(t *testing.T) {
	k := 3
	size, main, aux := buildChainForTest()
	idx := Build(k, size, main, aux)

	for s := range size {
		if main[s] < 0 {
			continue
		}
		w := size[s]
		wMain := size[main[s]]
		wAux := size[aux[s]]

		for i := 0; i < idx.L[s]; i++ {
			sigma := idx.Binom.UnrankColex(i, w, k)
			seen := map[[2]int]bool{}
			for j := range idx.MainSplit[s][i] {
				key := [2]int{idx.MainSplit[s][i][j], idx.AuxSplit[s][i][j]}
				if seen[key] {
					t.Fatalf("s=%d i=%d: split %v repeated", s, i, key)
				}
				seen[key] = true

				mainSet := idx.Binom.UnrankColex(idx.MainSplit[s][i][j], wMain, k)
				auxSet := idx.Binom.UnrankColex(idx.AuxSplit[s][i][j], wAux, k)
				union := append(append([]int{}, mainSet...), auxSet...)
				if len(union) != len(sigma) {
					t.Fatalf("s=%d i=%d j=%d: union size %d, want %d", s, i, j, len(union), len(sigma))
				}
			}
			wantSplits := int(idx.Binom.C(w, wMain))
			if len(seen) != wantSplits {
				t.Fatalf("s=%d i=%d: got %d distinct splits, want %d", s, i, len(seen), wantSplits)
			}
		}
	}
}

func TestLeafSubCToCountIsIdentity(t *testing.T) {
	k := 3
	size, main, aux := buildChainForTest()
	idx := Build(k, size, main, aux)
	for c := 0; c < k; c++ {
		if idx.SubCToCount[0][c] != c {
			t.Errorf("leaf slot for color %d = %d, want %d", c, idx.SubCToCount[0][c], c)
		}
	}
}

func TestEffectiveAuxIndicesDeduplicated(t *testing.T) {
	k := 3
	size, main, aux := buildChainForTest()
	idx := Build(k, size, main, aux)

	eff := idx.EffectiveAuxIndices(4) // root, aux child = subtemplate 2 (leaf)
	seen := map[int]bool{}
	for _, a := range eff {
		if seen[a] {
			t.Fatalf("duplicate effective aux index %d", a)
		}
		seen[a] = true
	}
}
