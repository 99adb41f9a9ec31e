package comb

import "sort"

// Indexer holds the per-subtemplate combination tables for a decomposed
// template over k colors: L[s] table slots per subtemplate, and the
// main_split/aux_split maps from a parent's (subset index, split index)
// onto its children's slots.
type Indexer struct {
	K     int
	Binom *Binom

	Size []int // Size[s]: vertex count of subtemplate s
	Main []int // Main[s]: index of main child, -1 for leaves
	Aux  []int // Aux[s]: index of aux child, -1 for leaves
	L    []int // L[s] = C(k, Size[s])

	// MainSplit[s][i][j] and AuxSplit[s][i][j] map the j-th way of
	// partitioning the i-th Size[s]-subset into (main, aux) parts onto the
	// main/aux children's own slot numbering. Empty for leaves.
	MainSplit [][][]int
	AuxSplit  [][][]int

	// SubCToCount[s] is the identity color-to-slot map for leaf
	// subtemplates (L[s] = k, slot == color).
	SubCToCount [][]int
}

// Build constructs the full index system for a decomposition chain of
// length len(size), given child references main/aux (main[s] == -1 marks
// a leaf) and the color count k.
func Build(k int, size, main, aux []int) *Indexer {
	n := len(size)
	b := NewBinom(k)
	idx := &Indexer{
		K: k, Binom: b,
		Size: size, Main: main, Aux: aux,
		L:           make([]int, n),
		MainSplit:   make([][][]int, n),
		AuxSplit:    make([][][]int, n),
		SubCToCount: make([][]int, n),
	}

	for s := 0; s < n; s++ {
		w := size[s]
		idx.L[s] = int(b.C(k, w))

		if main[s] < 0 {
			ident := make([]int, k)
			for c := range ident {
				ident[c] = c
			}
			idx.SubCToCount[s] = ident
			continue
		}

		wMain := size[main[s]]
		wAux := size[aux[s]]
		numSplits := int(b.C(w, wMain))

		mainSplit := make([][]int, idx.L[s])
		auxSplit := make([][]int, idx.L[s])

		for i := 0; i < idx.L[s]; i++ {
			sigma := b.UnrankColex(i, w, k)
			mainSplit[i] = make([]int, numSplits)
			auxSplit[i] = make([]int, numSplits)

			for j := 0; j < numSplits; j++ {
				mainPos := b.UnrankColex(j, wMain, w)
				inMain := make([]bool, w)
				mainSet := make([]int, 0, wMain)
				for _, p := range mainPos {
					inMain[p] = true
					mainSet = append(mainSet, sigma[p])
				}
				auxSet := make([]int, 0, wAux)
				for p := 0; p < w; p++ {
					if !inMain[p] {
						auxSet = append(auxSet, sigma[p])
					}
				}
				mainSplit[i][j] = b.RankColex(mainSet)
				auxSplit[i][j] = b.RankColex(auxSet)
			}
		}

		idx.MainSplit[s] = mainSplit
		idx.AuxSplit[s] = auxSplit
	}

	return idx
}

// EffectiveAuxIndices returns the sorted, de-duplicated set of aux child
// slots that subtemplate s's splits actually reference, so the counting
// driver only pre-multiplies columns that are used.
func (idx *Indexer) EffectiveAuxIndices(s int) []int {
	if idx.Main[s] < 0 {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, row := range idx.AuxSplit[s] {
		for _, a := range row {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	sort.Ints(out)
	return out
}
