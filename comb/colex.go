package comb

// RankColex returns the colex rank of subset among all len(subset)-subsets
// of a universe, using the combinatorial number system: for a sorted
// subset {c_1 < c_2 < ... < c_w}, rank = sum_t C(c_t, t) (1-indexed t).
func (b *Binom) RankColex(subset []int) int {
	rank := 0
	for t, c := range subset {
		rank += int(b.C(c, t+1))
	}
	return rank
}

// UnrankColex returns the w-subset of [0, universe) with colex rank r,
// sorted ascending. It is the inverse of RankColex.
func (b *Binom) UnrankColex(r, w, universe int) []int {
	subset := make([]int, w)
	remaining := r
	for t := w; t >= 1; t-- {
		c := t - 1
		for c+1 < universe && int(b.C(c+1, t)) <= remaining {
			c++
		}
		subset[t-1] = c
		remaining -= int(b.C(c, t))
	}
	return subset
}
