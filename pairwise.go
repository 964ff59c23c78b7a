package maplabel

type pairCost struct {
	other int // candidate
	cost  float64
}

// pairwiseCache holds, for every candidate, its unary penalty and the overlap cost
// against each intersecting candidate of another point. Built once, read-only afterwards,
// so it can be shared by concurrent fitness evaluations.
type pairwiseCache struct {
	unary []float64
	pairs [][]pairCost
	size  int // number of stored pairs
}

// buildPairwise scores every candidate with all candidates in the index.
func buildPairwise(l *Layout) *pairwiseCache {
	l.setPhase(phaseCandidates)
	pc := &pairwiseCache{
		unary: make([]float64, len(l.cands)),
		pairs: make([][]pairCost, len(l.cands)),
	}
	for c := range l.cands {
		u, o := l.score(c, func(other int, amount float64) {
			pc.pairs[c] = append(pc.pairs[c], pairCost{other, amount})
		})
		pc.unary[c] = u
		pc.size += len(pc.pairs[c])
		l.cands[c].Penalty = u + o
	}
	return pc
}
