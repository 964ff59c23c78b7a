package maplabel

// score evaluates candidate c against whatever the index currently holds.
//
// unary is the part that does not depend on other labels: the position bias, every
// foreign point disc the candidate touches, and the border (counted once even when a
// corner candidate crosses two sentinels). overlap sums the weighted area shared with
// candidates of other points; visit, when non-nil, sees each of those contributions.
//
// The candidate's own point and its sibling candidates are never counted.
func (l *Layout) score(c int, visit func(other int, amount float64)) (unary, overlap float64) {
	cand := &l.cands[c]
	unary = l.opts.PositionBias[cand.Position] * l.opts.PositionWeight

	borderHit := false
	l.hits = l.index.Query(cand.Bound, l.hits)
	for _, id := range l.hits {
		e := l.entry(id)
		switch e.kind {
		case entryPoint:
			if e.index == cand.Point {
				continue
			}
			p := &l.Points[e.index]
			if discOverlaps(p.Pos, p.Radius, cand.Bound) {
				unary += l.opts.PointPenalty
			}
		case entryBorder:
			if borderHit {
				continue
			}
			if OverlapArea(cand.Bound, l.borders[e.index]) > 0 {
				borderHit = true
				unary += l.opts.BorderPenalty
			}
		case entryCandidate:
			other := &l.cands[e.index]
			if other.Point == cand.Point {
				continue
			}
			a := OverlapArea(cand.Bound, other.Bound) * l.opts.OverlapWeight
			if a <= 0 {
				continue
			}
			overlap += a
			if visit != nil {
				visit(e.index, a)
			}
		}
	}
	return unary, overlap
}

// penalty is the full cost of candidate c against the current index contents.
func (l *Layout) penalty(c int) float64 {
	u, o := l.score(c, nil)
	return u + o
}

// labelUnary is the unary cost of a placed rectangle computed without the index.
func (l *Layout) labelUnary(c int) float64 {
	cand := &l.cands[c]
	v := l.opts.PositionBias[cand.Position] * l.opts.PositionWeight
	for i := range l.Points {
		if i == cand.Point {
			continue
		}
		p := &l.Points[i]
		if discOverlaps(p.Pos, p.Radius, cand.Bound) {
			v += l.opts.PointPenalty
		}
	}
	if !contains(l.Bounds, cand.Bound) {
		v += l.opts.BorderPenalty
	}
	return v
}

// TotalPenalty is the cost of the current selection: the unary cost of every placed
// label plus the weighted overlap of every pair of placed labels, each pair counted once.
// It is computed by brute force and does not touch the index.
func (l *Layout) TotalPenalty() float64 {
	var placed []int
	total := 0.0
	for _, p := range l.labeled {
		if l.Points[p].Label == NoLabel {
			continue
		}
		c := l.first[p] + int(l.Points[p].Label)
		total += l.labelUnary(c)
		placed = append(placed, c)
	}
	for i, a := range placed {
		for _, b := range placed[i+1:] {
			total += OverlapArea(l.cands[a].Bound, l.cands[b].Bound) * l.opts.OverlapWeight
		}
	}
	return total
}
