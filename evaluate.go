package maplabel

// Report measures the quality of the current selection exactly, by brute force.
type Report struct {
	Labeled         int // points with a placed label
	Unlabeled       int // points with text but no placed label
	LabelOverlaps   int // pairs of placed labels sharing area
	PointConflicts  int // (label, foreign point) pairs where the label touches the point's disc
	BorderConflicts int // labels not contained in the bounding box
	Penalty         float64
}

// Evaluate computes a Report for the current selection.
func (l *Layout) Evaluate() Report {
	var r Report
	var placed []int
	for _, p := range l.labeled {
		sel := l.Selected(p)
		if sel == nil {
			r.Unlabeled++
			continue
		}
		r.Labeled++
		placed = append(placed, l.first[p]+int(sel.Position))

		for i := range l.Points {
			q := &l.Points[i]
			if i != p && discOverlaps(q.Pos, q.Radius, sel.Bound) {
				r.PointConflicts++
			}
		}
		if !contains(l.Bounds, sel.Bound) {
			r.BorderConflicts++
		}
	}
	for i, a := range placed {
		for _, b := range placed[i+1:] {
			if OverlapArea(l.cands[a].Bound, l.cands[b].Bound) > 0 {
				r.LabelOverlaps++
			}
		}
	}
	r.Penalty = l.TotalPenalty()
	return r
}
