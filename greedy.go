package maplabel

import (
	"log/slog"
	"sort"
)

// Greedy gives every point its cheapest candidate, visiting candidates of all points in
// ascending penalty order and keeping the first one seen per point.
//
// Penalties only account for points and the border, so labels may overlap each other.
type Greedy struct {
	layout *Layout
}

// NewGreedy creates a greedy labeler for l.
func NewGreedy(l *Layout) *Greedy {
	return &Greedy{layout: l}
}

// Run places the labels. It resets any previous selection.
func (g *Greedy) Run() error {
	l := g.layout
	l.resetLabels()
	l.setPhase(phaseAnchors)

	order := make([]int, 0, len(l.cands))
	for c := range l.cands {
		l.cands[c].Penalty = l.penalty(c)
		order = append(order, c)
	}
	// candidates are stored by point and then position, so a stable sort breaks ties
	// towards the lower position
	sort.SliceStable(order, func(i, j int) bool {
		return l.cands[order[i]].Penalty < l.cands[order[j]].Penalty
	})

	limit := l.maxPenalty()
	placed := 0
	for _, c := range order {
		cand := &l.cands[c]
		if cand.Penalty > limit {
			break
		}
		if l.Points[cand.Point].Label == NoLabel {
			l.Points[cand.Point].Label = cand.Position
			placed++
		}
	}
	l.setPhase(phaseCommitted)

	l.log.Debug("greedy done", slog.Int("placed", placed), slog.Int("labeled", len(l.labeled)))
	return nil
}

var _ Labeler = (*Greedy)(nil)
