package maplabel

import (
	"container/heap"
	"log/slog"
)

type overlapRecord struct {
	other  int // candidate
	amount float64
}

type heapItem struct {
	penalty float64
	cand    int
}

// candidateHeap is a min-heap on (penalty, candidate). Items go stale when a candidate's
// penalty changes or it leaves the race; stale items are skipped when popped.
type candidateHeap []heapItem

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].penalty != h[j].penalty {
		return h[i].penalty < h[j].penalty
	}
	return h[i].cand < h[j].cand
}
func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)   { *h = append(*h, x.(heapItem)) }
func (h *candidateHeap) Pop() any {
	old := *h
	it := old[len(old)-1]
	*h = old[:len(old)-1]
	return it
}

// AdvancedGreedy repeatedly commits the cheapest remaining candidate of any unlabeled
// point. Penalties start out against points, the border and every other candidate.
// Once a point is decided its other seven candidates can no longer collide with anyone,
// so their overlap contributions are taken back out of the candidates they touched.
type AdvancedGreedy struct {
	layout *Layout
	steps  int
}

// NewAdvancedGreedy creates an advanced greedy labeler for l.
func NewAdvancedGreedy(l *Layout) *AdvancedGreedy {
	return &AdvancedGreedy{layout: l}
}

// Steps returns the number of labels committed by the last run.
func (g *AdvancedGreedy) Steps() int {
	return g.steps
}

// Run places the labels. It resets any previous selection.
func (g *AdvancedGreedy) Run() error {
	l := g.layout
	l.resetLabels()
	l.setPhase(phaseCandidates)

	overlaps := make([][]overlapRecord, len(l.cands))
	live := make([]bool, len(l.cands))
	h := make(candidateHeap, 0, len(l.cands))
	for c := range l.cands {
		u, o := l.score(c, func(other int, amount float64) {
			overlaps[c] = append(overlaps[c], overlapRecord{other, amount})
		})
		l.cands[c].Penalty = u + o
		live[c] = true
		h = append(h, heapItem{l.cands[c].Penalty, c})
	}
	heap.Init(&h)

	limit := l.maxPenalty()
	g.steps = 0
	for h.Len() > 0 {
		it := heap.Pop(&h).(heapItem)
		c := it.cand
		if !live[c] || it.penalty != l.cands[c].Penalty {
			continue
		}
		if it.penalty > limit {
			break
		}
		cand := &l.cands[c]
		l.Points[cand.Point].Label = cand.Position
		live[c] = false
		g.steps++

		first := l.first[cand.Point]
		for s := first; s < first+NumPositions; s++ {
			if s == c {
				continue
			}
			live[s] = false
			l.remove(l.candEntry(s))
			for _, rec := range overlaps[s] {
				o := rec.other
				if !live[o] {
					continue
				}
				l.cands[o].Penalty -= rec.amount
				overlaps[o] = dropRecord(overlaps[o], s)
				heap.Push(&h, heapItem{l.cands[o].Penalty, o})
			}
			overlaps[s] = nil
		}
	}
	l.setPhase(phaseCommitted)

	l.log.Debug("advanced greedy done", slog.Int("placed", g.steps), slog.Int("labeled", len(l.labeled)))
	return nil
}

func dropRecord(recs []overlapRecord, other int) []overlapRecord {
	for i := range recs {
		if recs[i].other == other {
			recs[i] = recs[len(recs)-1]
			return recs[:len(recs)-1]
		}
	}
	return recs
}

var _ Labeler = (*AdvancedGreedy)(nil)
