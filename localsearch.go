package maplabel

import (
	"log/slog"
)

// RoundStats summarizes one local search round.
type RoundStats struct {
	Swaps   int
	Penalty float64 // configuration penalty after the round
}

// LocalSearch is hill climbing over a committed configuration. Each round visits every
// labeled point, scores its eight candidates against the labels currently placed, and
// moves the label when another candidate is better by more than Options.Eps.
//
// Every accepted move lowers TotalPenalty by exactly the score difference, so the
// configuration penalty never increases. The history tracks it as a running total
// from one TotalPenalty taken before the first round.
type LocalSearch struct {
	layout  *Layout
	rounds  int
	history []RoundStats
}

// NewLocalSearch creates a local search running at most rounds rounds.
func NewLocalSearch(l *Layout, rounds int) *LocalSearch {
	return &LocalSearch{layout: l, rounds: rounds}
}

// History returns the statistics of each round of the last run.
func (s *LocalSearch) History() []RoundStats {
	return s.history
}

// Run refines the current selection in place. It stops early after a round without swaps.
func (s *LocalSearch) Run() error {
	l := s.layout
	if l.phase != phaseCommitted {
		return ErrNotCommitted
	}
	s.history = s.history[:0]
	if s.rounds <= 0 {
		return nil
	}

	total := l.TotalPenalty()
	for round := 0; round < s.rounds; round++ {
		swaps, gain := s.round()
		total -= gain
		s.history = append(s.history, RoundStats{Swaps: swaps, Penalty: total})
		l.log.Debug("local search round",
			slog.Int("round", round),
			slog.Int("swaps", swaps),
			slog.Float64("penalty", total))
		if swaps == 0 {
			break
		}
	}
	return nil
}

// round returns the number of moves and the penalty they removed.
func (s *LocalSearch) round() (swaps int, gain float64) {
	l := s.layout
	for _, p := range l.labeled {
		cur := l.Points[p].Label
		if cur == NoLabel {
			continue
		}
		first := l.first[p]
		// the current label is a sibling of every candidate scored here, so it never
		// counts against them
		best := cur
		curScore := l.penalty(first + int(cur))
		bestScore := curScore
		for pos := Position(0); pos < NumPositions; pos++ {
			if pos == cur {
				continue
			}
			if v := l.penalty(first + int(pos)); v < bestScore-l.opts.Eps {
				best, bestScore = pos, v
			}
		}
		if best != cur {
			l.swapLabel(p, best)
			swaps++
			gain += curScore - bestScore
		}
	}
	return swaps, gain
}

var _ Labeler = (*LocalSearch)(nil)
