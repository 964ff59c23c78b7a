package maplabel

import (
	"fmt"
	"log/slog"
	"math"
)

// Options tune the penalty model and the spatial index of a Layout.
type Options struct {
	// PositionBias is the preference cost of each position, multiplied by PositionWeight.
	PositionBias   [NumPositions]float64
	PositionWeight float64

	// OverlapWeight scales the area two labels share.
	OverlapWeight float64

	// PointPenalty is charged once for every foreign point disc a label touches.
	PointPenalty float64

	// BorderPenalty is charged once if a label crosses the bounding box.
	BorderPenalty float64

	// MaxPenalty leaves a point unlabeled when its best candidate costs more than this.
	// Zero disables the limit. Only the greedy labelers honor it.
	MaxPenalty float64

	// Eps is the minimum improvement local search needs to accept a swap.
	Eps float64

	Index    IndexKind
	NodeSize int // fan-out of the packed index, 0 for the default

	// Logger receives debug summaries of each run. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when NewLayout is given nil.
func DefaultOptions() Options {
	return Options{
		PositionBias:   [NumPositions]float64{0, 1, 2, 3, 4, 5, 6, 7},
		PositionWeight: 0.1,
		OverlapWeight:  1,
		PointPenalty:   1000,
		BorderPenalty:  10000,
		Eps:            1e-9,
		Index:          IndexPacked,
	}
}

func (o *Options) validate() error {
	for i, b := range o.PositionBias {
		if !finite(b) {
			return fmt.Errorf("%w: position bias %d is %v", ErrInvalidOptions, i, b)
		}
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"position weight", o.PositionWeight},
		{"overlap weight", o.OverlapWeight},
		{"point penalty", o.PointPenalty},
		{"border penalty", o.BorderPenalty},
		{"max penalty", o.MaxPenalty},
		{"eps", o.Eps},
	}
	for _, c := range checks {
		if !finite(c.v) || c.v < 0 {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidOptions, c.name, c.v)
		}
	}
	if o.Index != IndexPacked && o.Index != IndexRTree {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, o.Index)
	}
	if o.NodeSize < 0 {
		return fmt.Errorf("%w: node size %d", ErrInvalidOptions, o.NodeSize)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
