package maplabel

import (
	"math"

	"github.com/paulmach/orb"
)

// OverlapArea returns the area shared by two rectangles.
// Disjoint or merely touching rectangles share no area.
func OverlapArea(a, b orb.Bound) float64 {
	w := math.Min(a.Max[0], b.Max[0]) - math.Max(a.Min[0], b.Min[0])
	if w <= 0 {
		return 0
	}
	h := math.Min(a.Max[1], b.Max[1]) - math.Max(a.Min[1], b.Min[1])
	if h <= 0 {
		return 0
	}
	return w * h
}

// discSlack is the relative tolerance of discOverlaps. Candidate rectangles are built
// at exactly the disc radius, so rounding must not turn edge contact into a conflict.
const discSlack = 1e-9

// discOverlaps reports whether the open disc of radius r around c reaches into b.
// Contact within rounding error of the disc edge does not count.
func discOverlaps(c orb.Point, r float64, b orb.Bound) bool {
	// coordinates far from the origin lose absolute precision
	r -= discSlack * (r + math.Abs(c[0]) + math.Abs(c[1]))
	if r <= 0 {
		return false
	}
	// closest point of b to the disc center
	x := math.Max(b.Min[0], math.Min(c[0], b.Max[0]))
	y := math.Max(b.Min[1], math.Min(c[1], b.Max[1]))
	dx := c[0] - x
	dy := c[1] - y
	return dx*dx+dy*dy < r*r
}

// contains reports whether inner lies completely within outer (touching edges count as inside).
func contains(outer, inner orb.Bound) bool {
	return inner.Min[0] >= outer.Min[0] && inner.Min[1] >= outer.Min[1] &&
		inner.Max[0] <= outer.Max[0] && inner.Max[1] <= outer.Max[1]
}

// discBound is the axis aligned square around a point's exclusion disc.
func discBound(c orb.Point, r float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{c[0] - r, c[1] - r},
		Max: orb.Point{c[0] + r, c[1] + r},
	}
}

func invertedBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.MaxFloat64, math.MaxFloat64},
		Max: orb.Point{-math.MaxFloat64, -math.MaxFloat64},
	}
}

func extend(a, b orb.Bound) orb.Bound {
	a.Min[0] = math.Min(a.Min[0], b.Min[0])
	a.Min[1] = math.Min(a.Min[1], b.Min[1])
	a.Max[0] = math.Max(a.Max[0], b.Max[0])
	a.Max[1] = math.Max(a.Max[1], b.Max[1])
	return a
}

func validBound(b orb.Bound) bool {
	for _, v := range [4]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Min[0] < b.Max[0] && b.Min[1] < b.Max[1]
}
