package maplabel

import (
	"math"

	"github.com/paulmach/orb"
)

// Sides of the bounding box, in the order their sentinels are stored.
const (
	borderLeft = iota
	borderRight
	borderBottom
	borderTop
	numBorders
)

// borderSentinels builds four rectangles framing bbox from the outside. The vertical
// sentinels also cover the corners. Any rectangle sticking out of bbox by no more than
// thickness overlaps at least one of them with positive area.
func borderSentinels(bbox orb.Bound, thickness float64) [numBorders]orb.Bound {
	t := thickness
	return [numBorders]orb.Bound{
		borderLeft: {
			Min: orb.Point{bbox.Min[0] - t, bbox.Min[1] - t},
			Max: orb.Point{bbox.Min[0], bbox.Max[1] + t},
		},
		borderRight: {
			Min: orb.Point{bbox.Max[0], bbox.Min[1] - t},
			Max: orb.Point{bbox.Max[0] + t, bbox.Max[1] + t},
		},
		borderBottom: {
			Min: orb.Point{bbox.Min[0], bbox.Min[1] - t},
			Max: orb.Point{bbox.Max[0], bbox.Min[1]},
		},
		borderTop: {
			Min: orb.Point{bbox.Min[0], bbox.Max[1]},
			Max: orb.Point{bbox.Max[0], bbox.Max[1] + t},
		},
	}
}

// borderThickness is at least one unit, and wide enough to reach the furthest
// candidate outside bbox.
func borderThickness(bbox orb.Bound, extent orb.Bound) float64 {
	t := 1.0
	if extent.Min[0] > extent.Max[0] {
		// nothing to cover
		return t
	}
	t = math.Max(t, bbox.Min[0]-extent.Min[0])
	t = math.Max(t, extent.Max[0]-bbox.Max[0])
	t = math.Max(t, bbox.Min[1]-extent.Min[1])
	t = math.Max(t, extent.Max[1]-bbox.Max[1])
	return t
}
