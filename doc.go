// Package maplabel places text labels next to point features of a printed map.
//
// Each labeled point gets eight candidate rectangles, one per compass position
// (right, upper-right, top, upper-left, left, lower-left, bottom, lower-right).
// A labeler picks at most one candidate per point, trading a per-position bias
// against overlap with other labels, with the exclusion discs of other points
// and with the border of the map:
//
//   - Greedy: cheapest candidate per point, ignoring label-label overlap.
//   - AdvancedGreedy: commits the globally cheapest candidate one point at a time.
//   - LocalSearch: hill climbing over a committed configuration.
//   - GRASP: AdvancedGreedy followed by LocalSearch.
//   - Genetic: population search with a precomputed pairwise overlap cache.
//
// Typical use:
//
//	l, err := maplabel.NewLayout(points, bounds, nil)
//	if err != nil {
//		return err
//	}
//	if err := maplabel.NewGRASP(l, 10).Run(); err != nil {
//		return err
//	}
//	for _, p := range l.Points {
//		fmt.Println(p.Text, p.Label)
//	}
//
// Label sizes are measured by the caller; the package never touches fonts.
package maplabel
