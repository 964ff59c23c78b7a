package maplabel

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestOverlapArea(t *testing.T) {
	cases := []struct {
		a, b orb.Bound
		want float64
	}{
		{box(0, 0, 2, 2), box(1, 1, 3, 3), 1},
		{box(0, 0, 2, 2), box(0, 0, 2, 2), 4},
		{box(0, 0, 4, 4), box(1, 1, 2, 2), 1},
		{box(0, 0, 2, 2), box(2, 0, 4, 2), 0}, // touching edge
		{box(0, 0, 2, 2), box(2, 2, 4, 4), 0}, // touching corner
		{box(0, 0, 2, 2), box(5, 5, 6, 6), 0},
		{box(-3, -1, 1, 1), box(0, -2, 2, 0), 1},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, OverlapArea(c.a, c.b), 1e-12, "%v %v", c.a, c.b)
		require.InDelta(t, c.want, OverlapArea(c.b, c.a), 1e-12, "%v %v", c.b, c.a)
	}
}

func TestDiscOverlaps(t *testing.T) {
	center := orb.Point{0, 0}
	require.True(t, discOverlaps(center, 1, box(-0.5, -0.5, 0.5, 0.5)))
	require.True(t, discOverlaps(center, 1, box(0.5, 0.5, 2, 2)))   // corner at distance 0.707
	require.False(t, discOverlaps(center, 1, box(0.8, 0.8, 2, 2)))  // corner at distance 1.13
	require.False(t, discOverlaps(center, 1, box(1, -1, 2, 1)))     // touching
	require.True(t, discOverlaps(center, 1, box(0.99, -1, 2, 1)))   // edge inside the disc
	require.False(t, discOverlaps(center, 0, box(-1, -1, 1, 1)))    // zero radius never overlaps
	require.True(t, discOverlaps(center, 1, box(-10, -10, 10, 10))) // disc inside the rectangle

	// corner placed on the disc edge with rounded coordinates
	c := orb.Point{1.3, 2.7}
	r := 0.0411
	q := r * sqrt1_2
	require.False(t, discOverlaps(c, r, box(c[0]+q, c[1]+q, c[0]+q+2, c[1]+q+1)))
	require.False(t, discOverlaps(c, r, box(c[0]-q-2, c[1]-q-1, c[0]-q, c[1]-q)))
	require.True(t, discOverlaps(c, r, box(c[0]+q*0.99, c[1]+q*0.99, c[0]+2, c[1]+1)))

	// far from the origin
	far := orb.Point{654321.123, -98765.4321}
	require.False(t, discOverlaps(far, 0.3, box(far[0]+0.3, far[1]-1, far[0]+2, far[1]+1)))
	require.True(t, discOverlaps(far, 0.3, box(far[0]+0.29, far[1]-1, far[0]+2, far[1]+1)))
}

func TestContains(t *testing.T) {
	outer := box(0, 0, 10, 10)
	require.True(t, contains(outer, box(0, 0, 10, 10)))
	require.True(t, contains(outer, box(1, 1, 2, 2)))
	require.False(t, contains(outer, box(-0.1, 1, 2, 2)))
	require.False(t, contains(outer, box(9, 9, 10.5, 10)))
}

func TestBorderSentinels(t *testing.T) {
	bbox := box(0, 0, 10, 5)
	s := borderSentinels(bbox, 1)
	for _, b := range s {
		require.Zero(t, OverlapArea(b, bbox))
	}
	// a corner label crosses two sentinels
	corner := box(9.5, 4.5, 10.5, 5.5)
	hits := 0
	for _, b := range s {
		if OverlapArea(b, corner) > 0 {
			hits++
		}
	}
	require.Equal(t, 2, hits)

	require.Equal(t, 1.0, borderThickness(bbox, box(1, 1, 2, 2)))
	require.Equal(t, 3.0, borderThickness(bbox, box(-3, 1, 2, 2)))
	require.Equal(t, 1.0, borderThickness(bbox, invertedBound()))
}
