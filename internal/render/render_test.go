package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/canvas"

	"github.com/bmharper/maplabel"
)

func TestPlacementFacesThePoint(t *testing.T) {
	p := maplabel.Point{Pos: orb.Point{0, 0}, Radius: 1, Text: "A", Width: 4, Height: 2}
	l, err := maplabel.NewLayout([]maplabel.Point{p}, orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}, nil)
	require.NoError(t, err)

	want := map[maplabel.Position][2]canvas.TextAlign{
		maplabel.Right:      {canvas.Left, canvas.Center},
		maplabel.UpperRight: {canvas.Left, canvas.Bottom},
		maplabel.Top:        {canvas.Center, canvas.Bottom},
		maplabel.UpperLeft:  {canvas.Right, canvas.Bottom},
		maplabel.Left:       {canvas.Right, canvas.Center},
		maplabel.LowerLeft:  {canvas.Right, canvas.Top},
		maplabel.Bottom:     {canvas.Center, canvas.Top},
		maplabel.LowerRight: {canvas.Left, canvas.Top},
	}
	for _, c := range l.Candidates(0) {
		anchor, halign, valign := Placement(c.Position, c.Bound)
		require.Equal(t, want[c.Position], [2]canvas.TextAlign{halign, valign}, c.Position.String())
		// the anchor is the label corner or edge midpoint closest to the point
		require.InDelta(t, p.Radius, math.Hypot(anchor[0]-p.Pos[0], anchor[1]-p.Pos[1]), 1e-9, c.Position.String())
		require.True(t, c.Bound.Contains(anchor), c.Position.String())
	}
}

func TestWriteSVG(t *testing.T) {
	pts := []maplabel.Point{
		{Pos: orb.Point{2, 2}, Radius: 0.5, Text: "A", Width: 3, Height: 1},
		{Pos: orb.Point{6, 6}, Radius: 0.5},
	}
	l, err := maplabel.NewLayout(pts, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}, nil)
	require.NoError(t, err)
	require.NoError(t, maplabel.NewGreedy(l).Run())

	path := filepath.Join(t.TempDir(), "map.svg")
	opts := DefaultOptions()
	opts.Scale = 2
	require.NoError(t, Write(path, l, opts))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "<svg")
}
