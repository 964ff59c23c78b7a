package textmetrics

import (
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/bmharper/maplabel"
)

func TestFixed(t *testing.T) {
	f := Fixed{Size: 72, Advance: 0.5, Scale: 1}
	w, h := f.Measure("abcd")
	require.InDelta(t, 4*0.5*25.4, w, 1e-9)
	require.InDelta(t, 1.2*25.4, h, 1e-9)

	// runes, not bytes
	w2, _ := f.Measure("äöüß")
	require.Equal(t, w, w2)

	f.Scale = 0.5
	w3, h3 := f.Measure("abcd")
	require.InDelta(t, w/2, w3, 1e-9)
	require.InDelta(t, h/2, h3, 1e-9)
}

func TestApply(t *testing.T) {
	pts := []maplabel.Point{
		{Pos: orb.Point{0, 0}, Text: "Oslo"},
		{Pos: orb.Point{1, 0}, Text: "Bergen", Width: 7, Height: 3},
		{Pos: orb.Point{2, 0}},
	}
	Apply(Fixed{Size: 10, Advance: 0.6, Scale: 1}, pts)
	require.Greater(t, pts[0].Width, 0.0)
	require.Greater(t, pts[0].Height, 0.0)
	require.Equal(t, 7.0, pts[1].Width)
	require.Equal(t, 3.0, pts[1].Height)
	require.Zero(t, pts[2].Width)

	_, err := maplabel.NewLayout(pts, orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{5, 5}}, nil)
	require.NoError(t, err)
}

func TestLoadFontMissing(t *testing.T) {
	_, err := LoadFont(filepath.Join(t.TempDir(), "none.ttf"), 10, 1)
	require.Error(t, err)
}
