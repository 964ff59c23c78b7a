package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/bmharper/maplabel"
)

const featuresCSV = `X, Y, Text, Radius, width, height
0, 0, Oslo, 0.5, 4, 1
0, 3, Bergen, 0.5, 5, 1
1.5, 2, , 0.25, ,
`

func TestReadCSV(t *testing.T) {
	pts, err := ReadCSV(strings.NewReader(featuresCSV))
	require.NoError(t, err)
	require.Len(t, pts, 3)
	require.Equal(t, maplabel.Point{Pos: orb.Point{0, 3}, Radius: 0.5, Text: "Bergen", Width: 5, Height: 1, Label: maplabel.NoLabel}, pts[1])
	require.False(t, pts[2].HasText())
	require.Equal(t, 0.25, pts[2].Radius)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("text,radius\nA,1\n"))
	require.ErrorContains(t, err, `"x"`)

	_, err = ReadCSV(strings.NewReader("x,y\n1,north\n"))
	require.ErrorContains(t, err, "line 2")

	_, err = ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	pts, err := ReadJSON(strings.NewReader(`[{"x":1,"y":2,"text":"A","width":2,"height":1},{"x":5,"y":5,"radius":1}]`))
	require.NoError(t, err)
	require.Len(t, pts, 2)
	require.Equal(t, "A", pts[0].Text)
	require.Equal(t, orb.Point{5, 5}, pts[1].Pos)
	require.Equal(t, maplabel.NoLabel, pts[1].Label)

	_, err = ReadJSON(strings.NewReader(`{"x":1}`))
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(featuresCSV), 0o644))
	pts, err := ReadFile(csvPath)
	require.NoError(t, err)
	require.Len(t, pts, 3)

	txt := filepath.Join(dir, "points.txt")
	require.NoError(t, os.WriteFile(txt, []byte(featuresCSV), 0o644))
	_, err = ReadFile(txt)
	require.Error(t, err)
}

func TestExtent(t *testing.T) {
	pts, err := ReadCSV(strings.NewReader(featuresCSV))
	require.NoError(t, err)
	b := Extent(pts, 1)
	require.Equal(t, orb.Bound{Min: orb.Point{-1.5, -1.5}, Max: orb.Point{2.75, 4.5}}, b)

	// a single zero radius point still gets an area
	b = Extent([]maplabel.Point{{Pos: orb.Point{2, 2}}}, 0)
	require.Equal(t, orb.Bound{Min: orb.Point{1.5, 1.5}, Max: orb.Point{2.5, 2.5}}, b)
}

func TestResultRoundTrip(t *testing.T) {
	pts, err := ReadCSV(strings.NewReader(featuresCSV))
	require.NoError(t, err)
	l, err := maplabel.NewLayout(pts, Extent(pts, 10), nil)
	require.NoError(t, err)
	require.NoError(t, maplabel.NewGRASP(l, 10).Run())

	res := NewResult(l, maplabel.AlgoGRASP)
	require.Equal(t, "grasp", res.Algorithm)
	require.Equal(t, 2, res.Summary.Labeled)
	require.Equal(t, "none", res.Labels[2].Position)
	require.Equal(t, "right", res.Labels[0].Position)
	require.Equal(t, "left", res.Labels[0].HAlign)
	require.Equal(t, "center", res.Labels[0].VAlign)
	require.Equal(t, [2]float64{0.5, 0}, res.Labels[0].Anchor)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))
	back, err := ReadResult(&buf)
	require.NoError(t, err)
	require.Equal(t, res, back)

	// re-applying the stored positions reproduces the selection
	positions, err := back.Positions(len(pts))
	require.NoError(t, err)
	l2, err := maplabel.NewLayout(pts, Extent(pts, 10), nil)
	require.NoError(t, err)
	require.NoError(t, l2.SetLabels(positions))
	require.Equal(t, l.Labels(), l2.Labels())
	require.Equal(t, l.TotalPenalty(), l2.TotalPenalty())

	back.Labels[0].Index = 7
	_, err = back.Positions(len(pts))
	require.Error(t, err)
}
