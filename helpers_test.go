package maplabel

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func labelPoint(x, y float64, text string) Point {
	return Point{Pos: orb.Point{x, y}, Radius: 0.5, Text: text, Width: 2, Height: 1}
}

// gridPoints lays out n*n labeled points spaced far wider than any label.
func gridPoints(n int, spacing float64) []Point {
	pts := make([]Point, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pts = append(pts, labelPoint(float64(i)*spacing, float64(j)*spacing, fmt.Sprintf("P%d-%d", i, j)))
		}
	}
	return pts
}

// randomPoints scatters n labeled points in a size x size square. Dense enough to force conflicts.
func randomPoints(seed int64, n int, size float64) []Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			Pos:    orb.Point{rng.Float64() * size, rng.Float64() * size},
			Radius: 0.2 + rng.Float64()*0.6,
			Text:   fmt.Sprintf("star %d", i),
			Width:  1 + rng.Float64()*4,
			Height: 1,
		}
		if rng.Intn(5) == 0 {
			pts[i].Text = ""
		}
	}
	return pts
}

func newTestLayout(t testing.TB, pts []Point, bounds orb.Bound, kind IndexKind) *Layout {
	opts := DefaultOptions()
	opts.Index = kind
	l, err := NewLayout(pts, bounds, &opts)
	require.NoError(t, err)
	return l
}

// strategies returns one labeler per algorithm for l.
func strategies(l *Layout) map[string]Labeler {
	gc := DefaultGeneticConfig()
	gc.PopulationSize = 40
	gc.Generations = 60
	gc.Workers = 2
	return map[string]Labeler{
		"greedy":   NewGreedy(l),
		"advanced": NewAdvancedGreedy(l),
		"grasp":    NewGRASP(l, 10),
		"genetic":  NewGenetic(l, gc),
	}
}

var indexKinds = []IndexKind{IndexPacked, IndexRTree}

func boundsEqual(a, b orb.Bound, tol float64) bool {
	return math.Abs(a.Min[0]-b.Min[0]) <= tol && math.Abs(a.Min[1]-b.Min[1]) <= tol &&
		math.Abs(a.Max[0]-b.Max[0]) <= tol && math.Abs(a.Max[1]-b.Max[1]) <= tol
}
