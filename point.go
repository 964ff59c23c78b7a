package maplabel

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// Position is one of the eight compass placements of a label around its point.
type Position int8

// Positions in compass order, counter-clockwise starting at the right.
const (
	NoLabel Position = iota - 1
	Right
	UpperRight
	Top
	UpperLeft
	Left
	LowerLeft
	Bottom
	LowerRight
)

// NumPositions is the number of candidates generated for every labeled point.
const NumPositions = 8

var positionNames = [NumPositions]string{
	"right", "upper-right", "top", "upper-left", "left", "lower-left", "bottom", "lower-right",
}

func (p Position) String() string {
	if p >= 0 && int(p) < NumPositions {
		return positionNames[p]
	}
	return "none"
}

// ParsePosition is the inverse of Position.String.
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" || s == "" {
		return NoLabel, nil
	}
	for i, name := range positionNames {
		if name == s {
			return Position(i), nil
		}
	}
	return NoLabel, fmt.Errorf("unknown label position %q", s)
}

// Point is an annotatable map feature.
// Width and Height are the pre-measured label size and are required when Text is set.
type Point struct {
	Pos    orb.Point
	Radius float64 // exclusion radius around Pos
	Text   string
	Width  float64
	Height float64
	Offset float64 // extra gap between the exclusion disc and the label

	// Label is the selected placement, NoLabel until a labeler commits one.
	Label Position
}

// HasText reports whether the point wants a label.
func (p *Point) HasText() bool {
	return p.Text != ""
}

// Candidate is one possible placement of a point's label.
type Candidate struct {
	Point    int // index into Layout.Points
	Position Position
	Bound    orb.Bound
	Penalty  float64
}

var sqrt1_2 = math.Sqrt(0.5)

// candidateBound computes the rectangle a label would occupy at position pos.
func candidateBound(p *Point, pos Position) orb.Bound {
	x, y := p.Pos[0], p.Pos[1]
	w, h := p.Width, p.Height
	d := p.Radius + p.Offset
	q := d * sqrt1_2

	var minX, minY float64
	switch pos {
	case Right:
		minX, minY = x+d, y-h/2
	case UpperRight:
		minX, minY = x+q, y+q
	case Top:
		minX, minY = x-w/2, y+d
	case UpperLeft:
		minX, minY = x-q-w, y+q
	case Left:
		minX, minY = x-d-w, y-h/2
	case LowerLeft:
		minX, minY = x-q-w, y-q-h
	case Bottom:
		minX, minY = x-w/2, y-d-h
	case LowerRight:
		minX, minY = x+q, y-q-h
	default:
		panic(fmt.Sprintf("maplabel: invalid position %d", pos))
	}
	return orb.Bound{
		Min: orb.Point{minX, minY},
		Max: orb.Point{minX + w, minY + h},
	}
}
