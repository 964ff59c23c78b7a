package maplabel

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
)

type entryKind uint8

const (
	entryPoint entryKind = iota
	entryCandidate
	entryBorder
)

// entry is what a spatial index id refers to.
type entry struct {
	kind  entryKind
	index int // into Layout.Points, Layout.cands or Layout.borders
}

// phase describes which entries the spatial index holds.
type phase uint8

const (
	phaseEmpty      phase = iota
	phaseAnchors          // points and border sentinels
	phaseCandidates       // anchors and every candidate
	phaseCommitted        // anchors and the selected labels
)

// Layout owns the points of one map, their label candidates and the spatial index
// shared by all labelers.
//
// Index ids are laid out as [points | candidates | borders]. Candidates of a point are
// contiguous and ordered by Position, so candidate c of point p is first[p]+c.
type Layout struct {
	// Points holds a copy of the input, in input order. Read Label after a labeler ran.
	Points []Point
	Bounds orb.Bound

	opts    Options
	log     *slog.Logger
	cands   []Candidate
	first   []int // first candidate of each point, -1 without text
	labeled []int // points with text, ascending
	borders [numBorders]orb.Bound

	index   SpatialIndex
	inIndex []bool
	phase   phase
	hits    []int
}

// NewLayout validates the input and builds all label candidates.
// A nil opts selects DefaultOptions. An empty point set is valid.
func NewLayout(points []Point, bounds orb.Bound, opts *Options) (*Layout, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if !validBound(bounds) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoundingBox, bounds)
	}

	l := &Layout{
		Points: make([]Point, len(points)),
		Bounds: bounds,
		opts:   o,
		log:    o.logger(),
		first:  make([]int, len(points)),
	}
	copy(l.Points, points)

	extent := invertedBound()
	for i := range l.Points {
		p := &l.Points[i]
		if err := validatePoint(p); err != nil {
			return nil, fmt.Errorf("%w: point %d", err, i)
		}
		p.Label = NoLabel
		l.first[i] = -1
		if !p.HasText() {
			continue
		}
		l.first[i] = len(l.cands)
		l.labeled = append(l.labeled, i)
		for pos := Position(0); pos < NumPositions; pos++ {
			b := candidateBound(p, pos)
			extent = extend(extent, b)
			l.cands = append(l.cands, Candidate{Point: i, Position: pos, Bound: b})
		}
	}
	l.borders = borderSentinels(bounds, borderThickness(bounds, extent))

	n := l.numEntries()
	boxes := make([]orb.Bound, n)
	for id := range boxes {
		boxes[id] = l.entryBound(id)
	}
	l.index = newSpatialIndex(o.Index, boxes, o.NodeSize)
	l.inIndex = make([]bool, n)

	l.log.Debug("layout built",
		slog.Int("points", len(l.Points)),
		slog.Int("labeled", len(l.labeled)),
		slog.Int("candidates", len(l.cands)),
		slog.String("index", o.Index.String()))
	return l, nil
}

func validatePoint(p *Point) error {
	if !finite(p.Pos[0]) || !finite(p.Pos[1]) {
		return fmt.Errorf("%w: position %v", ErrInvalidPoint, p.Pos)
	}
	if !finite(p.Radius) || p.Radius < 0 {
		return fmt.Errorf("%w: radius %v", ErrInvalidPoint, p.Radius)
	}
	if !finite(p.Offset) || p.Offset < 0 {
		return fmt.Errorf("%w: offset %v", ErrInvalidPoint, p.Offset)
	}
	if p.HasText() && (!finite(p.Width) || !finite(p.Height) || p.Width <= 0 || p.Height <= 0) {
		return fmt.Errorf("%w: %q is %vx%v", ErrMissingLabelMetrics, p.Text, p.Width, p.Height)
	}
	return nil
}

// Options returns the options the layout was built with.
func (l *Layout) Options() Options {
	return l.opts
}

// Index exposes the spatial index. It must not be modified while a labeler runs.
func (l *Layout) Index() SpatialIndex {
	return l.index
}

// Candidates returns the eight candidates of point p, or nil when p has no text.
func (l *Layout) Candidates(p int) []Candidate {
	if l.first[p] < 0 {
		return nil
	}
	return l.cands[l.first[p] : l.first[p]+NumPositions]
}

// NumCandidates returns the number of candidates over all points.
func (l *Layout) NumCandidates() int {
	return len(l.cands)
}

// LabeledPoints returns the indices of the points that have text.
func (l *Layout) LabeledPoints() []int {
	return append([]int(nil), l.labeled...)
}

// Labels returns the selected position of every point.
func (l *Layout) Labels() []Position {
	out := make([]Position, len(l.Points))
	for i := range l.Points {
		out[i] = l.Points[i].Label
	}
	return out
}

// Selected returns the candidate chosen for point p, or nil.
func (l *Layout) Selected(p int) *Candidate {
	pos := l.Points[p].Label
	if pos == NoLabel {
		return nil
	}
	return &l.cands[l.first[p]+int(pos)]
}

// SetLabels commits the given positions, one per point, replacing the current selection.
// Points without text must be given NoLabel.
func (l *Layout) SetLabels(labels []Position) error {
	if len(labels) != len(l.Points) {
		return fmt.Errorf("maplabel: %d labels for %d points", len(labels), len(l.Points))
	}
	for i, pos := range labels {
		if pos == NoLabel {
			continue
		}
		if pos < 0 || pos >= NumPositions || l.first[i] < 0 {
			return fmt.Errorf("maplabel: cannot place label %v on point %d", pos, i)
		}
	}
	for i, pos := range labels {
		l.Points[i].Label = pos
	}
	l.setPhase(phaseCommitted)
	return nil
}

func (l *Layout) numEntries() int {
	return len(l.Points) + len(l.cands) + numBorders
}

func (l *Layout) candEntry(c int) int {
	return len(l.Points) + c
}

func (l *Layout) entry(id int) entry {
	np, nc := len(l.Points), len(l.cands)
	switch {
	case id < np:
		return entry{entryPoint, id}
	case id < np+nc:
		return entry{entryCandidate, id - np}
	default:
		return entry{entryBorder, id - np - nc}
	}
}

func (l *Layout) entryBound(id int) orb.Bound {
	e := l.entry(id)
	switch e.kind {
	case entryPoint:
		p := &l.Points[e.index]
		return discBound(p.Pos, p.Radius)
	case entryCandidate:
		return l.cands[e.index].Bound
	default:
		return l.borders[e.index]
	}
}

func (l *Layout) insert(id int) {
	l.index.Insert(id, l.entryBound(id))
	l.inIndex[id] = true
}

func (l *Layout) remove(id int) {
	l.index.Delete(id, l.entryBound(id))
	l.inIndex[id] = false
}

// setPhase brings the index to the entry set of ph with the fewest changes.
func (l *Layout) setPhase(ph phase) {
	for id := range l.inIndex {
		want := false
		if ph != phaseEmpty {
			e := l.entry(id)
			switch {
			case e.kind != entryCandidate:
				want = true
			case ph == phaseCandidates:
				want = true
			case ph == phaseCommitted:
				c := &l.cands[e.index]
				want = l.Points[c.Point].Label == c.Position
			}
		}
		if want && !l.inIndex[id] {
			l.insert(id)
		} else if !want && l.inIndex[id] {
			l.remove(id)
		}
	}
	l.phase = ph
}

// resetLabels clears the previous run.
func (l *Layout) resetLabels() {
	for i := range l.Points {
		l.Points[i].Label = NoLabel
	}
	for c := range l.cands {
		l.cands[c].Penalty = 0
	}
}

// swapLabel moves point p's committed label to pos, keeping the index in sync.
func (l *Layout) swapLabel(p int, pos Position) {
	if old := l.Points[p].Label; old != NoLabel {
		l.remove(l.candEntry(l.first[p] + int(old)))
	}
	l.Points[p].Label = pos
	if pos != NoLabel {
		l.insert(l.candEntry(l.first[p] + int(pos)))
	}
}

// maxPenalty returns the configured cap, or +Inf without one.
func (l *Layout) maxPenalty() float64 {
	if l.opts.MaxPenalty > 0 {
		return l.opts.MaxPenalty
	}
	return math.Inf(1)
}
