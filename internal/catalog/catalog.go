// Package catalog reads point features and writes label placements.
//
// Features come as CSV with a header row (x, y, radius, text, offset, width, height;
// only x and y are required, names are matched case-insensitively) or as a JSON array
// of Feature objects. Placements are written as JSON.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/bmharper/maplabel"
	"github.com/bmharper/maplabel/internal/render"
)

// Feature is the JSON form of an input point.
type Feature struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
	Text   string  `json:"text,omitempty"`
	Offset float64 `json:"offset,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (f Feature) point() maplabel.Point {
	return maplabel.Point{
		Pos:    orb.Point{f.X, f.Y},
		Radius: f.Radius,
		Text:   f.Text,
		Offset: f.Offset,
		Width:  f.Width,
		Height: f.Height,
		Label:  maplabel.NoLabel,
	}
}

var csvColumns = []string{"x", "y", "radius", "text", "offset", "width", "height"}

// ReadFile reads features from a .csv or .json file.
func ReadFile(path string) ([]maplabel.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	default:
		return nil, fmt.Errorf("unsupported feature file %q", ext)
	}
}

// ReadCSV reads features from CSV with a header row.
func ReadCSV(r io.Reader) ([]maplabel.Point, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"x", "y"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV header lacks column %q", required)
		}
	}

	var points []maplabel.Point
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		var f Feature
		nums := map[string]*float64{
			"x": &f.X, "y": &f.Y, "radius": &f.Radius, "offset": &f.Offset,
			"width": &f.Width, "height": &f.Height,
		}
		for _, name := range csvColumns {
			i, ok := col[name]
			if !ok || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if name == "text" {
				f.Text = v
				continue
			}
			if v == "" {
				continue
			}
			if *nums[name], err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, name, err)
			}
		}
		points = append(points, f.point())
	}
	return points, nil
}

// ReadJSON reads a JSON array of features.
func ReadJSON(r io.Reader) ([]maplabel.Point, error) {
	var features []Feature
	if err := json.NewDecoder(r).Decode(&features); err != nil {
		return nil, fmt.Errorf("error parsing features: %w", err)
	}
	points := make([]maplabel.Point, len(features))
	for i, f := range features {
		points[i] = f.point()
	}
	return points, nil
}

// Extent is the bounding box of the points and their exclusion discs, grown by margin
// on every side. A degenerate extent is widened to one unit.
func Extent(points []maplabel.Point, margin float64) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{Min: orb.Point{-margin - 0.5, -margin - 0.5}, Max: orb.Point{margin + 0.5, margin + 0.5}}
	}
	b := orb.Bound{Min: points[0].Pos, Max: points[0].Pos}
	for _, p := range points {
		b = b.Union(orb.Bound{
			Min: orb.Point{p.Pos[0] - p.Radius, p.Pos[1] - p.Radius},
			Max: orb.Point{p.Pos[0] + p.Radius, p.Pos[1] + p.Radius},
		})
	}
	b = b.Pad(margin)
	for axis := 0; axis < 2; axis++ {
		if b.Max[axis]-b.Min[axis] <= 0 {
			b.Min[axis] -= 0.5
			b.Max[axis] += 0.5
		}
	}
	return b
}

// Label is the placement of one point.
type Label struct {
	Index    int        `json:"index"`
	Text     string     `json:"text,omitempty"`
	Position string     `json:"position"`
	Bound    [4]float64 `json:"bound,omitempty"`
	Anchor   [2]float64 `json:"anchor,omitempty"`
	HAlign   string     `json:"halign,omitempty"`
	VAlign   string     `json:"valign,omitempty"`
}

// Summary mirrors maplabel.Report.
type Summary struct {
	Labeled         int     `json:"labeled"`
	Unlabeled       int     `json:"unlabeled"`
	LabelOverlaps   int     `json:"label_overlaps"`
	PointConflicts  int     `json:"point_conflicts"`
	BorderConflicts int     `json:"border_conflicts"`
	Penalty         float64 `json:"penalty"`
}

// Result is the output document.
type Result struct {
	Algorithm string     `json:"algorithm"`
	Bounds    [4]float64 `json:"bounds"`
	Summary   Summary    `json:"summary"`
	Labels    []Label    `json:"labels"`
}

// NewResult collects the current selection of l, one Label per point.
func NewResult(l *maplabel.Layout, algo maplabel.Algorithm) Result {
	r := l.Evaluate()
	res := Result{
		Algorithm: algo.String(),
		Bounds:    boundArray(l.Bounds),
		Summary:   Summary(r),
		Labels:    make([]Label, len(l.Points)),
	}
	for i := range l.Points {
		p := &l.Points[i]
		lab := Label{Index: i, Text: p.Text, Position: p.Label.String()}
		if sel := l.Selected(i); sel != nil {
			anchor, halign, valign := render.Placement(sel.Position, sel.Bound)
			lab.Bound = boundArray(sel.Bound)
			lab.Anchor = [2]float64{anchor[0], anchor[1]}
			lab.HAlign = strings.ToLower(halign.String())
			lab.VAlign = strings.ToLower(valign.String())
		}
		res.Labels[i] = lab
	}
	return res
}

func boundArray(b orb.Bound) [4]float64 {
	return [4]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}
}

// Positions returns the positions stored in res, one per point of a layout with n points.
func (res *Result) Positions(n int) ([]maplabel.Position, error) {
	out := make([]maplabel.Position, n)
	for i := range out {
		out[i] = maplabel.NoLabel
	}
	for _, lab := range res.Labels {
		if lab.Index < 0 || lab.Index >= n {
			return nil, fmt.Errorf("label for point %d of %d", lab.Index, n)
		}
		pos, err := maplabel.ParsePosition(lab.Position)
		if err != nil {
			return nil, err
		}
		out[lab.Index] = pos
	}
	return out, nil
}

// WriteJSON writes res as indented JSON.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// ReadResult parses a document written by WriteJSON.
func ReadResult(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("error parsing labels: %w", err)
	}
	return res, nil
}
