// Package render draws a labeled layout with github.com/tdewolff/canvas.
package render

import (
	"image/color"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/bmharper/maplabel"
)

// Placement returns the point of label rectangle b that faces the feature, and how
// text is aligned against it. A label to the upper right of its point grows from its
// lower left corner, and so on around the compass.
func Placement(pos maplabel.Position, b orb.Bound) (anchor orb.Point, halign, valign canvas.TextAlign) {
	c := b.Center()
	switch pos {
	case maplabel.Right:
		return orb.Point{b.Min[0], c[1]}, canvas.Left, canvas.Center
	case maplabel.UpperRight:
		return b.Min, canvas.Left, canvas.Bottom
	case maplabel.Top:
		return orb.Point{c[0], b.Min[1]}, canvas.Center, canvas.Bottom
	case maplabel.UpperLeft:
		return orb.Point{b.Max[0], b.Min[1]}, canvas.Right, canvas.Bottom
	case maplabel.Left:
		return orb.Point{b.Max[0], c[1]}, canvas.Right, canvas.Center
	case maplabel.LowerLeft:
		return b.Max, canvas.Right, canvas.Top
	case maplabel.Bottom:
		return orb.Point{c[0], b.Max[1]}, canvas.Center, canvas.Top
	case maplabel.LowerRight:
		return orb.Point{b.Min[0], b.Max[1]}, canvas.Left, canvas.Top
	}
	return c, canvas.Center, canvas.Center
}

// Options control the drawing. Scale is millimetres of paper per map unit.
type Options struct {
	Scale  float64
	Margin float64 // millimetres around the bounding box

	Face *canvas.FontFace // nil draws label rectangles instead of text

	PointColor  color.Color
	LabelColor  color.Color
	BorderColor color.Color
	BoxColor    color.Color // outline of each placed label, transparent to skip
}

// DefaultOptions draws one millimetre per map unit.
func DefaultOptions() Options {
	return Options{
		Scale:       1,
		Margin:      5,
		PointColor:  canvas.Black,
		LabelColor:  canvas.Black,
		BorderColor: canvas.Gray,
		BoxColor:    canvas.Transparent,
	}
}

// Canvas draws the layout on a new canvas sized to its bounding box plus the margin.
func Canvas(l *maplabel.Layout, opts Options) *canvas.Canvas {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	w := (l.Bounds.Max[0]-l.Bounds.Min[0])*opts.Scale + 2*opts.Margin
	h := (l.Bounds.Max[1]-l.Bounds.Min[1])*opts.Scale + 2*opts.Margin
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	Draw(ctx, l, opts)
	return c
}

// Draw paints the bounding box, every point and every placed label on ctx.
func Draw(ctx *canvas.Context, l *maplabel.Layout, opts Options) {
	s := opts.Scale
	origin := l.Bounds.Min
	toPaper := func(p orb.Point) (float64, float64) {
		return (p[0]-origin[0])*s + opts.Margin, (p[1]-origin[1])*s + opts.Margin
	}

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(opts.BorderColor)
	ctx.SetStrokeWidth(0.2)
	x, y := toPaper(l.Bounds.Min)
	ctx.DrawPath(x, y, canvas.Rectangle((l.Bounds.Max[0]-l.Bounds.Min[0])*s, (l.Bounds.Max[1]-l.Bounds.Min[1])*s))

	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetFillColor(opts.PointColor)
	for i := range l.Points {
		p := &l.Points[i]
		r := p.Radius * s
		if r <= 0 {
			r = 0.3
		}
		x, y := toPaper(p.Pos)
		ctx.DrawPath(x, y, canvas.Circle(r))
	}

	for i := range l.Points {
		sel := l.Selected(i)
		if sel == nil {
			continue
		}
		b := sel.Bound
		x0, y0 := toPaper(b.Min)
		w, h := (b.Max[0]-b.Min[0])*s, (b.Max[1]-b.Min[1])*s

		outline := opts.BoxColor
		if opts.Face == nil {
			outline = opts.LabelColor
		}
		if outline != nil && outline != canvas.Transparent {
			ctx.SetFillColor(canvas.Transparent)
			ctx.SetStrokeColor(outline)
			ctx.SetStrokeWidth(0.1)
			ctx.DrawPath(x0, y0, canvas.Rectangle(w, h))
		}
		if opts.Face == nil {
			continue
		}
		_, halign, valign := Placement(sel.Position, b)
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetFillColor(opts.LabelColor)
		// text boxes hang down from their top left corner
		ctx.DrawText(x0, y0+h, canvas.NewTextBox(opts.Face, l.Points[i].Text, w, h, halign, valign, &canvas.TextOptions{Indent: 0, LineStretch: 0}))
	}
}

// Write renders the layout to filename. The format follows the extension
// (.svg, .pdf, .png, ...).
func Write(filename string, l *maplabel.Layout, opts Options) error {
	return renderers.Write(filename, Canvas(l, opts))
}
