// Package textmetrics measures label text in map units.
package textmetrics

import (
	"fmt"
	"unicode/utf8"

	"github.com/tdewolff/canvas"

	"github.com/bmharper/maplabel"
)

const mmPerPt = 25.4 / 72.0

// Measurer returns the width and height of a label in map units.
type Measurer interface {
	Measure(text string) (width, height float64)
}

// Fixed gives every character the same advance. It needs no font file.
type Fixed struct {
	Size    float64 // font size in points
	Advance float64 // advance per character as a fraction of the size
	Scale   float64 // map units per millimetre
}

func (f Fixed) Measure(text string) (float64, float64) {
	em := f.Size * mmPerPt * f.Scale
	return float64(utf8.RuneCountInString(text)) * f.Advance * em, 1.2 * em
}

// Font measures with the glyph advances of a real font face.
type Font struct {
	face  *canvas.FontFace
	scale float64
}

// LoadFont reads a TrueType or OpenType file. size is in points, scale in map units
// per millimetre.
func LoadFont(path string, size, scale float64) (*Font, error) {
	family := canvas.NewFontFamily("label")
	if err := family.LoadFontFile(path, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	face := family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	return &Font{face: face, scale: scale}, nil
}

// Face returns the face for drawing the labels that were measured with it.
func (f *Font) Face() *canvas.FontFace {
	return f.face
}

func (f *Font) Measure(text string) (float64, float64) {
	m := f.face.Metrics()
	return f.face.TextWidth(text) * f.scale, (m.Ascent + m.Descent) * f.scale
}

// Apply fills in the size of every point that has text but no size yet.
func Apply(m Measurer, points []maplabel.Point) {
	for i := range points {
		p := &points[i]
		if !p.HasText() || (p.Width > 0 && p.Height > 0) {
			continue
		}
		p.Width, p.Height = m.Measure(p.Text)
	}
}

var (
	_ Measurer = Fixed{}
	_ Measurer = (*Font)(nil)
)
