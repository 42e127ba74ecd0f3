package render

import (
	"image/color"

	"github.com/paulmach/orb"
)

type Stroke struct {
	Points orb.LineString
	Color  color.RGBA64
}

// Recorder is a Surface that remembers what was drawn on it since the last
// Clear.
type Recorder struct {
	Width, Height int
	Clears        int
	Strokes       []Stroke
}

func (r *Recorder) Resize(width, height int) {
	r.Width, r.Height = width, height
	r.Strokes = nil
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Strokes = nil
}

func (r *Recorder) StrokePolyline(points orb.LineString, c color.Color) {
	cr, cg, cb, ca := c.RGBA()
	r.Strokes = append(r.Strokes, Stroke{
		Points: append(orb.LineString(nil), points...),
		Color:  color.RGBA64{R: uint16(cr), G: uint16(cg), B: uint16(cb), A: uint16(ca)},
	})
}
