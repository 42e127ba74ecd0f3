// Package projection maps source coordinates onto a pixel viewport.
//
// The mapping is a uniform scale anchored at the top-left of the bounds with
// the vertical axis flipped, so north ends up at the top of the image.
package projection

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

type Viewport struct {
	Width  float64
	Height float64
}

// DegenerateBoundsError is returned when the bounds have no area to scale
// from.
type DegenerateBoundsError struct {
	Bounds orb.Bound
}

func (e *DegenerateBoundsError) Error() string {
	return fmt.Sprintf("degenerate bounds %v-%v: width %g, height %g",
		e.Bounds.Min, e.Bounds.Max, e.Bounds.Max[0]-e.Bounds.Min[0], e.Bounds.Max[1]-e.Bounds.Min[1])
}

type Projector struct {
	bounds orb.Bound
	scale  float64
}

func New(bounds orb.Bound, vp Viewport) (*Projector, error) {
	width := bounds.Max[0] - bounds.Min[0]
	height := bounds.Max[1] - bounds.Min[1]
	if !(width > 0) || !(height > 0) {
		return nil, &DegenerateBoundsError{Bounds: bounds}
	}

	scale := math.Min(vp.Width/width, vp.Height/height)
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, &DegenerateBoundsError{Bounds: bounds}
	}

	return &Projector{bounds: bounds, scale: scale}, nil
}

func (p *Projector) Scale() float64 {
	return p.scale
}

func (p *Projector) Project(c orb.Point) orb.Point {
	return orb.Point{
		(c[0] - p.bounds.Min[0]) * p.scale,
		(p.bounds.Max[1] - c[1]) * p.scale,
	}
}

func (p *Projector) ProjectLine(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, c := range ls {
		out[i] = p.Project(c)
	}
	return out
}
