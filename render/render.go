// Package render draws the ways of a snapshot onto a 2-D surface.
package render

import (
	"image/color"

	"github.com/paulmach/orb"

	"roadexport/osmprocessing"
	"roadexport/palette"
	"roadexport/projection"
)

// Surface is anything the ways can be stroked onto.
type Surface interface {
	Resize(width, height int)
	Clear()
	StrokePolyline(points orb.LineString, c color.Color)
}

// Draw clears the surface and strokes every way of the snapshot in its
// palette color. When the projection cannot be built the surface is left as
// it was.
func Draw(s Surface, snap *osmprocessing.Snapshot, vp projection.Viewport) error {
	proj, err := projection.New(snap.Bounds(), vp)
	if err != nil {
		return err
	}

	s.Clear()

	ways := snap.Ways()
	for i, way := range ways {
		if len(way.Points) < 2 {
			continue
		}
		s.StrokePolyline(proj.ProjectLine(way.Points), palette.Color(i, len(ways)))
	}

	return nil
}
