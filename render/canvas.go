package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
)

const lineWidth = 1.0

// Canvas is a raster Surface backed by a gg context.
type Canvas struct {
	dc *gg.Context
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

// Resize replaces the backing image; like a browser canvas the old content
// is dropped.
func (c *Canvas) Resize(width, height int) {
	c.dc = gg.NewContext(width, height)
}

func (c *Canvas) Clear() {
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
}

func (c *Canvas) StrokePolyline(points orb.LineString, col color.Color) {
	if len(points) < 2 {
		return
	}

	c.dc.NewSubPath()
	c.dc.MoveTo(points[0][0], points[0][1])
	for _, p := range points[1:] {
		c.dc.LineTo(p[0], p[1])
	}

	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.Stroke()
}

func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

func (c *Canvas) SavePNG(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("failed to create %q %w", fname, err)
	}
	defer f.Close()

	if err := c.EncodePNG(f); err != nil {
		return fmt.Errorf("failed to encode %q %w", fname, err)
	}
	return f.Close()
}
