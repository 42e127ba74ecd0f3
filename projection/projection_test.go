package projection

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/matryer/is"
	"github.com/paulmach/orb"
)

func TestProjectFlipsVerticalAxis(t *testing.T) {
	is := is.New(t)

	p, err := New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}, Viewport{Width: 100, Height: 100})
	is.NoErr(err)

	is.Equal(p.Project(orb.Point{0, 0}), orb.Point{0, 100})
	is.Equal(p.Project(orb.Point{10, 10}), orb.Point{100, 0})
	is.Equal(p.Project(orb.Point{5, 5}), orb.Point{50, 50})
}

func TestProjectUsesSmallerScale(t *testing.T) {
	is := is.New(t)

	// 20 wide, 10 high into a square: width limits the scale, the bottom
	// half of the viewport stays empty.
	p, err := New(orb.Bound{Min: orb.Point{100, 50}, Max: orb.Point{120, 60}}, Viewport{Width: 200, Height: 200})
	is.NoErr(err)

	is.Equal(p.Scale(), 10.0)
	is.Equal(p.Project(orb.Point{100, 60}), orb.Point{0, 0})
	is.Equal(p.Project(orb.Point{120, 50}), orb.Point{200, 100})
}

func TestProjectLine(t *testing.T) {
	is := is.New(t)

	p, err := New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}, Viewport{Width: 100, Height: 100})
	is.NoErr(err)

	in := orb.LineString{{0, 0}, {10, 0}, {10, 10}}
	out := p.ProjectLine(in)

	is.Equal(len(out), 3)
	is.Equal(out[1], orb.Point{100, 100})
	is.Equal(in[1], orb.Point{10, 0}) // input untouched
}

func TestProjectStaysInsideViewport(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(123))

	bounds := orb.Bound{Min: orb.Point{139700000, 35600000}, Max: orb.Point{139800000, 35700000}}
	viewports := []Viewport{{1280, 720}, {300, 900}, {1, 1}, {0, 0}}

	// float rounding of scale*extent
	const eps = 1e-9
	outside := func(px orb.Point, vp Viewport) bool {
		return px[0] < -eps || px[0] > vp.Width+eps || px[1] < -eps || px[1] > vp.Height+eps
	}

	for _, vp := range viewports {
		p, err := New(bounds, vp)
		is.NoErr(err)

		for i := 0; i < 1000; i++ {
			c := orb.Point{
				bounds.Min[0] + rng.Float64()*(bounds.Max[0]-bounds.Min[0]),
				bounds.Min[1] + rng.Float64()*(bounds.Max[1]-bounds.Min[1]),
			}
			px := p.Project(c)
			if outside(px, vp) {
				t.Fatalf("%v projected to %v outside %vx%v", c, px, vp.Width, vp.Height)
			}
		}

		for _, corner := range []orb.Point{bounds.Min, bounds.Max, {bounds.Min[0], bounds.Max[1]}, {bounds.Max[0], bounds.Min[1]}} {
			px := p.Project(corner)
			if outside(px, vp) {
				t.Fatalf("corner %v projected to %v outside %vx%v", corner, px, vp.Width, vp.Height)
			}
		}
	}
}

func TestDegenerateBounds(t *testing.T) {
	cases := []struct {
		name   string
		bounds orb.Bound
	}{
		{"zero width", orb.Bound{Min: orb.Point{5, 0}, Max: orb.Point{5, 10}}},
		{"zero height", orb.Bound{Min: orb.Point{0, 3}, Max: orb.Point{10, 3}}},
		{"point", orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 1}}},
		{"inverted", orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{0, 0}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)

			p, err := New(c.bounds, Viewport{Width: 100, Height: 100})
			is.True(p == nil)

			var degenerate *DegenerateBoundsError
			is.True(errors.As(err, &degenerate))
			is.Equal(degenerate.Bounds, c.bounds)
		})
	}
}
