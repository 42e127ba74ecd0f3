package osmprocessing

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// WayLength is the planar length of the way in source units.
func WayLength(way Way) float64 {
	if len(way.Points) < 2 {
		return 0
	}
	return planar.Length(way.Points)
}

// WayLengthMeters is the geodesic length of the way using the plain decimal
// node coordinates.
func WayLengthMeters(way Way) float64 {
	if len(way.Geo) < 2 {
		return 0
	}
	return geo.Length(way.Geo)
}

// CalculateBounds is the extent of the resolved points of all ways, which
// can differ from the bounds the document declares.
func CalculateBounds(ways []Way) (orb.Bound, bool) {
	bounds := orb.Bound{
		Min: orb.Point{math.Inf(1), math.Inf(1)},
		Max: orb.Point{math.Inf(-1), math.Inf(-1)},
	}

	found := false
	for _, way := range ways {
		for _, p := range way.Points {
			bounds = bounds.Extend(p)
			found = true
		}
	}

	if !found {
		return orb.Bound{}, false
	}
	return bounds, true
}

// OutsideBounds counts the resolved points that fall outside b.
func OutsideBounds(ways []Way, b orb.Bound) int {
	count := 0
	for _, way := range ways {
		for _, p := range way.Points {
			if !b.Contains(p) {
				count++
			}
		}
	}
	return count
}
