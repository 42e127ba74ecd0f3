package osmprocessing

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

func assertWithinPercent(t *testing.T, got, want, percentTolerance float64) {
	t.Helper()

	if want == 0 {
		if math.Abs(got) > percentTolerance {
			t.Errorf("got %.6f, want 0 (absolute diff: %.6f > %.6f)",
				got, math.Abs(got), percentTolerance)
		}
		return
	}

	relativeError := math.Abs(got-want) / math.Abs(want)

	if relativeError > percentTolerance/100.0 {
		t.Errorf("got %.6f, want %.6f (deviation: %.2f%%, max: %.2f%%)",
			got, want, relativeError*100, percentTolerance)
	}
}

func TestWayLength(t *testing.T) {
	tests := []struct {
		name     string
		points   orb.LineString
		expected float64
	}{
		{"empty", nil, 0},
		{"single point", orb.LineString{{3, 4}}, 0},
		{"3-4-5 triangle", orb.LineString{{0, 0}, {3, 4}}, 5},
		{"two segments", orb.LineString{{0, 0}, {0, 10}, {10, 10}}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WayLength(Way{Points: tt.points})
			assertWithinPercent(t, got, tt.expected, 0.01)
		})
	}
}

func TestWayLengthMeters(t *testing.T) {
	tests := []struct {
		name     string
		geo      orb.LineString
		expected float64
	}{
		{
			name:     "1 degree north from equator",
			geo:      orb.LineString{{0, 0}, {0, 1}},
			expected: 111320.0,
		},
		{
			name:     "1 degree east from equator",
			geo:      orb.LineString{{0, 0}, {1, 0}},
			expected: 111320.0,
		},
		{
			name:     "zero distance",
			geo:      orb.LineString{{7, 46}, {7, 46}},
			expected: 0.0,
		},
		{
			name:     "100km approximately",
			geo:      orb.LineString{{7, 46}, {7, 46.898}},
			expected: 100000.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WayLengthMeters(Way{Geo: tt.geo})
			assertWithinPercent(t, got, tt.expected, 0.5)
		})
	}
}

func TestCalculateBounds(t *testing.T) {
	ways := []Way{
		{Points: orb.LineString{{1, 5}, {4, 2}}},
		{Points: orb.LineString{{-3, 7}}},
		{Points: orb.LineString{{6, 1}}},
		{},
	}

	bounds, ok := CalculateBounds(ways)
	if !ok {
		t.Fatal("expected bounds")
	}

	want := orb.Bound{Min: orb.Point{-3, 1}, Max: orb.Point{6, 7}}
	if bounds != want {
		t.Fatalf("got %v, want %v", bounds, want)
	}

	t.Run("no points", func(t *testing.T) {
		if _, ok := CalculateBounds([]Way{{}}); ok {
			t.Error("expected no bounds for empty ways")
		}
	})

	t.Run("bounds contain all points", func(t *testing.T) {
		if n := OutsideBounds(ways, bounds); n != 0 {
			t.Errorf("%d points outside their own extent", n)
		}
	})

	t.Run("outside declared bounds", func(t *testing.T) {
		// (1,5) sits on the edge and counts as inside
		declared := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{5, 5}}
		if n := OutsideBounds(ways, declared); n != 2 {
			t.Errorf("expected 2 points outside, got %d", n)
		}
	})
}

func generateNetworkMap() *Map {
	way := func(id osm.WayID, refs ...osm.NodeID) *osm.Way {
		w := &osm.Way{ID: id, Tags: osm.Tags{{Key: HighwayKey, Value: "residential"}}}
		for _, ref := range refs {
			w.Nodes = append(w.Nodes, osm.WayNode{ID: ref})
		}
		return w
	}

	m := &Map{Nodes: make(map[osm.NodeID]*osm.Node)}
	for id := osm.NodeID(1); id <= 7; id++ {
		m.Nodes[id] = &osm.Node{ID: id}
	}

	m.Ways = []*osm.Way{
		way(1, 1, 2, 3),
		way(2, 4, 2, 5),
		way(3, 6, 7),
		way(4, 7, 7),
	}
	return m
}

func TestNetwork(t *testing.T) {
	n, err := NewNetwork(generateNetworkMap())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	t.Run("builds indexes", func(t *testing.T) {
		if len(n.WaysByID) != 4 {
			t.Errorf("WaysByID has %d entries, expected 4", len(n.WaysByID))
		}
		order, err := n.Graph.Order()
		if err != nil || order != 7 {
			t.Errorf("expected 7 vertices, got %d (%v)", order, err)
		}
	})

	t.Run("finds connected ways", func(t *testing.T) {
		if got := len(n.GetConnectedWays(2)); got != 2 {
			t.Errorf("node 2 should join 2 ways, got %d", got)
		}
		if got := len(n.GetConnectedWays(1)); got != 1 {
			t.Errorf("node 1 should belong to 1 way, got %d", got)
		}
	})

	t.Run("junctions", func(t *testing.T) {
		got := n.Junctions()
		if len(got) != 2 || got[0] != 2 || got[1] != 7 {
			t.Errorf("expected junctions [2 7], got %v", got)
		}
	})

	t.Run("components", func(t *testing.T) {
		got, err := n.Components()
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if got != 2 {
			t.Errorf("expected 2 components, got %d", got)
		}
	})
}
