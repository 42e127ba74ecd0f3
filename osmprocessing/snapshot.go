package osmprocessing

import (
	"github.com/mitchellh/copystructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Way is a highway way with its node references already resolved.
// Points holds the fixed-point reading of every node, Geo the plain
// decimal longitude/latitude of the same nodes.
type Way struct {
	ID     osm.WayID
	Tags   osm.Tags
	Points orb.LineString
	Geo    orb.LineString
}

func (w Way) Highway() string {
	return w.Tags.Find(HighwayKey)
}

// Snapshot is the result of one successful load. It is never modified after
// construction; every accessor hands out copies.
type Snapshot struct {
	bounds orb.Bound
	ways   []Way
	graph  *Map
}

func NewSnapshot(bounds orb.Bound, ways []Way, m *Map) *Snapshot {
	if m == nil {
		m = &Map{Nodes: make(map[osm.NodeID]*osm.Node)}
	}
	return &Snapshot{bounds: bounds, ways: ways, graph: m}
}

// EmptySnapshot holds no ways and only the given bounds.
func EmptySnapshot(bounds orb.Bound) *Snapshot {
	return NewSnapshot(bounds, nil, nil)
}

func (s *Snapshot) Bounds() orb.Bound {
	return s.bounds
}

func (s *Snapshot) Len() int {
	return len(s.ways)
}

func (s *Snapshot) Ways() []Way {
	if len(s.ways) == 0 {
		return nil
	}
	return copystructure.Must(copystructure.Copy(s.ways)).([]Way)
}

func (s *Snapshot) Way(i int) Way {
	return copystructure.Must(copystructure.Copy(s.ways[i])).(Way)
}

// Map returns a copy of the highway subgraph: the kept ways and every node
// they reference.
func (s *Snapshot) Map() *Map {
	return copystructure.Must(copystructure.Copy(s.graph)).(*Map)
}
