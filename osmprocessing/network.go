package osmprocessing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/paulmach/osm"
)

// Network is the connectivity view of a highway subgraph.
type Network struct {
	Graph      graph.Graph[osm.NodeID, osm.NodeID]
	WaysByID   map[osm.WayID]*osm.Way
	NodeToWays map[osm.NodeID][]*osm.Way
}

func nodeHash(id osm.NodeID) osm.NodeID {
	return id
}

func NewNetwork(m *Map) (*Network, error) {
	n := &Network{
		Graph:      graph.New(nodeHash),
		WaysByID:   make(map[osm.WayID]*osm.Way),
		NodeToWays: make(map[osm.NodeID][]*osm.Way),
	}

	if err := n.BuildIndexes(m); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Network) BuildIndexes(m *Map) error {

	for _, way := range m.Ways {
		n.WaysByID[way.ID] = way
	}

	for _, way := range m.Ways {
		seen := make(map[osm.NodeID]bool)
		for _, wn := range way.Nodes {
			if !seen[wn.ID] {
				n.NodeToWays[wn.ID] = append(n.NodeToWays[wn.ID], way)
				seen[wn.ID] = true
			}

			err := n.Graph.AddVertex(wn.ID)
			if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return fmt.Errorf("failed to add node %d %w", wn.ID, err)
			}
		}

		for i := 0; i+1 < len(way.Nodes); i++ {
			a, b := way.Nodes[i].ID, way.Nodes[i+1].ID
			if a == b {
				continue
			}
			err := n.Graph.AddEdge(a, b)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return fmt.Errorf("failed to link nodes %d and %d %w", a, b, err)
			}
		}
	}

	return nil
}

func (n *Network) GetConnectedWays(nodeID osm.NodeID) []*osm.Way {
	return n.NodeToWays[nodeID]
}

// Junctions returns the nodes shared by two or more ways, sorted by id.
func (n *Network) Junctions() []osm.NodeID {
	var out []osm.NodeID
	for id, ways := range n.NodeToWays {
		if len(ways) > 1 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Components counts the connected pieces of the road network.
func (n *Network) Components() (int, error) {
	adjacency, err := n.Graph.AdjacencyMap()
	if err != nil {
		return 0, err
	}

	visited := make(map[osm.NodeID]bool, len(adjacency))
	components := 0

	for id := range adjacency {
		if visited[id] {
			continue
		}
		components++

		err := graph.BFS(n.Graph, id, func(v osm.NodeID) bool {
			visited[v] = true
			return false
		})
		if err != nil {
			return 0, err
		}
	}

	return components, nil
}
