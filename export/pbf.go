package export

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/grab/gosm"
	"github.com/paulmach/osm"

	"roadexport/osmprocessing"
)

const gosmWriteElementsMax = 8000

func toGosmNode(n *osm.Node) *gosm.Node {
	return &gosm.Node{
		ID:        int64(n.ID),
		Latitude:  n.Lat,
		Longitude: n.Lon,
	}
}

func toGosmWay(w *osm.Way) *gosm.Way {
	ids := make([]int64, len(w.Nodes))
	for i, id := range w.Nodes.NodeIDs() {
		ids[i] = int64(id)
	}
	return &gosm.Way{
		ID:      int64(w.ID),
		Tags:    w.TagMap(),
		NodeIDs: ids,
	}
}

// the encoder closes its writer; the caller owns w.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// WritePBF encodes the highway subgraph as an .osm.pbf stream, nodes first
// and both element kinds sorted by id. w is not closed.
func WritePBF(w io.Writer, m *osmprocessing.Map) error {
	encoder := gosm.NewEncoder(&gosm.NewEncoderRequiredInput{
		RequiredFeatures: []string{"OsmSchema-V0.6", "DenseNodes"},
		Writer:           nopWriteCloser{w},
	},
		gosm.WithWritingProgram("roadexport"),
		gosm.WithZlipEnabled(true),
	)

	errChan, err := encoder.Start()
	if err != nil {
		return fmt.Errorf("failed to start pbf encoder %w", err)
	}

	var errs []error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range errChan {
			errs = append(errs, e)
		}
	}()

	nodes := make([]*osm.Node, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	batch := make([]*gosm.Node, 0, gosmWriteElementsMax)
	for _, n := range nodes {
		batch = append(batch, toGosmNode(n))
		if len(batch) == gosmWriteElementsMax {
			encoder.AppendNodes(batch)
			batch = make([]*gosm.Node, 0, gosmWriteElementsMax)
		}
	}
	if len(batch) > 0 {
		encoder.AppendNodes(batch)
	}

	ways := append([]*osm.Way(nil), m.Ways...)
	sort.SliceStable(ways, func(i, j int) bool { return ways[i].ID < ways[j].ID })

	wayBatch := make([]*gosm.Way, 0, gosmWriteElementsMax)
	for _, way := range ways {
		wayBatch = append(wayBatch, toGosmWay(way))
		if len(wayBatch) == gosmWriteElementsMax {
			encoder.AppendWays(wayBatch)
			wayBatch = make([]*gosm.Way, 0, gosmWriteElementsMax)
		}
	}
	if len(wayBatch) > 0 {
		encoder.AppendWays(wayBatch)
	}

	// Close drains the member buffers and closes errChan.
	closeErr := encoder.Close()
	<-done
	if closeErr != nil {
		errs = append(errs, closeErr)
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to encode pbf %w", errors.Join(errs...))
	}
	return nil
}
