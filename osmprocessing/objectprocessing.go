package osmprocessing

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Map is the raw highway subgraph of a document.
type Map struct {
	Ways  []*osm.Way
	Nodes map[osm.NodeID]*osm.Node
}

type Option func(*extractOptions)

type extractOptions struct {
	accept func(highway string) bool
}

// WithDrivableOnly keeps only the highway classes a car can use.
func WithDrivableOnly() Option {
	return func(o *extractOptions) {
		o.accept = func(highway string) bool { return drivableHighways[highway] }
	}
}

// Extract parses an OSM XML document and returns its declared bounds and
// every way tagged highway, with node references resolved in order.
// Nothing is returned unless the whole document could be read.
func Extract(raw []byte, opts ...Option) (*Snapshot, error) {
	o := extractOptions{accept: func(string) bool { return true }}
	for _, opt := range opts {
		opt(&o)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, &FormatError{Reason: "unreadable xml", Err: err}
	}

	root := doc.FindElement("//osm")
	if root == nil {
		return nil, &FormatError{Reason: "missing osm element"}
	}

	bounds, err := ingestBounds(root)
	if err != nil {
		return nil, err
	}

	nodes := make(map[osm.NodeID]*osm.Node)
	points := make(map[osm.NodeID]orb.Point)

	for _, el := range root.FindElements(".//node") {
		node, p, err := ingestNode(el)
		if err != nil {
			return nil, err
		}
		nodes[node.ID] = node
		points[node.ID] = p
	}

	var ways []Way
	var kept []*osm.Way
	usedNodes := make(map[osm.NodeID]*osm.Node)

	for _, el := range root.FindElements(".//way") {
		tags := ingestTags(el)
		if !tags.HasTag(HighwayKey) || !o.accept(tags.Find(HighwayKey)) {
			continue
		}

		w, err := ingestWay(el, tags)
		if err != nil {
			return nil, err
		}

		way := Way{
			ID:     w.ID,
			Tags:   w.Tags,
			Points: make(orb.LineString, 0, len(w.Nodes)),
			Geo:    make(orb.LineString, 0, len(w.Nodes)),
		}

		for i, wn := range w.Nodes {
			p, ok := points[wn.ID]
			if !ok {
				return nil, &ReferenceError{WayID: w.ID, NodeID: wn.ID}
			}
			n := nodes[wn.ID]
			w.Nodes[i].Lat, w.Nodes[i].Lon = n.Lat, n.Lon
			usedNodes[wn.ID] = n

			way.Points = append(way.Points, p)
			way.Geo = append(way.Geo, orb.Point{n.Lon, n.Lat})
		}

		ways = append(ways, way)
		kept = append(kept, w)
	}

	return NewSnapshot(bounds, ways, &Map{Ways: kept, Nodes: usedNodes}), nil
}

func ingestBounds(root *etree.Element) (orb.Bound, error) {
	el := root.FindElement(".//bounds")
	if el == nil {
		return orb.Bound{}, &FormatError{Reason: "missing bounds element"}
	}

	var v [4]float64
	for i, name := range []string{"minlon", "minlat", "maxlon", "maxlat"} {
		f, err := fixedPointAttr(el, name)
		if err != nil {
			return orb.Bound{}, err
		}
		v[i] = f
	}

	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

func ingestNode(el *etree.Element) (*osm.Node, orb.Point, error) {
	id, err := idAttr(el, "id")
	if err != nil {
		return nil, orb.Point{}, err
	}

	x, err := fixedPointAttr(el, "lon")
	if err != nil {
		return nil, orb.Point{}, err
	}
	y, err := fixedPointAttr(el, "lat")
	if err != nil {
		return nil, orb.Point{}, err
	}

	node := &osm.Node{ID: osm.NodeID(id), Visible: true}
	if node.Lon, err = parseDecimal(el.SelectAttrValue("lon", "")); err != nil {
		return nil, orb.Point{}, &FormatError{Reason: fmt.Sprintf("node %d lon", id), Err: err}
	}
	if node.Lat, err = parseDecimal(el.SelectAttrValue("lat", "")); err != nil {
		return nil, orb.Point{}, &FormatError{Reason: fmt.Sprintf("node %d lat", id), Err: err}
	}

	return node, orb.Point{x, y}, nil
}

func ingestTags(el *etree.Element) osm.Tags {
	var tags osm.Tags
	for _, t := range el.SelectElements("tag") {
		tags = append(tags, osm.Tag{
			Key:   t.SelectAttrValue("k", ""),
			Value: t.SelectAttrValue("v", ""),
		})
	}
	return tags
}

func ingestWay(el *etree.Element, tags osm.Tags) (*osm.Way, error) {
	var id int64
	if el.SelectAttr("id") != nil {
		var err error
		if id, err = idAttr(el, "id"); err != nil {
			return nil, err
		}
	}

	w := &osm.Way{ID: osm.WayID(id), Visible: true, Tags: tags}
	for _, nd := range el.SelectElements("nd") {
		ref, err := idAttr(nd, "ref")
		if err != nil {
			return nil, err
		}
		w.Nodes = append(w.Nodes, osm.WayNode{ID: osm.NodeID(ref)})
	}

	return w, nil
}

func idAttr(el *etree.Element, name string) (int64, error) {
	a := el.SelectAttr(name)
	if a == nil {
		return 0, &FormatError{Reason: fmt.Sprintf("%s element without %s", el.Tag, name)}
	}

	id, err := strconv.ParseInt(a.Value, 10, 64)
	if err != nil {
		return 0, &FormatError{Reason: fmt.Sprintf("%s %s", el.Tag, name), Err: err}
	}
	return id, nil
}

func fixedPointAttr(el *etree.Element, name string) (float64, error) {
	a := el.SelectAttr(name)
	if a == nil {
		return 0, &FormatError{Reason: fmt.Sprintf("%s element without %s", el.Tag, name)}
	}

	v, err := ParseFixedPoint(a.Value)
	if err != nil {
		return 0, &FormatError{Reason: fmt.Sprintf("%s %s", el.Tag, name), Err: err}
	}
	return v, nil
}
