// Package export turns the ways of a snapshot into standalone files.
//
// Every road is written as a JSON array of {x, y, z} records translated so
// that the first point of the road is the origin. The translation works in
// source units and ignores viewport and bounds.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"roadexport/osmprocessing"
	"roadexport/palette"
)

const (
	ManifestName = "manifest.json"
	indent       = "    "
)

// Point is one exported vertex. Z is reserved for elevation and always 0.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Entry is one row of the road list: the file to offer for download and the
// color the road is drawn in.
type Entry struct {
	Index   int     `json:"index"`
	File    string  `json:"file"`
	Color   string  `json:"color"`
	Hex     string  `json:"hex"`
	OSMID   int64   `json:"osm_id"`
	Highway string  `json:"highway"`
	Points  int     `json:"points"`
	Meters  float64 `json:"length_m"`
	Data    []byte  `json:"-"`
}

func FileName(index int) string {
	return fmt.Sprintf("road_%d.json", index)
}

func Normalize(ls orb.LineString) []Point {
	out := make([]Point, 0, len(ls))
	if len(ls) == 0 {
		return out
	}

	origin := ls[0]
	for _, p := range ls {
		out = append(out, Point{X: p[0] - origin[0], Y: p[1] - origin[1]})
	}
	return out
}

func Marshal(ls orb.LineString) ([]byte, error) {
	data, err := json.MarshalIndent(Normalize(ls), "", indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal road %w", err)
	}
	return data, nil
}

// Entries builds the list entry and file content of every way.
func Entries(snap *osmprocessing.Snapshot) ([]Entry, error) {
	ways := snap.Ways()
	entries := make([]Entry, 0, len(ways))

	for i, way := range ways {
		data, err := Marshal(way.Points)
		if err != nil {
			return nil, fmt.Errorf("failed to export way %d %w", way.ID, err)
		}

		entries = append(entries, Entry{
			Index:   i,
			File:    FileName(i),
			Color:   palette.CSS(i, len(ways)),
			Hex:     palette.Hex(i, len(ways)),
			OSMID:   int64(way.ID),
			Highway: way.Highway(),
			Points:  len(way.Points),
			Meters:  osmprocessing.WayLengthMeters(way),
			Data:    data,
		})
	}

	return entries, nil
}

// WriteAll writes every road file and the manifest listing them into dir.
func WriteAll(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %q %w", dir, err)
	}

	// files of a previous, longer road list
	stale, err := filepath.Glob(filepath.Join(dir, "road_*.json"))
	if err != nil {
		return fmt.Errorf("failed to list %q %w", dir, err)
	}
	for _, fname := range stale {
		if err := os.Remove(fname); err != nil {
			return fmt.Errorf("failed to remove %q %w", fname, err)
		}
	}

	for _, e := range entries {
		fname := filepath.Join(dir, e.File)
		if err := os.WriteFile(fname, e.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write file %q %w", fname, err)
		}
	}

	manifest, err := json.MarshalIndent(entries, "", indent)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest %w", err)
	}

	fname := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(fname, manifest, 0o644); err != nil {
		return fmt.Errorf("failed to write file %q %w", fname, err)
	}

	return nil
}
