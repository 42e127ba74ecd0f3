package export

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"roadexport/osmprocessing"
	"roadexport/palette"
)

// GeoJSON writes every way as a LineString feature in plain
// longitude/latitude, carrying the same colors as the road list.
func GeoJSON(snap *osmprocessing.Snapshot) ([]byte, error) {
	ways := snap.Ways()
	fc := geojson.NewFeatureCollection()

	for i, way := range ways {
		f := geojson.NewFeature(way.Geo)
		f.ID = int64(way.ID)
		f.Properties["index"] = i
		f.Properties["file"] = FileName(i)
		f.Properties["stroke"] = palette.Hex(i, len(ways))
		f.Properties[osmprocessing.HighwayKey] = way.Highway()
		if name := way.Tags.Find("name"); name != "" {
			f.Properties["name"] = name
		}
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal geojson %w", err)
	}
	return data, nil
}
