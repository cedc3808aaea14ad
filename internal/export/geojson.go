package export

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// EncodeFeatureCollection renders geometries as a GeoJSON feature
// collection; each feature carries the lookup id in its properties.
func EncodeFeatureCollection(id string, geoms []geom.T) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(geoms))}
	for _, g := range geoms {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       id,
			Geometry: g,
			Properties: map[string]any{
				"id": id,
			},
		})
	}
	b, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode feature collection")
	}
	return b, nil
}

// DecodeFeatureCollection parses a GeoJSON feature collection back into
// its geometries, used when re-exporting cached lookups.
func DecodeFeatureCollection(body []byte) ([]geom.T, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, eris.Wrap(err, "export: decode feature collection")
	}
	geoms := make([]geom.T, 0, len(fc.Features))
	for _, f := range fc.Features {
		geoms = append(geoms, f.Geometry)
	}
	return geoms, nil
}
