package uldk

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/uldk-cli/pkg/epsg2180"
)

// ReprojectToWGS84 transforms every coordinate pair of g from EPSG:2180
// to WGS84 longitude/latitude and returns a new geometry with SRID 4326.
// Ring structure and winding order are preserved. Geometry types other
// than Point, Polygon and MultiPolygon are returned unchanged; the
// service only ever returns these three.
func ReprojectToWGS84(g geom.T) geom.T {
	switch g := g.(type) {
	case *geom.Point:
		return geom.NewPointFlat(g.Layout(), reprojectFlat(g.FlatCoords(), g.Stride())).SetSRID(4326)
	case *geom.Polygon:
		return geom.NewPolygonFlat(g.Layout(), reprojectFlat(g.FlatCoords(), g.Stride()), g.Ends()).SetSRID(4326)
	case *geom.MultiPolygon:
		return geom.NewMultiPolygonFlat(g.Layout(), reprojectFlat(g.FlatCoords(), g.Stride()), g.Endss()).SetSRID(4326)
	default:
		return g
	}
}

// reprojectFlat transforms the first two ordinates of each coordinate in a
// flat coordinate slice, leaving any extra ordinates (Z, M) untouched.
func reprojectFlat(src []float64, stride int) []float64 {
	flat := make([]float64, len(src))
	copy(flat, src)
	for i := 0; i+1 < len(flat); i += stride {
		flat[i], flat[i+1] = epsg2180.ToWGS84(src[i], src[i+1])
	}
	return flat
}
