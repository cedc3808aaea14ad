// Package export writes fetched lookup results to local files: geometries
// to shapefiles, unit lists to XLSX workbooks.
package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// WriteShapefile writes geometries to a shapefile, one record per
// geometry, with an ID attribute column. All geometries must be points,
// or all polygonal (Polygon/MultiPolygon); other types are skipped.
func WriteShapefile(path string, ids []string, geoms []geom.T) error {
	if len(geoms) == 0 {
		return eris.New("export: no geometries to write")
	}
	if len(ids) != len(geoms) {
		return eris.Errorf("export: %d ids for %d geometries", len(ids), len(geoms))
	}

	shapeType := shp.ShapeType(shp.POLYGON)
	if _, ok := geoms[0].(*geom.Point); ok {
		shapeType = shp.POINT
	}

	w, err := shp.Create(path, shapeType)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	if err := w.SetFields([]shp.Field{shp.StringField("ID", 64)}); err != nil {
		return eris.Wrap(err, "export: set attribute fields")
	}

	for i, g := range geoms {
		shape := toShape(g, shapeType)
		if shape == nil {
			zap.L().Debug("export: skipping unsupported geometry",
				zap.String("id", ids[i]),
			)
			continue
		}
		n := w.Write(shape)
		if err := w.WriteAttribute(int(n), 0, ids[i]); err != nil {
			return eris.Wrapf(err, "export: write attribute for %s", ids[i])
		}
	}
	return nil
}

// toShape converts a WGS84 geometry to the go-shp shape matching the
// file's shape type. Returns nil for mismatched or unsupported types.
func toShape(g geom.T, shapeType shp.ShapeType) shp.Shape {
	switch g := g.(type) {
	case *geom.Point:
		if shapeType != shp.POINT {
			return nil
		}
		return &shp.Point{X: g.X(), Y: g.Y()}

	case *geom.Polygon:
		if shapeType != shp.POLYGON {
			return nil
		}
		return polygonToShape(polygonRings(g))

	case *geom.MultiPolygon:
		if shapeType != shp.POLYGON {
			return nil
		}
		var parts [][]shp.Point
		for i := 0; i < g.NumPolygons(); i++ {
			parts = append(parts, polygonRings(g.Polygon(i))...)
		}
		return polygonToShape(parts)

	default:
		return nil
	}
}

// polygonRings converts every ring of a polygon to a shapefile part.
func polygonRings(p *geom.Polygon) [][]shp.Point {
	parts := make([][]shp.Point, 0, p.NumLinearRings())
	for i := 0; i < p.NumLinearRings(); i++ {
		ring := p.LinearRing(i)
		pts := make([]shp.Point, 0, ring.NumCoords())
		for _, c := range ring.Coords() {
			pts = append(pts, shp.Point{X: c.X(), Y: c.Y()})
		}
		parts = append(parts, pts)
	}
	return parts
}

func polygonToShape(parts [][]shp.Point) shp.Shape {
	if len(parts) == 0 {
		return nil
	}
	poly := shp.Polygon(*shp.NewPolyLine(parts))
	return &poly
}
