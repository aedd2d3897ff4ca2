package zones

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
)

// fixtureZone describes one polygon record for a generated test shapefile.
type fixtureZone struct {
	rings    [][]shp.Point
	capID    string
	prodType string
	issuance string
}

// wwaFields mirrors the attribute fields of the NOAA WWA shapefile that
// the pipeline reads.
func wwaFields() []shp.Field {
	return []shp.Field{
		shp.StringField("CAP_ID", 64),
		shp.StringField("PROD_TYPE", 32),
		shp.StringField("ISSUANCE", 32),
	}
}

// writeZoneShapefile writes a current_all.shp (plus .shx/.dbf) into dir.
func writeZoneShapefile(t *testing.T, dir string, zones []fixtureZone) {
	t.Helper()
	writeShapefileWithFields(t, dir, wwaFields(), zones)
}

func writeShapefileWithFields(t *testing.T, dir string, fields []shp.Field, zones []fixtureZone) {
	t.Helper()

	w, err := shp.Create(filepath.Join(dir, "current_all.shp"), shp.POLYGON)
	require.NoError(t, err)
	defer w.Close()

	w.SetFields(fields)

	for n, z := range zones {
		w.Write(newFixturePolygon(z.rings))

		attrs := []string{z.capID, z.prodType, z.issuance}
		for i := range fields {
			if i < len(attrs) {
				require.NoError(t, w.WriteAttribute(n, i, attrs[i]))
			}
		}
	}
}

// newFixturePolygon builds a writable shapefile polygon from closed
// rings, filling in the part offsets, point count, and bounding box the
// writer serializes.
func newFixturePolygon(rings [][]shp.Point) *shp.Polygon {
	p := &shp.Polygon{}
	for _, ring := range rings {
		p.Parts = append(p.Parts, int32(len(p.Points)))
		p.Points = append(p.Points, ring...)
	}
	p.NumParts = int32(len(p.Parts))
	p.NumPoints = int32(len(p.Points))

	p.Box = shp.Box{MinX: p.Points[0].X, MinY: p.Points[0].Y, MaxX: p.Points[0].X, MaxY: p.Points[0].Y}
	for _, pt := range p.Points {
		p.Box.MinX = min(p.Box.MinX, pt.X)
		p.Box.MinY = min(p.Box.MinY, pt.Y)
		p.Box.MaxX = max(p.Box.MaxX, pt.X)
		p.Box.MaxY = max(p.Box.MaxY, pt.Y)
	}
	return p
}

// fixtureSquare is a closed clockwise ring for fixture records.
func fixtureSquare() []shp.Point {
	return []shp.Point{
		{X: -80.0, Y: 25.0},
		{X: -80.0, Y: 26.0},
		{X: -79.0, Y: 26.0},
		{X: -79.0, Y: 25.0},
		{X: -80.0, Y: 25.0},
	}
}
