package zones

import (
	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
)

// Match returns, in input order, the zones whose polygon contains the
// query point (x = longitude, y = latitude). Points on a ring boundary
// count as contained, per the underlying predicate. A zone whose polygon
// cannot be converted is treated as non-containing.
func Match(zs []Zone, lat, lon float64) []Zone {
	point := geom.Coord{lon, lat}

	var matched []Zone
	for _, z := range zs {
		mp := toMultiPolygon(z.Polygon)
		if mp == nil {
			continue
		}
		if contains(mp, point) {
			matched = append(matched, z)
		}
	}
	return matched
}

// toMultiPolygon converts a shapefile polygon to a geom.MultiPolygon.
// Shapefile exteriors wind clockwise, so a clockwise part opens a new
// polygon and counter-clockwise parts become holes of the most recent
// exterior. A leading counter-clockwise part degenerates to its own
// exterior rather than being dropped. Returns nil for malformed input.
func toMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	var polys []*geom.Polygon
	var current *geom.Polygon

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}
		if end <= start {
			continue
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		ring := geom.NewLinearRingFlat(geom.XY, flat)

		if current != nil && xy.IsRingCounterClockwise(geom.XY, ring.FlatCoords()) {
			if err := current.Push(ring); err != nil {
				zap.L().Debug("zones: skipping malformed interior ring", zap.Int32("part", i), zap.Error(err))
			}
			continue
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("zones: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		polys = append(polys, poly)
		current = poly
	}

	if len(polys) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i, poly := range polys {
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("zones: skipping malformed polygon part", zap.Int("polygon", i), zap.Error(err))
		}
	}
	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// contains reports whether the point lies inside any polygon of mp:
// inside its exterior ring and not inside any of its holes.
func contains(mp *geom.MultiPolygon, point geom.Coord) bool {
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		if poly.NumLinearRings() == 0 {
			continue
		}
		if !xy.IsPointInRing(geom.XY, point, poly.LinearRing(0).FlatCoords()) {
			continue
		}

		inHole := false
		for j := 1; j < poly.NumLinearRings(); j++ {
			if xy.IsPointInRing(geom.XY, point, poly.LinearRing(j).FlatCoords()) {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}
