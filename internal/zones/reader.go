package zones

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// shapefileName is the fixed geometry component name inside the NOAA
// bulk archive.
const shapefileName = "current_all.shp"

// ErrDecode marks a missing, structurally corrupt, or wrongly-typed
// shapefile.
var ErrDecode = eris.New("zones: shapefile decode failure")

// Zone pairs one alert polygon with its attribute record.
type Zone struct {
	Polygon *shp.Polygon
	Attrs   Record
}

// ReadAll decodes every polygon record from the shapefile in dir, in
// on-disk order. The whole store is materialized before returning so a
// mid-stream decode failure aborts the run instead of yielding a partial
// zone set.
func ReadAll(dir string) ([]Zone, error) {
	path := filepath.Join(dir, shapefileName)

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrDecode, "open %s: %v", path, err)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()

	var zs []Zone
	for reader.Next() {
		n, shape := reader.Shape()

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			return nil, eris.Wrapf(ErrDecode, "%s: record %d is %T, want polygon", shapefileName, n, shape)
		}

		values := make([]string, len(fields))
		for i := range fields {
			values[i] = strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
		}

		zs = append(zs, Zone{Polygon: poly, Attrs: Record{fields: fields, values: values}})
	}
	if err := reader.Err(); err != nil && err != io.EOF {
		return nil, eris.Wrapf(ErrDecode, "read %s: %v", shapefileName, err)
	}

	zap.L().Debug("decoded alert zone shapefile", zap.String("path", path), zap.Int("zones", len(zs)))
	return zs, nil
}
