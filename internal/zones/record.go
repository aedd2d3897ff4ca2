package zones

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
)

// ErrSchema marks an attribute record that violates the expected dBase
// schema: a required field is absent or not of the expected type.
var ErrSchema = eris.New("zones: attribute schema violation")

// Record is one shapefile attribute row together with its dBase field
// descriptors. Values are held as the trimmed strings go-shp decodes;
// type information lives in the descriptors.
type Record struct {
	fields []shp.Field
	values []string
}

// Character returns the value of the named character-typed field.
// Field names compare case-insensitively; dbf headers pad names with
// NULs, which are stripped first.
func (r Record) Character(name string) (string, error) {
	for i, f := range r.fields {
		fieldName := strings.TrimRight(f.String(), "\x00")
		if !strings.EqualFold(fieldName, name) {
			continue
		}
		if f.Fieldtype != 'C' {
			return "", eris.Wrapf(ErrSchema, "expected %q to be a character field, got dBase type %q", name, f.Fieldtype)
		}
		return r.values[i], nil
	}
	return "", eris.Wrapf(ErrSchema, "field %q is not within the record", name)
}
