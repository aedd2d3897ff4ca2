package lookup

import (
	"context"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wxwarn/internal/archive"
	"github.com/sells-group/wxwarn/internal/zones"
	"github.com/sells-group/wxwarn/pkg/nws"
)

// Attribute fields the pipeline requires on every matched record. All
// three must be character fields; the archive guarantees them, and a
// violation aborts the run.
const (
	capIDField    = "CAP_ID"
	prodTypeField = "PROD_TYPE"
	issuanceField = "ISSUANCE"
)

// Options configures a single lookup run.
type Options struct {
	Lat        float64
	Lon        float64
	ArchiveURL string

	// HTTPClient is shared by the archive fetch and, through NWS, by
	// every alert fetch.
	HTTPClient *http.Client
	NWS        *nws.Client
	Out        io.Writer
}

// Run resolves and prints every active alert whose zone polygon contains
// the coordinate. Strictly sequential: fetch archive, extract, decode
// zones, match, then one alert fetch per match in match order. A failed
// alert fetch prints an error marker and the loop continues; every other
// failure aborts the run before any output.
func Run(ctx context.Context, opts Options) error {
	log := zap.L().With(zap.Float64("lat", opts.Lat), zap.Float64("lon", opts.Lon))

	archivePath, cleanup, err := archive.Fetch(ctx, opts.HTTPClient, opts.ArchiveURL)
	if err != nil {
		return eris.Wrap(err, "lookup: fetch archive")
	}
	defer cleanup()

	dir, err := archive.Extract(archivePath)
	if err != nil {
		return eris.Wrap(err, "lookup: extract archive")
	}

	zs, err := zones.ReadAll(dir)
	if err != nil {
		return eris.Wrap(err, "lookup: read alert zones")
	}

	matches := zones.Match(zs, opts.Lat, opts.Lon)
	log.Debug("matched alert zones", zap.Int("zones", len(zs)), zap.Int("matches", len(matches)))

	ids, err := identifiers(matches)
	if err != nil {
		return eris.Wrap(err, "lookup: extract alert identifiers")
	}

	p := NewPresenter(opts.Out)
	for _, id := range ids {
		alert, err := opts.NWS.Alert(ctx, id)
		if err != nil {
			log.Warn("alert fetch failed", zap.String("cap_id", id), zap.Error(err))
			p.Error()
			continue
		}
		p.Alert(alert)
	}

	return nil
}

// identifiers extracts CAP_ID from every match before any fetching or
// printing starts, so a schema violation anywhere in the match set aborts
// with zero output. PROD_TYPE and ISSUANCE are validated alongside; their
// values only feed the debug log (no latest-alert filtering happens).
func identifiers(matches []zones.Zone) ([]string, error) {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		capID, err := m.Attrs.Character(capIDField)
		if err != nil {
			return nil, err
		}
		prodType, err := m.Attrs.Character(prodTypeField)
		if err != nil {
			return nil, err
		}
		issuance, err := m.Attrs.Character(issuanceField)
		if err != nil {
			return nil, err
		}

		zap.L().Debug("matched alert zone",
			zap.String("cap_id", capID),
			zap.String("prod_type", prodType),
			zap.String("issuance", issuance),
		)
		ids = append(ids, capID)
	}
	return ids, nil
}
