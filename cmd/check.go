package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/wxwarn/internal/lookup"
	"github.com/sells-group/wxwarn/pkg/nws"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print active alerts for a coordinate",
	Long:  "Checks whether any active NWS alert zone contains the given latitude/longitude and prints each matching alert.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(); err != nil {
			return err
		}

		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")

		// One client serves the archive download and every alert fetch.
		httpClient := &http.Client{Timeout: time.Duration(cfg.Alerts.TimeoutSecs) * time.Second}

		err := lookup.Run(ctx, lookup.Options{
			Lat:        lat,
			Lon:        lon,
			ArchiveURL: cfg.Alerts.ShapefileURL,
			HTTPClient: httpClient,
			NWS:        nws.NewClient(httpClient, cfg.Alerts.APIBaseURL, cfg.Alerts.UserAgent),
			Out:        os.Stdout,
		})
		if err != nil {
			return eris.Wrap(err, "check")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Float64("lat", 43.2683199, "latitude of the point to check")
	checkCmd.Flags().Float64("lon", -70.8635506, "longitude of the point to check")
	rootCmd.AddCommand(checkCmd)
}
