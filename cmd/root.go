package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/wxwarn/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wxwarn",
	Short: "NOAA weather alerts for a coordinate",
	Long:  "Downloads the NOAA active-alert polygon shapefile, finds the alert zones containing a coordinate, and prints the full alert text from api.weather.gov.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
