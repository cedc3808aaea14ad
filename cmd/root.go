package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/uldk-cli/internal/config"
	"github.com/sells-group/uldk-cli/pkg/uldk"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "uldk-cli",
	Short: "Polish cadastral lookup client",
	Long:  "Looks up administrative units by TERYT code and region/parcel geometries against the ULDK service, reprojecting results from EPSG:2180 to WGS84.",
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

// newULDKClient builds the service client from config.
func newULDKClient() uldk.Client {
	return uldk.NewClient(
		uldk.WithBaseURL(cfg.ULDK.BaseURL),
		uldk.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.ULDK.TimeoutSecs) * time.Second}),
		uldk.WithRateLimit(cfg.ULDK.RateLimit),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
