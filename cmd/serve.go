package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/uldk-cli/internal/server"
)

var (
	servePort    int
	serveNoCache bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over HTTP",
	Long:  "Starts an HTTP facade exposing unit lists as JSON and region/parcel geometries as GeoJSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cache := openCache(ctx, serveNoCache)
		if cache != nil {
			defer cache.Close() //nolint:errcheck
		}

		ttl := time.Duration(cfg.Store.TTLHours) * time.Hour
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port()),
			Handler: server.New(newULDKClient(), cache, ttl).Handler(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func port() int {
	if servePort != 0 {
		return servePort
	}
	return cfg.Server.Port
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable the geometry cache")
	rootCmd.AddCommand(serveCmd)
}
