package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/uldk-cli/internal/export"
	"github.com/sells-group/uldk-cli/internal/store"
)

// lookupConcurrency caps parallel requests in batch geometry lookups.
const lookupConcurrency = 4

// geometryLookup fetches geometries for a batch of ids, going through the
// cache when enabled, and writes GeoJSON to stdout or a shapefile.
func geometryLookup(cmd *cobra.Command, kind string, ids []string,
	fetch func(context.Context, string) ([]geom.T, error), shpPath string, noCache bool,
) error {
	cache := openCache(cmd.Context(), noCache)
	if cache != nil {
		defer cache.Close() //nolint:errcheck
	}
	ttl := time.Duration(cfg.Store.TTLHours) * time.Hour

	bodies := make([][]byte, len(ids))
	results := make([][]geom.T, len(ids))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if cache != nil {
				if body, hit, err := cache.GetGeometry(ctx, kind, id); err == nil && hit {
					geoms, err := export.DecodeFeatureCollection(body)
					if err == nil {
						bodies[i] = body
						results[i] = geoms
						return nil
					}
					zap.L().Warn("cache entry unreadable, refetching",
						zap.String("id", id), zap.Error(err))
				}
			}

			geoms, err := fetch(ctx, id)
			if err != nil {
				return err
			}

			body, err := export.EncodeFeatureCollection(id, geoms)
			if err != nil {
				return err
			}

			if cache != nil {
				if err := cache.PutGeometry(ctx, kind, id, body, ttl); err != nil {
					zap.L().Warn("cache store failed", zap.String("id", id), zap.Error(err))
				}
			}

			bodies[i] = body
			results[i] = geoms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if shpPath != "" {
		var flatIDs []string
		var flat []geom.T
		for i, geoms := range results {
			for _, g := range geoms {
				flatIDs = append(flatIDs, ids[i])
				flat = append(flat, g)
			}
		}
		if err := export.WriteShapefile(shpPath, flatIDs, flat); err != nil {
			return err
		}
		zap.L().Info("wrote shapefile",
			zap.String("path", shpPath),
			zap.Int("records", len(flat)),
		)
		return nil
	}

	for _, body := range bodies {
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
	}
	return nil
}

// openCache opens the configured geometry cache, or returns nil when
// caching is disabled or unavailable.
func openCache(ctx context.Context, noCache bool) store.Store {
	if noCache {
		return nil
	}

	dsn := cfg.Store.Path
	if cfg.Store.Driver == "postgres" {
		dsn = cfg.Store.DatabaseURL
	}

	st, err := store.Open(ctx, cfg.Store.Driver, dsn)
	if err != nil {
		zap.L().Warn("cache unavailable, fetching live", zap.Error(err))
		return nil
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("cache migrate failed, fetching live", zap.Error(err))
		st.Close() //nolint:errcheck
		return nil
	}
	return st
}
