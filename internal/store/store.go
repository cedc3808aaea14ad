// Package store caches fetched geometries (as GeoJSON) so repeated
// lookups of the same region or parcel skip the remote service. Backends:
// SQLite (default) and Postgres, selected by the store.driver config.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// Geometry kinds stored in the cache.
const (
	KindRegion = "region"
	KindParcel = "parcel"
)

// Store is the persistence interface for the geometry cache.
type Store interface {
	// GetGeometry returns the cached GeoJSON for a lookup, with a hit flag.
	// Expired entries are misses.
	GetGeometry(ctx context.Context, kind, id string) ([]byte, bool, error)

	// PutGeometry inserts or refreshes a cache entry.
	PutGeometry(ctx context.Context, kind, id string, geojson []byte, ttl time.Duration) error

	// DeleteExpired removes entries past their expiry, returning the count.
	DeleteExpired(ctx context.Context) (int64, error)

	// Migrate creates the schema if missing.
	Migrate(ctx context.Context) error

	Close() error
}

// Open creates a Store for the configured driver. dsn is the SQLite path
// or the Postgres connection string.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
