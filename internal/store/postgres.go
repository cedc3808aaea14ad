package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/uldk-cli/internal/db"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool creates a PostgresStore around an existing pool.
// Used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS geometry_cache (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	lookup_id  TEXT NOT NULL,
	geojson    TEXT NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL,
	UNIQUE (kind, lookup_id)
);

CREATE INDEX IF NOT EXISTS idx_geometry_cache_expires ON geometry_cache(expires_at);
`

// Migrate creates the cache schema if missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// GetGeometry returns the cached GeoJSON for a lookup, with a hit flag.
func (s *PostgresStore) GetGeometry(ctx context.Context, kind, id string) ([]byte, bool, error) {
	var geojson []byte
	err := s.pool.QueryRow(ctx, `
		SELECT geojson FROM geometry_cache
		WHERE kind = $1 AND lookup_id = $2 AND expires_at > now()`,
		kind, id,
	).Scan(&geojson)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "postgres: get geometry")
	}
	return geojson, true, nil
}

// PutGeometry inserts or refreshes a cache entry.
func (s *PostgresStore) PutGeometry(ctx context.Context, kind, id string, geojson []byte, ttl time.Duration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO geometry_cache (id, kind, lookup_id, geojson, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, now(), $5)
		ON CONFLICT (kind, lookup_id) DO UPDATE SET
			geojson    = EXCLUDED.geojson,
			fetched_at = now(),
			expires_at = EXCLUDED.expires_at`,
		uuid.NewString(), kind, id, geojson, time.Now().UTC().Add(ttl),
	)
	if err != nil {
		return eris.Wrap(err, "postgres: put geometry")
	}
	return nil
}

// DeleteExpired removes entries past their expiry.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM geometry_cache WHERE expires_at <= now()`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired")
	}
	return tag.RowsAffected(), nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
