package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// A single connection keeps in-memory databases coherent and avoids
	// SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS geometry_cache (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	lookup_id  TEXT NOT NULL,
	geojson    TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL,
	UNIQUE (kind, lookup_id)
);

CREATE INDEX IF NOT EXISTS idx_geometry_cache_expires ON geometry_cache(expires_at);
`

// Migrate creates the cache schema if missing.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// GetGeometry returns the cached GeoJSON for a lookup, with a hit flag.
func (s *SQLiteStore) GetGeometry(ctx context.Context, kind, id string) ([]byte, bool, error) {
	var geojson []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT geojson FROM geometry_cache
		WHERE kind = ? AND lookup_id = ? AND expires_at > datetime('now')`,
		kind, id,
	).Scan(&geojson)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: get geometry")
	}
	return geojson, true, nil
}

// PutGeometry inserts or refreshes a cache entry.
func (s *SQLiteStore) PutGeometry(ctx context.Context, kind, id string, geojson []byte, ttl time.Duration) error {
	expires := time.Now().UTC().Add(ttl).Format("2006-01-02 15:04:05")
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO geometry_cache (id, kind, lookup_id, geojson, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (kind, lookup_id) DO UPDATE SET
			geojson    = excluded.geojson,
			fetched_at = datetime('now'),
			expires_at = excluded.expires_at`,
		uuid.NewString(), kind, id, geojson, expires,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: put geometry")
	}
	return nil
}

// DeleteExpired removes entries past their expiry.
func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM geometry_cache WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return n, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
