// Package cascade holds the administrative unit selection state for the
// voivodeship → district → commune → precinct drill-down, backed by the
// ULDK client. Each level is a single-writer slot with last-write-wins
// semantics; stale in-flight fetches are discarded.
package cascade

import (
	"context"
	"fmt"
	"sync"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/uldk-cli/pkg/uldk"
)

type level int

const (
	levelVoivodeship level = iota
	levelDistrict
	levelCommune
	levelPrecinct
	levelCount
)

func (l level) String() string {
	switch l {
	case levelVoivodeship:
		return "voivodeship"
	case levelDistrict:
		return "district"
	case levelCommune:
		return "commune"
	case levelPrecinct:
		return "precinct"
	}
	return "unknown"
}

// Seed pre-populates the cascade on construction: each non-empty field is
// the TERYT code of a parent whose children are fetched immediately.
type Seed struct {
	Voivodeship string
	District    string
	Commune     string
}

// Cascade owns the per-level unit lists and a shared error message slot.
// All fields are guarded by mu; fetches may run concurrently and a
// completion is only applied if no newer fetch for the same level has
// been issued since.
type Cascade struct {
	client uldk.Client

	mu     sync.RWMutex
	slots  [levelCount][]uldk.Option
	gen    [levelCount]uint64
	errMsg string
}

// New creates a Cascade, fetches the voivodeship list once, and runs the
// seeded drill-down. Fetch failures are recorded in the error slot rather
// than returned.
func New(ctx context.Context, client uldk.Client, seed Seed) *Cascade {
	c := &Cascade{client: client}

	c.fetch(ctx, levelVoivodeship, func(ctx context.Context) ([]uldk.Option, error) {
		return client.Voivodeships(ctx)
	})

	if seed.Voivodeship != "" {
		c.FetchDistricts(ctx, seed.Voivodeship)
	}
	if seed.District != "" {
		c.FetchCommunes(ctx, seed.District)
	}
	if seed.Commune != "" {
		c.FetchPrecincts(ctx, seed.Commune)
	}
	return c
}

// FetchDistricts replaces the district slot with the districts of the
// given voivodeship. Downstream slots are left untouched.
func (c *Cascade) FetchDistricts(ctx context.Context, teryt string) {
	c.fetch(ctx, levelDistrict, func(ctx context.Context) ([]uldk.Option, error) {
		return c.client.Districts(ctx, teryt)
	})
}

// FetchCommunes replaces the commune slot with the communes of the given
// district.
func (c *Cascade) FetchCommunes(ctx context.Context, teryt string) {
	c.fetch(ctx, levelCommune, func(ctx context.Context) ([]uldk.Option, error) {
		return c.client.Communes(ctx, teryt)
	})
}

// FetchPrecincts replaces the precinct slot with the precincts of the
// given commune.
func (c *Cascade) FetchPrecincts(ctx context.Context, teryt string) {
	c.fetch(ctx, levelPrecinct, func(ctx context.Context) ([]uldk.Option, error) {
		return c.client.Precincts(ctx, teryt)
	})
}

// fetch runs one list lookup against a level slot. The generation counter
// makes the newest issued fetch win: an older completion arriving later
// is dropped instead of overwriting fresher data.
func (c *Cascade) fetch(ctx context.Context, lvl level, do func(context.Context) ([]uldk.Option, error)) {
	c.mu.Lock()
	c.gen[lvl]++
	gen := c.gen[lvl]
	c.mu.Unlock()

	opts, err := do(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen[lvl] {
		zap.L().Debug("cascade: discarding stale fetch",
			zap.String("level", lvl.String()),
			zap.Uint64("generation", gen),
		)
		return
	}

	if err != nil {
		c.errMsg = fmt.Sprintf("fetch %s list: %v", lvl, err)
		zap.L().Error("cascade: fetch failed",
			zap.String("level", lvl.String()),
			zap.Error(err),
		)
		return
	}

	c.slots[lvl] = opts
}

// RegionGeometryByID looks up an administrative region's geometry.
func (c *Cascade) RegionGeometryByID(ctx context.Context, id string) ([]geom.T, error) {
	geoms, err := c.client.RegionByID(ctx, id)
	if err != nil {
		zap.L().Error("cascade: region geometry lookup failed",
			zap.String("id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return geoms, nil
}

// ParcelGeometryByID looks up a cadastral parcel's geometry.
func (c *Cascade) ParcelGeometryByID(ctx context.Context, id string) ([]geom.T, error) {
	geoms, err := c.client.ParcelByID(ctx, id)
	if err != nil {
		zap.L().Error("cascade: parcel geometry lookup failed",
			zap.String("id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return geoms, nil
}

// Voivodeships returns the current voivodeship list.
func (c *Cascade) Voivodeships() []uldk.Option { return c.get(levelVoivodeship) }

// Districts returns the current district list.
func (c *Cascade) Districts() []uldk.Option { return c.get(levelDistrict) }

// Communes returns the current commune list.
func (c *Cascade) Communes() []uldk.Option { return c.get(levelCommune) }

// Precincts returns the current precinct list.
func (c *Cascade) Precincts() []uldk.Option { return c.get(levelPrecinct) }

// Err returns the most recent fetch failure message, empty if none.
func (c *Cascade) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Cascade) get(lvl level) []uldk.Option {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]uldk.Option, len(c.slots[lvl]))
	copy(out, c.slots[lvl])
	return out
}
