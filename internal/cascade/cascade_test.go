package cascade

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/uldk-cli/pkg/uldk"
)

// fakeClient is a controllable uldk.Client for cascade tests.
type fakeClient struct {
	mu sync.Mutex

	voivodeships []uldk.Option
	districts    map[string][]uldk.Option
	communes     map[string][]uldk.Option
	precincts    map[string][]uldk.Option

	districtCalls []string
	communeCalls  []string
	precinctCalls []string

	err          error
	districtHook func(teryt string)
}

func (f *fakeClient) Voivodeships(ctx context.Context) ([]uldk.Option, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.voivodeships, nil
}

func (f *fakeClient) Districts(ctx context.Context, teryt string) ([]uldk.Option, error) {
	f.mu.Lock()
	f.districtCalls = append(f.districtCalls, teryt)
	f.mu.Unlock()
	if f.districtHook != nil {
		f.districtHook(teryt)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.districts[teryt], nil
}

func (f *fakeClient) Communes(ctx context.Context, teryt string) ([]uldk.Option, error) {
	f.mu.Lock()
	f.communeCalls = append(f.communeCalls, teryt)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.communes[teryt], nil
}

func (f *fakeClient) Precincts(ctx context.Context, teryt string) ([]uldk.Option, error) {
	f.mu.Lock()
	f.precinctCalls = append(f.precinctCalls, teryt)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.precincts[teryt], nil
}

func (f *fakeClient) RegionByID(ctx context.Context, id string) ([]geom.T, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []geom.T{geom.NewPointFlat(geom.XY, []float64{19, 52})}, nil
}

func (f *fakeClient) ParcelByID(ctx context.Context, id string) ([]geom.T, error) {
	return f.RegionByID(ctx, id)
}

func TestNew_FetchesVoivodeshipsOnce(t *testing.T) {
	fc := &fakeClient{
		voivodeships: []uldk.Option{{Label: "DOLNOŚLĄSKIE", Value: "02"}},
	}

	c := New(context.Background(), fc, Seed{})

	assert.Equal(t, []uldk.Option{{Label: "DOLNOŚLĄSKIE", Value: "02"}}, c.Voivodeships())
	assert.Empty(t, c.Districts())
	assert.Empty(t, c.Err())
}

func TestNew_SeedTriggersExactlyOneDistrictFetch(t *testing.T) {
	fc := &fakeClient{
		voivodeships: []uldk.Option{{Label: "DOLNOŚLĄSKIE", Value: "02"}},
		districts: map[string][]uldk.Option{
			"02": {{Label: "bolesławiecki", Value: "0201"}},
		},
	}

	c := New(context.Background(), fc, Seed{Voivodeship: "02"})

	assert.Equal(t, []string{"02"}, fc.districtCalls)
	assert.Equal(t, []uldk.Option{{Label: "bolesławiecki", Value: "0201"}}, c.Districts())
	assert.Empty(t, fc.communeCalls, "communes must not be fetched without a district seed")
	assert.Empty(t, fc.precinctCalls, "precincts must not be fetched without a commune seed")
	assert.Empty(t, c.Communes())
	assert.Empty(t, c.Precincts())
}

func TestNew_FullSeedCascade(t *testing.T) {
	fc := &fakeClient{
		voivodeships: []uldk.Option{{Label: "DOLNOŚLĄSKIE", Value: "02"}},
		districts:    map[string][]uldk.Option{"02": {{Label: "bolesławiecki", Value: "0201"}}},
		communes:     map[string][]uldk.Option{"0201": {{Label: "Bolesławiec", Value: "0201011"}}},
		precincts:    map[string][]uldk.Option{"0201011": {{Label: "0001", Value: "0201011.0001"}}},
	}

	c := New(context.Background(), fc, Seed{Voivodeship: "02", District: "0201", Commune: "0201011"})

	assert.Len(t, c.Districts(), 1)
	assert.Len(t, c.Communes(), 1)
	assert.Len(t, c.Precincts(), 1)
	assert.Empty(t, c.Err())
}

func TestFetchDistricts_OverwritesWholeSlot(t *testing.T) {
	fc := &fakeClient{
		districts: map[string][]uldk.Option{
			"02": {{Label: "a", Value: "0201"}, {Label: "b", Value: "0202"}},
			"14": {{Label: "c", Value: "1401"}},
		},
	}
	c := New(context.Background(), fc, Seed{})

	c.FetchDistricts(context.Background(), "02")
	require.Len(t, c.Districts(), 2)

	c.FetchDistricts(context.Background(), "14")
	assert.Equal(t, []uldk.Option{{Label: "c", Value: "1401"}}, c.Districts())
}

func TestFetch_FailureSetsErrorSlotAndKeepsData(t *testing.T) {
	fc := &fakeClient{
		districts: map[string][]uldk.Option{"02": {{Label: "a", Value: "0201"}}},
	}
	c := New(context.Background(), fc, Seed{})
	c.FetchDistricts(context.Background(), "02")
	require.Len(t, c.Districts(), 1)

	fc.err = errors.New("connection refused")
	c.FetchDistricts(context.Background(), "14")

	assert.Contains(t, c.Err(), "district")
	assert.Contains(t, c.Err(), "connection refused")
	// Failed fetch does not clobber the previous list.
	assert.Len(t, c.Districts(), 1)
}

func TestFetch_StaleCompletionIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	fc := &fakeClient{
		districts: map[string][]uldk.Option{
			"02": {{Label: "stale", Value: "02xx"}},
			"14": {{Label: "fresh", Value: "1401"}},
		},
	}
	c := New(context.Background(), fc, Seed{})

	// First fetch blocks inside the client until released; the second
	// fetch is issued and completes while the first is in flight.
	fc.districtHook = func(teryt string) {
		if teryt == "02" {
			close(started)
			<-release
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.FetchDistricts(context.Background(), "02")
	}()

	<-started
	fc.districtHook = nil
	c.FetchDistricts(context.Background(), "14")
	close(release)
	wg.Wait()

	assert.Equal(t, []uldk.Option{{Label: "fresh", Value: "1401"}}, c.Districts(),
		"the later fetch must win even if the earlier one completes last")
}

func TestParcelGeometryByID(t *testing.T) {
	fc := &fakeClient{}
	c := New(context.Background(), fc, Seed{})

	geoms, err := c.ParcelGeometryByID(context.Background(), "140809_5.0001.34/2")
	require.NoError(t, err)
	assert.Len(t, geoms, 1)
}

func TestRegionGeometryByID_ErrorPropagates(t *testing.T) {
	fc := &fakeClient{err: errors.New("boom")}
	c := New(context.Background(), fc, Seed{})

	geoms, err := c.RegionGeometryByID(context.Background(), "02")
	assert.Nil(t, geoms)
	assert.Error(t, err)
}
