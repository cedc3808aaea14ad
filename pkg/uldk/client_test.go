package uldk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func newTestClient(srvURL string) Client {
	return NewClient(WithBaseURL(srvURL), WithRateLimit(1000))
}

func TestClient_Voivodeships(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, KindVoivodeship, r.URL.Query().Get("obiekt"))
		assert.False(t, r.URL.Query().Has("teryt"), "top level must omit teryt")
		w.Write([]byte("0\nDOLNOŚLĄSKIE|02\nMAZOWIECKIE|14\n"))
	}))
	defer srv.Close()

	opts, err := newTestClient(srv.URL).Voivodeships(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Option{
		{Label: "DOLNOŚLĄSKIE", Value: "02"},
		{Label: "MAZOWIECKIE", Value: "14"},
	}, opts)
}

func TestClient_DistrictsPassesParentCode(t *testing.T) {
	var gotTeryt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, KindDistrict, r.URL.Query().Get("obiekt"))
		gotTeryt = r.URL.Query().Get("teryt")
		w.Write([]byte("0\nbolesławiecki|0201\n"))
	}))
	defer srv.Close()

	opts, err := newTestClient(srv.URL).Districts(context.Background(), "02")
	require.NoError(t, err)
	assert.Equal(t, "02", gotTeryt)
	require.Len(t, opts, 1)
	assert.Equal(t, "0201", opts[0].Value)
}

func TestClient_ParcelByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GetParcelById", r.URL.Query().Get("request"))
		assert.Equal(t, "140809_5.0001.34/2", r.URL.Query().Get("id"))
		w.Write([]byte("0\n" + wkbPointOrigin + "\n"))
	}))
	defer srv.Close()

	geoms, err := newTestClient(srv.URL).ParcelByID(context.Background(), "140809_5.0001.34/2")
	require.NoError(t, err)
	require.Len(t, geoms, 1)

	pt := geoms[0].(*geom.Point)
	assert.InDelta(t, 19.0, pt.X(), 1e-6)
	assert.InDelta(t, 0.0, pt.Y(), 1e-6)
}

func TestClient_RegionByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GetRegionById", r.URL.Query().Get("request"))
		w.Write([]byte("-1\n"))
	}))
	defer srv.Close()

	geoms, err := newTestClient(srv.URL).RegionByID(context.Background(), "99")
	assert.Nil(t, geoms)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_HTTPErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Voivodeships(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).Voivodeships(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestClient_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(WithBaseURL("http://127.0.0.1:1")).Voivodeships(ctx)
	assert.Error(t, err)
}
