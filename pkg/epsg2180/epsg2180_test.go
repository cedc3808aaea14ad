package epsg2180

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWGS84_FalseOrigin(t *testing.T) {
	// The projection's false origin sits on the central meridian at the
	// equator: (500000, -5300000) must map to exactly (19°E, 0°N).
	lon, lat := ToWGS84(500000, -5300000)
	assert.InDelta(t, 19.0, lon, 1e-9)
	assert.InDelta(t, 0.0, lat, 1e-9)
}

func TestToWGS84_Warsaw(t *testing.T) {
	lon, lat := ToWGS84(637382.204, 486757.210)
	assert.InDelta(t, 21.0122, lon, 1e-6)
	assert.InDelta(t, 52.2297, lat, 1e-6)
}

func TestFromWGS84_Warsaw(t *testing.T) {
	x, y := FromWGS84(21.0122, 52.2297)
	assert.InDelta(t, 637382.204, x, 0.01)
	assert.InDelta(t, 486757.210, y, 0.01)
}

func TestRoundTrip(t *testing.T) {
	// Corners and interior of the projection's Polish extent.
	points := [][2]float64{
		{14.12, 49.00},
		{24.15, 54.84},
		{19.00, 52.00},
		{17.0385, 51.1079},
		{22.5684, 51.2465},
	}

	for _, p := range points {
		x, y := FromWGS84(p[0], p[1])
		lon, lat := ToWGS84(x, y)
		assert.InDelta(t, p[0], lon, 1e-6, "lon round trip for %v", p)
		assert.InDelta(t, p[1], lat, 1e-6, "lat round trip for %v", p)
	}
}

func TestToWGS84_Deterministic(t *testing.T) {
	lon1, lat1 := ToWGS84(362728.675, 361953.836)
	lon2, lat2 := ToWGS84(362728.675, 361953.836)
	assert.Equal(t, lon1, lon2)
	assert.Equal(t, lat1, lat2)
}

func TestEPSG(t *testing.T) {
	assert.Equal(t, 2180, EPSG())
}
