package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceZero(t *testing.T) {
	p := Coordinate{Lat: 51.5, Lon: -0.12}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistanceSymmetry(t *testing.T) {
	a := Coordinate{Lat: 37.7, Lon: -122.1}
	b := Coordinate{Lat: 48.85, Lon: 2.35}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistanceKnownValues(t *testing.T) {
	// one degree along a meridian
	d := Distance(Coordinate{Lat: 0, Lon: 0}, Coordinate{Lat: 1, Lon: 0})
	assert.InDelta(t, 111194.92664455874, d, 1e-6)

	d = Distance(Coordinate{Lat: 37.7, Lon: -122.1}, Coordinate{Lat: 37.8, Lon: -122.2})
	assert.InDelta(t, 14175.453978103795, d, 1e-6)
}

func TestDistanceMeridianAdditivity(t *testing.T) {
	a := Coordinate{Lat: 0, Lon: 0}
	b := Coordinate{Lat: 0.5, Lon: 0}
	c := Coordinate{Lat: 1, Lon: 0}

	total := Distance(a, c)
	sum := Distance(a, b) + Distance(b, c)

	require.Greater(t, total, 0.0)
	assert.InEpsilon(t, total, sum, 1e-9)
}

func TestDistanceNonFinitePropagates(t *testing.T) {
	a := Coordinate{Lat: math.NaN(), Lon: 0}
	b := Coordinate{Lat: 1, Lon: 1}

	assert.True(t, math.IsNaN(Distance(a, b)))
}

func TestPolygonAreaDegenerateRing(t *testing.T) {
	assert.Equal(t, 0.0, PolygonArea(nil))
	assert.Equal(t, 0.0, PolygonArea([]Coordinate{{Lat: 1, Lon: 1}}))
	assert.Equal(t, 0.0, PolygonArea([]Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}))
}

func TestPolygonAreaUnitSquare(t *testing.T) {
	ring := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
	}

	// one square degree at the equator, cosine-corrected at lat 0.5
	assert.InEpsilon(t, 12391670545.189054, PolygonArea(ring), 1e-12)
}

func TestPolygonAreaRotationAndReversalInvariance(t *testing.T) {
	ring := []Coordinate{
		{Lat: 37.7, Lon: -122.1},
		{Lat: 37.7, Lon: -122.0},
		{Lat: 37.8, Lon: -122.0},
		{Lat: 37.8, Lon: -122.1},
	}

	want := PolygonArea(ring)
	require.InEpsilon(t, 97983377.92027895, want, 1e-9)

	for shift := 1; shift < len(ring); shift++ {
		rotated := append(append([]Coordinate{}, ring[shift:]...), ring[:shift]...)
		assert.InEpsilon(t, want, PolygonArea(rotated), 1e-9, "rotation by %d", shift)
	}

	reversed := make([]Coordinate, len(ring))
	for i, p := range ring {
		reversed[len(ring)-1-i] = p
	}
	assert.InEpsilon(t, want, PolygonArea(reversed), 1e-9)
}

func TestPointInPolygonDegenerateRing(t *testing.T) {
	p := Coordinate{Lat: 0.5, Lon: 0.5}

	assert.False(t, PointInPolygon(p, nil))
	assert.False(t, PointInPolygon(p, []Coordinate{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}))
}

func TestPointInPolygonSquare(t *testing.T) {
	ring := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
	}

	assert.True(t, PointInPolygon(Coordinate{Lat: 0.5, Lon: 0.5}, ring))
	assert.False(t, PointInPolygon(Coordinate{Lat: 2, Lon: 2}, ring))
	assert.False(t, PointInPolygon(Coordinate{Lat: -0.5, Lon: 0.5}, ring))
}

func TestPointInPolygonConcave(t *testing.T) {
	// U-shaped ring: the notch between the arms is outside
	ring := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 3},
		{Lat: 3, Lon: 3},
		{Lat: 3, Lon: 2},
		{Lat: 1, Lon: 2},
		{Lat: 1, Lon: 1},
		{Lat: 3, Lon: 1},
		{Lat: 3, Lon: 0},
	}

	assert.True(t, PointInPolygon(Coordinate{Lat: 0.5, Lon: 1.5}, ring))
	assert.False(t, PointInPolygon(Coordinate{Lat: 2, Lon: 1.5}, ring))
	assert.True(t, PointInPolygon(Coordinate{Lat: 2, Lon: 0.5}, ring))
}
