package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinatesSwapsOrder(t *testing.T) {
	got := ParseCoordinates("-122.1,37.7 -122.2,37.8")

	assert.Equal(t, []Coordinate{
		{Lat: 37.7, Lon: -122.1},
		{Lat: 37.8, Lon: -122.2},
	}, got)
}

func TestParseCoordinatesEmpty(t *testing.T) {
	assert.Empty(t, ParseCoordinates(""))
	assert.Empty(t, ParseCoordinates("  \n\t  "))
}

func TestParseCoordinatesDiscardsAltitude(t *testing.T) {
	got := ParseCoordinates("1,2,3 4,5,6")

	assert.Equal(t, []Coordinate{
		{Lat: 2, Lon: 1},
		{Lat: 5, Lon: 4},
	}, got)
}

func TestParseCoordinatesWhitespaceSeparators(t *testing.T) {
	got := ParseCoordinates("\n  10,20\t30,40\n50,60  ")

	require.Len(t, got, 3)
	assert.Equal(t, Coordinate{Lat: 20, Lon: 10}, got[0])
	assert.Equal(t, Coordinate{Lat: 40, Lon: 30}, got[1])
	assert.Equal(t, Coordinate{Lat: 60, Lon: 50}, got[2])
}

func TestParseCoordinatesPermissive(t *testing.T) {
	// trailing garbage terminates the literal, missing fields become 0
	assert.Equal(t, []Coordinate{{Lat: 7, Lon: 12.5}}, ParseCoordinates("12.5abc,7x"))
	assert.Equal(t, []Coordinate{{Lat: 0, Lon: 0}}, ParseCoordinates("abc,def"))
	assert.Equal(t, []Coordinate{{Lat: 0, Lon: 5}}, ParseCoordinates("5"))
	assert.Equal(t, []Coordinate{{Lat: 2.5, Lon: 100000}}, ParseCoordinates("1e5,2.5e0junk"))
}

func TestParseCoordinatesOverflowSaturates(t *testing.T) {
	got := ParseCoordinates("1e999,0")

	require.Len(t, got, 1)
	assert.True(t, math.IsInf(got[0].Lon, 1))
}

func TestParseCoordinatesRoundTripDistance(t *testing.T) {
	coords := ParseCoordinates("-122.1,37.7,15.0 -122.2,37.8,20.0")
	require.Len(t, coords, 2)

	assert.InDelta(t, 14175.453978103795, Distance(coords[0], coords[1]), 1.0)
}
