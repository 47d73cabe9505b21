package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointGeometry(t *testing.T) {
	g := PointGeometry(Coordinate{Lat: 37.7, Lon: -122.1})

	assert.Equal(t, "Point", g.Type)
	assert.Equal(t, []float64{-122.1, 37.7}, g.Coordinates)
}

func TestPolygonGeometryClosesRing(t *testing.T) {
	g := PolygonGeometry([]Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
	})

	rings, ok := g.Coordinates.([][][]float64)
	require.True(t, ok)
	require.Len(t, rings, 1)
	require.Len(t, rings[0], 4)
	assert.Equal(t, rings[0][0], rings[0][3])
}

func TestFeatureCollectionJSON(t *testing.T) {
	fc := FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{{
			Type:       "Feature",
			Geometry:   LineStringGeometry([]Coordinate{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}),
			Properties: map[string]interface{}{"name": "track"},
		}},
	}

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Features []struct {
			Geometry struct {
				Type        string      `json:"type"`
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Features, 1)
	assert.Equal(t, "LineString", decoded.Features[0].Geometry.Type)
	assert.Equal(t, [][]float64{{2, 1}, {4, 3}}, decoded.Features[0].Geometry.Coordinates)
}
