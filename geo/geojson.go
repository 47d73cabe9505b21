// Package geo provides primitives over geographic coordinates in
// decimal degrees: great-circle distance, planar polygon area,
// point-in-polygon containment, coordinate text parsing and GeoJSON
// data structures.
package geo

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   Geometry               `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature. Coordinates use the
// GeoJSON [Lon, Lat] element order: a single position for Point, a
// position list for LineString and a list of rings for Polygon.
type Geometry struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates interface{} `json:"coordinates" yaml:"coordinates"`
}

// PointGeometry returns a GeoJSON Point geometry for c.
func PointGeometry(c Coordinate) Geometry {
	return Geometry{
		Type:        "Point",
		Coordinates: []float64{c.Lon, c.Lat},
	}
}

// LineStringGeometry returns a GeoJSON LineString geometry over coords.
func LineStringGeometry(coords []Coordinate) Geometry {
	return Geometry{
		Type:        "LineString",
		Coordinates: positions(coords),
	}
}

// PolygonGeometry returns a single-ring GeoJSON Polygon geometry for
// ring. GeoJSON requires rings to repeat the first position at the
// end, so an implicitly closed ring is closed explicitly here.
func PolygonGeometry(ring []Coordinate) Geometry {
	ps := positions(ring)
	if len(ps) > 0 {
		ps = append(ps, ps[0])
	}

	return Geometry{
		Type:        "Polygon",
		Coordinates: [][][]float64{ps},
	}
}

// positions converts (lat, lon) coordinates to GeoJSON [lon, lat] positions.
func positions(coords []Coordinate) [][]float64 {
	ps := make([][]float64, 0, len(coords))
	for _, c := range coords {
		ps = append(ps, []float64{c.Lon, c.Lat})
	}

	return ps
}
