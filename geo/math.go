package geo

import "math"

// EarthRadius is the mean Earth radius in meters used by Distance.
const EarthRadius = 6371000.0

// metersPerDegree approximates meters per degree of latitude at the
// equator. PolygonArea applies it to both axes when scaling projected
// square degrees to square meters.
const metersPerDegree = 111320.0

// Coordinate is a geographic point in decimal degrees. Values outside
// the conventional [-90, 90] and [-180, 180] ranges are neither
// rejected nor normalized; they pass through the arithmetic as-is.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Distance returns the great-circle distance between a and b in meters,
// computed with the haversine formula on a sphere of radius EarthRadius.
//
// The function is total: non-finite inputs propagate through the
// arithmetic instead of being treated as errors.
func Distance(a, b Coordinate) float64 {
	phi1 := a.Lat * math.Pi / 180.0
	phi2 := b.Lat * math.Pi / 180.0
	dPhi := (b.Lat - a.Lat) * math.Pi / 180.0
	dLambda := (b.Lon - a.Lon) * math.Pi / 180.0

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadius * c
}

// PolygonArea returns the approximate area of ring in square meters.
// The ring is treated as closed (the last vertex connects back to the
// first); fewer than 3 vertices yields 0.
//
// Vertices are projected onto a local equirectangular plane centered on
// the mean of the vertices, the shoelace formula gives the planar area,
// and a single meters-per-degree constant scales both axes. Only the
// longitude axis is cosine-corrected, so the error grows with ring size
// and distance from the equator; intended for small to medium rings.
func PolygonArea(ring []Coordinate) float64 {
	n := len(ring)
	if n < 3 {
		return 0.0
	}

	var sumLat, sumLon float64
	for _, p := range ring {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	lat0 := sumLat / float64(n)
	lon0 := sumLon / float64(n)
	cosLat0 := math.Cos(lat0 * math.Pi / 180.0)

	prevX := (ring[n-1].Lon - lon0) * cosLat0
	prevY := ring[n-1].Lat - lat0

	var area float64
	for _, p := range ring {
		x := (p.Lon - lon0) * cosLat0
		y := p.Lat - lat0
		area += prevX*y - x*prevY
		prevX, prevY = x, y
	}

	area = math.Abs(area) / 2.0

	return area * metersPerDegree * metersPerDegree
}

// PointInPolygon reports whether p lies inside ring using the even-odd
// ray casting rule, scanning along longitude. A ring with fewer than 3
// vertices contains nothing. Points exactly on an edge may be
// classified either way depending on edge direction, a known property
// of the rule.
func PointInPolygon(p Coordinate, ring []Coordinate) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	for i := 0; i < n; i++ {
		p1 := ring[i]
		p2 := ring[(i+1)%n]

		if (p1.Lon > p.Lon) != (p2.Lon > p.Lon) {
			// epsilon keeps near-vertical edges from dividing by zero
			intersect := (p2.Lat-p1.Lat)*(p.Lon-p1.Lon)/(p2.Lon-p1.Lon+1e-12) + p1.Lat
			if p.Lat < intersect {
				inside = !inside
			}
		}
	}

	return inside
}
