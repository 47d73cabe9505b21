package geo

import (
	"errors"
	"strconv"
	"strings"
)

// ParseCoordinates converts a KML-style coordinate blob into an ordered
// list of coordinates. The input is whitespace-separated tokens of the
// form "lon,lat" or "lon,lat,alt"; altitude is parsed and discarded,
// and the output order is (lat, lon).
//
// Parsing never fails: each numeric field consumes the longest leading
// float literal and yields 0 when none is present. Callers that need
// strict validation must check the values themselves.
func ParseCoordinates(text string) []Coordinate {
	tokens := strings.Fields(text)
	coords := make([]Coordinate, 0, len(tokens))

	for _, token := range tokens {
		parts := strings.SplitN(token, ",", 3)

		lon := parseLeadingFloat(parts[0])
		var lat float64
		if len(parts) > 1 {
			lat = parseLeadingFloat(parts[1])
		}

		coords = append(coords, Coordinate{Lat: lat, Lon: lon})
	}

	return coords
}

// parseLeadingFloat parses the longest leading float literal of s,
// ignoring any trailing garbage. A string without a leading literal
// parses as 0.
func parseLeadingFloat(s string) float64 {
	for end := len(s); end > 0; end-- {
		v, err := strconv.ParseFloat(s[:end], 64)
		// out-of-range literals saturate to ±Inf rather than being skipped
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return v
		}
	}

	return 0
}
