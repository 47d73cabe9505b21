// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/woozymasta/geokit/geo"
)

// maxParseBody caps the coordinate blob accepted by HandleParse.
const maxParseBody = 1 << 20

// HandleRegions serves the list of configured regions with their
// precomputed areas.
func (s *ServerContext) HandleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Regions)
}

// HandleDistance computes the great-circle distance between the "from"
// and "to" query points.
func (s *ServerContext) HandleDistance(w http.ResponseWriter, r *http.Request) {
	from, err := parsePoint(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid 'from': %v", err))
		return
	}

	to, err := parsePoint(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid 'to': %v", err))
		return
	}

	writeJSON(w, map[string]float64{"meters": geo.Distance(from, to)})
}

// HandleContains tests whether the "point" query coordinate lies inside
// a named region. Path: /api/regions/{name}/contains
func (s *ServerContext) HandleContains(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	// parts: api, regions, name, contains
	if len(parts) != 4 || parts[3] != "contains" {
		http.NotFound(w, r)
		return
	}

	region, ok := s.lookup(parts[2])
	if !ok {
		http.NotFound(w, r)
		return
	}

	point, err := parsePoint(r.URL.Query().Get("point"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid 'point': %v", err))
		return
	}

	writeJSON(w, map[string]interface{}{
		"region": region.Name,
		"inside": geo.PointInPolygon(point, region.Ring),
	})
}

// HandleParse converts a raw coordinate blob in the request body into a
// GeoJSON LineString feature. Parsing itself never fails; only the
// request shape is validated.
func (s *ServerContext) HandleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxParseBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	coords := geo.ParseCoordinates(string(body))

	writeJSON(w, geo.Feature{
		Type:     "Feature",
		Geometry: geo.LineStringGeometry(coords),
		Properties: map[string]interface{}{
			"count": len(coords),
		},
	})
}

// parsePoint parses a strict "lat,lon" query value. Unlike the
// permissive blob parser this rejects malformed shapes so callers get a
// clear 400 instead of silently zeroed coordinates.
func parsePoint(s string) (geo.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, fmt.Errorf("expected lat,lon")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("bad latitude %q", parts[0])
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("bad longitude %q", parts[1])
	}

	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
