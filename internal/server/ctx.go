package server

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geokit/geo"
	"github.com/woozymasta/geokit/internal/config"
	"github.com/woozymasta/geokit/kml"
)

// Region is a validated region with its resolved boundary ring.
type Region struct {
	Name     string           `json:"name"`
	Ring     []geo.Coordinate `json:"-"`
	AreaM2   float64          `json:"area_m2"`
	Vertices int              `json:"vertices"`
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config       *config.Config
	Regions      []Region
	NameResolver map[string]string
}

// NewServerContext initializes the context and resolves the configured
// regions. Regions without a usable ring are filtered out and the name
// resolver is populated with names and aliases.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_regions_count", len(cfg.Regions)).Msg("Initializing server context")

	resolver := make(map[string]string)
	validRegions := make([]Region, 0, len(cfg.Regions))

	for _, rc := range cfg.Regions {
		ring, ok := resolveRing(rc)
		if !ok {
			continue
		}

		if len(ring) < 3 {
			log.Warn().
				Str("region", rc.Name).
				Int("vertices", len(ring)).
				Msg("Skipping region: ring has fewer than 3 vertices")
			continue
		}

		resolver[rc.Name] = rc.Name
		for _, alias := range rc.Aliases {
			resolver[alias] = rc.Name
		}

		region := Region{
			Name:     rc.Name,
			Ring:     ring,
			AreaM2:   geo.PolygonArea(ring),
			Vertices: len(ring),
		}

		log.Debug().
			Str("region", region.Name).
			Int("vertices", region.Vertices).
			Float64("area_m2", region.AreaM2).
			Msg("Region validated and added to context")

		validRegions = append(validRegions, region)
	}

	sort.Slice(validRegions, func(i, j int) bool {
		return validRegions[i].Name < validRegions[j].Name
	})

	log.Info().
		Int("valid_regions_count", len(validRegions)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:       cfg,
		Regions:      validRegions,
		NameResolver: resolver,
	}
}

// resolveRing materializes a region's ring from inline config data or,
// failing that, from the first Polygon placemark of its KML file.
func resolveRing(rc config.Region) ([]geo.Coordinate, bool) {
	if len(rc.Ring) > 0 {
		ring := make([]geo.Coordinate, 0, len(rc.Ring))
		for _, pair := range rc.Ring {
			if len(pair) < 2 {
				log.Warn().
					Str("region", rc.Name).
					Msg("Skipping region: inline ring vertex needs [lat, lon]")
				return nil, false
			}
			ring = append(ring, geo.Coordinate{Lat: pair[0], Lon: pair[1]})
		}
		return ring, true
	}

	if rc.KML == "" {
		log.Warn().Str("region", rc.Name).Msg("Skipping region: no ring source in config")
		return nil, false
	}

	feats, err := kml.Load(rc.KML)
	if err != nil {
		log.Error().Err(err).
			Str("region", rc.Name).
			Str("path", rc.KML).
			Msg("Skipping region: failed to load KML")
		return nil, false
	}

	for _, f := range feats {
		if f.Type == "Polygon" {
			return f.Coordinates, true
		}
	}

	log.Warn().
		Str("region", rc.Name).
		Str("path", rc.KML).
		Msg("Skipping region: no Polygon placemark in KML")

	return nil, false
}

// lookup resolves a region name or alias to the region itself.
func (s *ServerContext) lookup(name string) (*Region, bool) {
	realName, ok := s.NameResolver[name]
	if !ok {
		return nil, false
	}

	for i := range s.Regions {
		if s.Regions[i].Name == realName {
			return &s.Regions[i], true
		}
	}

	return nil, false
}
