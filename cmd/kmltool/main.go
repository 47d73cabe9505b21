package main

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geokit/geo"
	"github.com/woozymasta/geokit/internal/logger"
	"github.com/woozymasta/geokit/internal/raster"
	"github.com/woozymasta/geokit/kml"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input      string `short:"i" long:"in" description:"Input KML/KMZ path or URL. Reads KML from stdin if empty"`
	Output     string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Minify     bool   `short:"m" long:"minify" description:"Minify JSON output"`
	Raster     string `short:"r" long:"raster" description:"Directory to write WebP containment masks for Polygon features"`
	RasterSize int    `short:"s" long:"raster-size" description:"Mask image size in pixels" default:"256"`
}

var unsafeName = regexp.MustCompile(`[^a-z0-9._-]+`)

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	feats, err := loadFeatures(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to load input")
	}

	fc := geo.FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geo.Feature, 0, len(feats)),
	}

	for _, f := range feats {
		fc.Features = append(fc.Features, convert(f))
	}

	outputData, err := marshal(fc, opts.Format, opts.Minify)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal output")
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output file")
		}
	} else {
		_, _ = os.Stdout.Write(outputData)
	}

	if opts.Raster != "" {
		writeMasks(feats, opts.Raster, opts.RasterSize)
	}

	log.Info().
		Int("features", len(fc.Features)).
		Str("format", opts.Format).
		Msg("Conversion finished")
}

// loadFeatures reads placemarks from a URL, a local file or stdin.
func loadFeatures(input string) ([]kml.Feature, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		client := &http.Client{
			Transport: &http.Transport{
				TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
			Timeout: 15 * time.Second,
		}

		return kml.Fetch(client, input)
	}

	if input != "" {
		return kml.Load(input)
	}

	return kml.Parse(os.Stdin)
}

// convert turns a placemark into a GeoJSON feature, attaching computed
// measurements: ring area for polygons, path length for linestrings.
func convert(f kml.Feature) geo.Feature {
	props := map[string]interface{}{"name": f.Name}

	var geom geo.Geometry
	switch f.Type {
	case "LineString":
		geom = geo.LineStringGeometry(f.Coordinates)
		props["length_m"] = pathLength(f.Coordinates)
	case "Polygon":
		ring := trimClosingVertex(f.Coordinates)
		geom = geo.PolygonGeometry(ring)
		props["area_m2"] = geo.PolygonArea(ring)
	default:
		geom = geo.PointGeometry(f.Coordinates[0])
	}

	return geo.Feature{
		Type:       "Feature",
		Geometry:   geom,
		Properties: props,
	}
}

// trimClosingVertex drops an explicit closing vertex so rings stay
// implicitly closed and the duplicate does not skew area or masks.
func trimClosingVertex(ring []geo.Coordinate) []geo.Coordinate {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}

	return ring
}

func pathLength(coords []geo.Coordinate) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		total += geo.Distance(coords[i-1], coords[i])
	}

	return total
}

func marshal(fc geo.FeatureCollection, format string, compact bool) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(fc)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, err
	}

	if !compact {
		return data, nil
	}

	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)

	return m.Bytes("application/json", data)
}

// writeMasks renders a containment mask per polygon feature.
func writeMasks(feats []kml.Feature, dir string, size int) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create raster directory")
	}

	for i, f := range feats {
		if f.Type != "Polygon" {
			continue
		}

		name := unsafeName.ReplaceAllString(strings.ToLower(f.Name), "-")
		if name == "" || name == "-" {
			name = "polygon"
		}
		path := filepath.Join(dir, name+".webp")

		ring := trimClosingVertex(f.Coordinates)
		opts := raster.Options{Width: size, Height: size, Scale: 2}

		if err := raster.WriteWebP(path, ring, opts); err != nil {
			log.Error().Err(err).Int("feature", i).Str("path", path).Msg("Failed to write mask")
			continue
		}

		log.Debug().Str("path", path).Str("name", f.Name).Msg("Mask written")
	}
}
