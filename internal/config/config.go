// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Regions     []Region `yaml:"regions" json:"regions"`
}

// Region represents a single named boundary. The ring is given either
// inline as [lat, lon] vertex pairs or by pointing at a KML/KMZ file
// whose first Polygon placemark supplies it.
type Region struct {
	Name    string      `yaml:"name" json:"name"`
	Aliases []string    `yaml:"aliases,omitempty" json:"-"`
	Ring    [][]float64 `yaml:"ring,omitempty" json:"-"`
	KML     string      `yaml:"kml,omitempty" json:"-"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
