// Package kml loads placemark geometry from KML and KMZ documents.
package kml

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/woozymasta/geokit/geo"
)

// Feature is a single placemark extracted from a document.
type Feature struct {
	Name        string
	Type        string // Point, LineString or Polygon
	Coordinates []geo.Coordinate
}

// Internal structures for XML parsing. Tags match local names only, so
// namespaced documents decode the same as plain ones.
type placemark struct {
	Name       string       `xml:"name"`
	Point      *geometry    `xml:"Point"`
	LineString *geometry    `xml:"LineString"`
	Polygon    *ringHolder  `xml:"Polygon"`
	Multi      *multiHolder `xml:"MultiGeometry"`
}

type geometry struct {
	Coordinates string `xml:"coordinates"`
}

type ringHolder struct {
	Coordinates string `xml:"outerBoundaryIs>LinearRing>coordinates"`
}

type multiHolder struct {
	Points      []geometry   `xml:"Point"`
	LineStrings []geometry   `xml:"LineString"`
	Polygons    []ringHolder `xml:"Polygon"`
}

// Parse reads a KML document from r and returns its placemark features
// in document order. Placemarks without coordinate data and geometry
// types other than Point, LineString and Polygon are skipped.
func Parse(r io.Reader) ([]Feature, error) {
	dec := xml.NewDecoder(r)
	feats := []Feature{}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode kml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}

		var pm placemark
		if err := dec.DecodeElement(&pm, &start); err != nil {
			return nil, fmt.Errorf("decode placemark: %w", err)
		}

		if f, ok := pm.feature(); ok {
			feats = append(feats, f)
		}
	}

	return feats, nil
}

// feature resolves the placemark's geometry, preferring Point over
// LineString over Polygon when several are present.
func (p placemark) feature() (Feature, bool) {
	if p.Multi != nil {
		p.promoteMulti()
	}

	var typ, text string
	switch {
	case p.Point != nil:
		typ, text = "Point", p.Point.Coordinates
	case p.LineString != nil:
		typ, text = "LineString", p.LineString.Coordinates
	case p.Polygon != nil:
		typ, text = "Polygon", p.Polygon.Coordinates
	default:
		return Feature{}, false
	}

	coords := geo.ParseCoordinates(text)
	if len(coords) == 0 {
		return Feature{}, false
	}

	if typ == "Point" {
		coords = coords[:1]
	}

	return Feature{Name: p.Name, Type: typ, Coordinates: coords}, true
}

// promoteMulti lifts the first geometry of each kind out of a
// MultiGeometry so the regular resolution order applies.
func (p *placemark) promoteMulti() {
	if p.Point == nil && len(p.Multi.Points) > 0 {
		p.Point = &p.Multi.Points[0]
	}
	if p.LineString == nil && len(p.Multi.LineStrings) > 0 {
		p.LineString = &p.Multi.LineStrings[0]
	}
	if p.Polygon == nil && len(p.Multi.Polygons) > 0 {
		p.Polygon = &p.Multi.Polygons[0]
	}
}

// Load parses the KML or KMZ file at path. For KMZ archives the first
// member with a .kml extension is used; an archive without one yields
// an empty feature list.
func Load(path string) ([]Feature, error) {
	if strings.HasSuffix(strings.ToLower(path), ".kmz") {
		return loadKMZ(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

func loadKMZ(path string) ([]Feature, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()

	for _, member := range zr.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".kml") {
			continue
		}

		rc, err := member.Open()
		if err != nil {
			return nil, err
		}

		feats, err := Parse(rc)
		_ = rc.Close()

		return feats, err
	}

	return []Feature{}, nil
}

// Fetch downloads a KML document from url and parses it.
func Fetch(client *http.Client, url string) ([]Feature, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return Parse(resp.Body)
}
