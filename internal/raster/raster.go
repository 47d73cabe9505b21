// Package raster renders polygon containment masks as WebP images.
package raster

import (
	"image"
	"image/color"
	"os"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/woozymasta/geokit/geo"
)

// Options controls mask rendering.
type Options struct {
	Width  int // output width in pixels
	Height int // output height in pixels
	Scale  int // supersampling factor, values below 2 disable it
}

var inside = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Mask samples the ring over its bounding box and returns an image with
// opaque white pixels inside the ring and transparent pixels outside.
// North is up: the first image row corresponds to the highest latitude.
// A degenerate ring produces a fully transparent image.
func Mask(ring []geo.Coordinate, opts Options) *image.NRGBA {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 256
	}
	if height <= 0 {
		height = 256
	}

	scale := opts.Scale
	if scale < 2 {
		scale = 1
	}

	img := sample(ring, width*scale, height*scale)
	if scale == 1 {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	return out
}

func sample(ring []geo.Coordinate, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	minLat, maxLat, minLon, maxLon := bounds(ring)
	latSpan := maxLat - minLat
	lonSpan := maxLon - minLon

	for py := 0; py < height; py++ {
		lat := maxLat - (float64(py)+0.5)/float64(height)*latSpan
		for px := 0; px < width; px++ {
			lon := minLon + (float64(px)+0.5)/float64(width)*lonSpan
			if geo.PointInPolygon(geo.Coordinate{Lat: lat, Lon: lon}, ring) {
				img.SetNRGBA(px, py, inside)
			}
		}
	}

	return img
}

func bounds(ring []geo.Coordinate) (minLat, maxLat, minLon, maxLon float64) {
	if len(ring) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat = ring[0].Lat, ring[0].Lat
	minLon, maxLon = ring[0].Lon, ring[0].Lon

	for _, p := range ring[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, maxLat, minLon, maxLon
}

// WriteWebP renders the ring's mask and writes it to path as a
// lossless WebP image.
func WriteWebP(path string, ring []geo.Coordinate, opts Options) error {
	img := Mask(ring, opts)

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := webp.Encode(f, img, &webp.Options{Lossless: true}); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
