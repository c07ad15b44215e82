// Package raster provides the single-channel binary image plane used by the
// morphology engine. A plane holds exactly two pixel values: Foreground and
// Background.
package raster

import (
	"errors"
	"fmt"
)

// Pixel sentinel values. Every pixel of a well-formed plane holds one of the
// two; the loader enforces this on ingest and the engine preserves it.
const (
	Background uint8 = 0x00
	Foreground uint8 = 0xFF
)

var (
	// ErrInvalidDimensions indicates a requested plane size with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("raster: plane dimensions must be positive")
	// ErrDimensionMismatch indicates two planes whose dimensions differ.
	ErrDimensionMismatch = errors.New("raster: plane dimensions differ")
)

// Plane is a fixed-size binary raster with row-major storage.
type Plane struct {
	width  int
	height int
	pix    []uint8
}

// NewPlane creates a plane of the given dimensions, filled with Background.
func NewPlane(width, height int) (*Plane, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return &Plane{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}, nil
}

func (p *Plane) Width() int {
	return p.width
}

func (p *Plane) Height() int {
	return p.height
}

// At returns the pixel at (x, y). Coordinates must be in bounds; the hot
// paths of the engine rely on unchecked access.
func (p *Plane) At(x, y int) uint8 {
	return p.pix[y*p.width+x]
}

// Set writes the pixel at (x, y). Coordinates must be in bounds.
func (p *Plane) Set(x, y int, value uint8) {
	p.pix[y*p.width+x] = value
}

// Row returns the backing slice for row y. The slice aliases the plane's
// storage; writes through it are visible to the plane.
func (p *Plane) Row(y int) []uint8 {
	return p.pix[y*p.width : (y+1)*p.width]
}

// Fill sets every pixel to the given value.
func (p *Plane) Fill(value uint8) {
	for i := range p.pix {
		p.pix[i] = value
	}
}

// Clone returns an independent deep copy of the plane.
func (p *Plane) Clone() *Plane {
	pix := make([]uint8, len(p.pix))
	copy(pix, p.pix)

	return &Plane{
		width:  p.width,
		height: p.height,
		pix:    pix,
	}
}

// CopyFrom overwrites the plane's pixels with those of src. The two planes
// must have identical dimensions.
func (p *Plane) CopyFrom(src *Plane) error {
	if err := ValidateSameDimensions(p, src); err != nil {
		return err
	}

	copy(p.pix, src.pix)
	return nil
}

// CountValue returns the number of pixels holding the given value.
func (p *Plane) CountValue(value uint8) int {
	count := 0
	for _, v := range p.pix {
		if v == value {
			count++
		}
	}
	return count
}
