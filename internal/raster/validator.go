package raster

import "fmt"

// ValidatePlaneForOperation checks that a plane is usable as an operation
// input before any pixel work begins.
func ValidatePlaneForOperation(p *Plane, operation string) error {
	if p == nil {
		return fmt.Errorf("nil plane for %s", operation)
	}

	if p.width <= 0 || p.height <= 0 {
		return fmt.Errorf("%w: %dx%d for %s", ErrInvalidDimensions, p.width, p.height, operation)
	}

	if len(p.pix) != p.width*p.height {
		return fmt.Errorf("corrupt plane storage for %s: have %d pixels, want %d",
			operation, len(p.pix), p.width*p.height)
	}

	return nil
}

// ValidateSameDimensions checks that two planes are compatible for pixel-wise
// operations.
func ValidateSameDimensions(a, b *Plane) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: nil plane", ErrDimensionMismatch)
	}

	if a.width != b.width || a.height != b.height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			a.width, a.height, b.width, b.height)
	}

	return nil
}
