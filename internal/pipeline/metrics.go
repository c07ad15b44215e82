package pipeline

import (
	"fmt"

	"binary-morphology/internal/raster"
)

// BinaryMetrics describes how a morphology result differs from its input
// mask.
type BinaryMetrics struct {
	ForegroundBefore float64 // Foreground fraction of the input
	ForegroundAfter  float64 // Foreground fraction of the result
	PixelsChanged    int     // Pixels whose value differs between the two
	IoU              float64 // Intersection over Union of the foreground masks
	DiceCoefficient  float64 // Dice similarity of the foreground masks
}

// CalculateBinaryMetrics compares two planes of identical dimensions as
// foreground masks.
func CalculateBinaryMetrics(original, processed *raster.Plane) (*BinaryMetrics, error) {
	if original == nil || processed == nil {
		return nil, fmt.Errorf("original and processed planes cannot be nil")
	}

	if err := raster.ValidateSameDimensions(original, processed); err != nil {
		return nil, fmt.Errorf("failed to calculate binary metrics: %w", err)
	}

	width := original.Width()
	height := original.Height()
	totalPixels := width * height

	intersection := 0
	union := 0
	foregroundBefore := 0
	foregroundAfter := 0
	changed := 0

	for y := 0; y < height; y++ {
		originalRow := original.Row(y)
		processedRow := processed.Row(y)

		for x := 0; x < width; x++ {
			before := originalRow[x] == raster.Foreground
			after := processedRow[x] == raster.Foreground

			if before {
				foregroundBefore++
			}
			if after {
				foregroundAfter++
			}
			if before && after {
				intersection++
			}
			if before || after {
				union++
			}
			if before != after {
				changed++
			}
		}
	}

	metrics := &BinaryMetrics{
		ForegroundBefore: float64(foregroundBefore) / float64(totalPixels),
		ForegroundAfter:  float64(foregroundAfter) / float64(totalPixels),
		PixelsChanged:    changed,
	}

	// Two empty masks are identical by definition.
	if union == 0 {
		metrics.IoU = 1.0
		metrics.DiceCoefficient = 1.0
		return metrics, nil
	}

	metrics.IoU = float64(intersection) / float64(union)
	metrics.DiceCoefficient = 2 * float64(intersection) / float64(foregroundBefore+foregroundAfter)

	return metrics, nil
}
