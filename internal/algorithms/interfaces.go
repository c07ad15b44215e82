package algorithms

import (
	"binary-morphology/internal/raster"
)

// ProgressFunc receives completion percentages in [0, 100] during processing.
// Successive values within one invocation never decrease and the final value
// is exactly 100. Implementations forward them to the host's progress display.
type ProgressFunc func(percent float64)

// Algorithm defines the interface for binary image processing algorithms.
// Process must not mutate the input plane and returns a newly owned result
// plane of identical dimensions.
type Algorithm interface {
	Process(input *raster.Plane, params map[string]interface{}, progress ProgressFunc) (*raster.Plane, error)
	ValidateParameters(params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
}
