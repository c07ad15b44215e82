package morphology

import "errors"

// Sentinel errors for binary morphology operations. All are detected before
// any pixel work begins; none are retried.
var (
	// ErrKernelNotSquare indicates a kernel cell count that is not a
	// positive perfect square.
	ErrKernelNotSquare = errors.New("morphology: kernel length must be a positive perfect square")
	// ErrInvalidIterations indicates an iteration count below 1.
	ErrInvalidIterations = errors.New("morphology: iterations must be at least 1")
	// ErrUnknownOperation indicates an operation selector outside the
	// supported set.
	ErrUnknownOperation = errors.New("morphology: unknown operation")
	// ErrDimensionMismatch indicates a destination plane whose dimensions
	// differ from the source.
	ErrDimensionMismatch = errors.New("morphology: source and destination dimensions differ")
)
