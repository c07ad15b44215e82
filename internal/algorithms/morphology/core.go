package morphology

import (
	"fmt"

	"binary-morphology/internal/raster"
	"binary-morphology/internal/workerpool"
)

// Both low-level operators reduce to the same scan with swapped pixel
// sentinels. A pixel's output is the truth value as soon as any active,
// in-bounds kernel neighbor equals it, otherwise the fallback value:
//
//	dilation: truth = Foreground, fallback = Background
//	erosion:  truth = Background, fallback = Foreground
//
// For dilation that means "any neighbor foreground wins"; for erosion the
// same scan expresses "one background neighbor is enough to clear the pixel",
// which is the complement of "all neighbors foreground".
type transform struct {
	truth    uint8
	fallback uint8
}

// run applies the transform for the given number of iterations, reading each
// iteration from a frozen previous generation and writing the next one.
//
// The caller's src is never mutated: it is snapshotted once before the first
// iteration. Generations then ping-pong between the snapshot and dst, tracked
// by an explicit current-generation index. When the final generation lands on
// the scratch buffer, it is copied into dst, so dst always holds the result
// on return.
//
// rowDone is invoked exactly once per completed row per iteration, from
// worker goroutines.
func (t transform) run(pool *workerpool.Pool, src, dst *raster.Plane, kernel *Kernel, iterations int, rowDone func()) error {
	if err := raster.ValidatePlaneForOperation(src, "morphology source"); err != nil {
		return err
	}
	if err := raster.ValidatePlaneForOperation(dst, "morphology destination"); err != nil {
		return err
	}
	if src.Width() != dst.Width() || src.Height() != dst.Height() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			src.Width(), src.Height(), dst.Width(), dst.Height())
	}
	if iterations < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}
	if kernel == nil {
		return fmt.Errorf("%w: nil kernel", ErrKernelNotSquare)
	}
	if rowDone == nil {
		rowDone = func() {}
	}

	height := src.Height()

	// Index 0 is the private snapshot, index 1 the caller's destination.
	buffers := [2]*raster.Plane{src.Clone(), dst}
	current := 0

	for i := 0; i < iterations; i++ {
		in := buffers[current]
		out := buffers[1-current]

		// Rows are independent within one iteration; ParallelFor's
		// return is the barrier before the generation flip.
		pool.ParallelFor(height, func(start, end int) {
			for y := start; y < end; y++ {
				t.scanRow(in, out, kernel, y)
				rowDone()
			}
		})

		current = 1 - current
	}

	if buffers[current] != dst {
		return dst.CopyFrom(buffers[current])
	}
	return nil
}

// scanRow evaluates one output row from the input generation. Neighbors
// outside the raster never contribute: they can never match the truth
// sentinel. The scan short-circuits at the first active neighbor that does.
func (t transform) scanRow(in, out *raster.Plane, kernel *Kernel, y int) {
	width := in.Width()
	height := in.Height()

	for x := 0; x < width; x++ {
		value := t.fallback
		for _, offset := range kernel.offsets {
			nx := x + offset.dx
			ny := y + offset.dy
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			if in.At(nx, ny) == t.truth {
				value = t.truth
				break
			}
		}
		out.Set(x, y, value)
	}
}
