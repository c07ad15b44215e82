package morphology

import (
	"binary-morphology/internal/raster"
	"binary-morphology/internal/workerpool"
)

// Operation selectors accepted by the processor.
const (
	OpDilate = "dilate"
	OpErode  = "erode"
	OpOpen   = "open"
	OpClose  = "close"
)

// Operations returns the supported operation selectors.
func Operations() []string {
	return []string{OpDilate, OpErode, OpOpen, OpClose}
}

// Dilate expands foreground regions: a pixel becomes foreground if any
// active, in-bounds neighbor is foreground. Runs for the given number of
// iterations and leaves the result in dst without mutating src.
func Dilate(pool *workerpool.Pool, src, dst *raster.Plane, kernel *Kernel, iterations int, rowDone func()) error {
	t := transform{truth: raster.Foreground, fallback: raster.Background}
	return t.run(pool, src, dst, kernel, iterations, rowDone)
}

// Erode shrinks foreground regions: a pixel stays foreground only if every
// active, in-bounds neighbor is foreground.
func Erode(pool *workerpool.Pool, src, dst *raster.Plane, kernel *Kernel, iterations int, rowDone func()) error {
	t := transform{truth: raster.Background, fallback: raster.Foreground}
	return t.run(pool, src, dst, kernel, iterations, rowDone)
}

// Open removes foreground features smaller than the kernel: erosion followed
// by dilation, each stage running the full iteration count. The erosion
// result in dst doubles as the dilation input; the dilation snapshots it
// before writing, so no extra buffer is needed.
func Open(pool *workerpool.Pool, src, dst *raster.Plane, kernel *Kernel, iterations int, rowDone func()) error {
	if err := Erode(pool, src, dst, kernel, iterations, rowDone); err != nil {
		return err
	}
	return Dilate(pool, dst, dst, kernel, iterations, rowDone)
}

// Close fills background gaps smaller than the kernel: dilation followed by
// erosion, each stage running the full iteration count.
func Close(pool *workerpool.Pool, src, dst *raster.Plane, kernel *Kernel, iterations int, rowDone func()) error {
	if err := Dilate(pool, src, dst, kernel, iterations, rowDone); err != nil {
		return err
	}
	return Erode(pool, dst, dst, kernel, iterations, rowDone)
}
