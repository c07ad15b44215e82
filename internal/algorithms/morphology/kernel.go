package morphology

import (
	"fmt"
	"math"
)

// kernelOffset is one active cell's displacement from the kernel center.
type kernelOffset struct {
	dy int
	dx int
}

// Kernel is a square boolean structuring element. It stores the relative
// offsets of its active cells in flat index order and is immutable once
// built.
type Kernel struct {
	side    int
	center  int
	offsets []kernelOffset
}

// NewKernel builds a kernel from a flat cell sequence in row-major order.
// Any non-zero cell is active. The sequence length must be a positive
// perfect square; the center offset is side/2.
func NewKernel(cells []int) (*Kernel, error) {
	n := len(cells)
	if n == 0 {
		return nil, fmt.Errorf("%w: got 0 cells", ErrKernelNotSquare)
	}

	side := int(math.Sqrt(float64(n)))
	if side*side != n {
		return nil, fmt.Errorf("%w: got %d cells", ErrKernelNotSquare, n)
	}

	center := side / 2
	k := &Kernel{side: side, center: center}
	for i, cell := range cells {
		if cell == 0 {
			continue
		}
		k.offsets = append(k.offsets, kernelOffset{
			dy: i/side - center,
			dx: i%side - center,
		})
	}

	return k, nil
}

// SquareKernel returns an all-active side×side kernel.
func SquareKernel(side int) (*Kernel, error) {
	if side <= 0 {
		return nil, fmt.Errorf("%w: side %d", ErrKernelNotSquare, side)
	}

	cells := make([]int, side*side)
	for i := range cells {
		cells[i] = 1
	}
	return NewKernel(cells)
}

// IdentityKernelCells returns the flat cell sequence of a side×side kernel
// with only the center cell active. It is the default kernel: both dilation
// and erosion leave the image unchanged under it.
func IdentityKernelCells(side int) []int {
	cells := make([]int, side*side)
	cells[(side/2)*side+side/2] = 1
	return cells
}

func (k *Kernel) Side() int {
	return k.side
}

// Center returns the offset of the kernel center from its top-left cell.
func (k *Kernel) Center() int {
	return k.center
}

// ActiveCount returns the number of active cells.
func (k *Kernel) ActiveCount() int {
	return len(k.offsets)
}
