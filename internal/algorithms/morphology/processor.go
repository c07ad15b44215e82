package morphology

import (
	"fmt"
	"sync"
	"sync/atomic"

	"binary-morphology/internal/algorithms"
	"binary-morphology/internal/raster"
	"binary-morphology/internal/workerpool"
)

// MaxHostIterations is the upper bound the host exposes for the iteration
// property. The engine itself only requires iterations >= 1.
const MaxHostIterations = 16

// Processor runs binary morphology operations. It implements
// algorithms.Algorithm and is stateless across invocations; the worker pool
// it owns is released via Shutdown.
type Processor struct {
	name string
	pool *workerpool.Pool
}

func NewProcessor() *Processor {
	return NewProcessorWithWorkers(0)
}

// NewProcessorWithWorkers creates a processor with a fixed parallelism
// degree. A non-positive count defaults to GOMAXPROCS.
func NewProcessorWithWorkers(workers int) *Processor {
	return &Processor{
		name: "Binary Morphology",
		pool: workerpool.New(workers),
	}
}

func (p *Processor) GetName() string {
	return p.name
}

// Shutdown releases the processor's worker pool.
func (p *Processor) Shutdown() {
	p.pool.Close()
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"kernel":     IdentityKernelCells(3), // 3×3, center cell only
		"iterations": 1,                      // Host bound: [1, MaxHostIterations]
		"operation":  OpDilate,
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	if raw, ok := params["kernel"]; ok {
		cells, ok := raw.([]int)
		if !ok {
			return fmt.Errorf("%w: kernel must be a flat []int cell sequence", ErrKernelNotSquare)
		}
		if _, err := NewKernel(cells); err != nil {
			return err
		}
	}

	if raw, ok := params["iterations"]; ok {
		iterations, ok := raw.(int)
		if !ok {
			return fmt.Errorf("%w: iterations must be an int", ErrInvalidIterations)
		}
		if iterations < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
		}
	}

	if raw, ok := params["operation"]; ok {
		operation, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: operation must be a string", ErrUnknownOperation)
		}
		switch operation {
		case OpDilate, OpErode, OpOpen, OpClose:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownOperation, operation)
		}
	}

	return nil
}

// Process applies the configured operation and returns a newly owned result
// plane of the input's dimensions. The input plane is never mutated. Progress
// is reported once per completed row as a percentage of all rows across all
// passes; reports are non-decreasing and end at exactly 100.
func (p *Processor) Process(input *raster.Plane, params map[string]interface{}, progress algorithms.ProgressFunc) (*raster.Plane, error) {
	if err := raster.ValidatePlaneForOperation(input, "binary morphology"); err != nil {
		return nil, err
	}

	if err := p.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	merged := p.GetDefaultParameters()
	for k, v := range params {
		merged[k] = v
	}

	cells := merged["kernel"].([]int)
	iterations := merged["iterations"].(int)
	operation := merged["operation"].(string)

	kernel, err := NewKernel(cells)
	if err != nil {
		return nil, err
	}

	totalRows := input.Height() * iterations
	if operation == OpOpen || operation == OpClose {
		// Compound operations run two full stages.
		totalRows *= 2
	}

	rowDone := p.progressCounter(totalRows, progress)

	result, err := raster.NewPlane(input.Width(), input.Height())
	if err != nil {
		return nil, err
	}

	switch operation {
	case OpDilate:
		err = Dilate(p.pool, input, result, kernel, iterations, rowDone)
	case OpErode:
		err = Erode(p.pool, input, result, kernel, iterations, rowDone)
	case OpOpen:
		err = Open(p.pool, input, result, kernel, iterations, rowDone)
	case OpClose:
		err = Close(p.pool, input, result, kernel, iterations, rowDone)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, operation)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// progressCounter aggregates per-row completion events from all workers into
// ordered percentage reports. The row counter is a lock-free atomic; the sink
// call is serialized behind a high-water mark so interleaved workers can
// never deliver a decreasing value.
func (p *Processor) progressCounter(totalRows int, progress algorithms.ProgressFunc) func() {
	if progress == nil {
		return func() {}
	}

	var done atomic.Int64
	var mu sync.Mutex
	highest := int64(0)

	return func() {
		completed := done.Add(1)

		mu.Lock()
		if completed > highest {
			highest = completed
			progress(100 * float64(completed) / float64(totalRows))
		}
		mu.Unlock()
	}
}
