// Command binary-morphology applies binary morphology operations (dilate,
// erode, open, close) to an image file, with a configurable structuring
// element, iteration count, and parallelism degree.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"binary-morphology/internal/algorithms"
	"binary-morphology/internal/algorithms/morphology"
	"binary-morphology/internal/logger"
	"binary-morphology/internal/pipeline"
	"binary-morphology/internal/shutdown"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "input image path (png, jpeg, gif, tiff, bmp, webp)")
		outputPath  = flag.String("output", "", "output image path (png, tiff, bmp)")
		operation   = flag.String("operation", morphology.OpDilate, "operation: dilate, erode, open, close")
		iterations  = flag.Int("iterations", 1, fmt.Sprintf("iteration count [1, %d]", morphology.MaxHostIterations))
		kernelSpec  = flag.String("kernel", "", "flat comma-separated kernel cells, e.g. 0,1,0,1,1,1,0,1,0")
		kernelSize  = flag.Int("kernel-size", 3, "side of an all-active square kernel, used when -kernel is empty")
		workers     = flag.Int("workers", 0, "parallel workers, 0 = all CPUs")
		showMetrics = flag.Bool("metrics", false, "log mask metrics for the result")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "both -input and -output are required")
		flag.Usage()
		os.Exit(2)
	}

	logLevel := zerolog.InfoLevel
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger(logLevel)

	kernelCells, err := resolveKernel(*kernelSpec, *kernelSize)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"kernel": *kernelSpec})
		os.Exit(1)
	}

	// Host-side property bound on iterations; the engine only requires >= 1.
	boundedIterations := *iterations
	if boundedIterations < 1 {
		boundedIterations = 1
	}
	if boundedIterations > morphology.MaxHostIterations {
		log.Warning("Main", "iterations clamped to host bound", map[string]interface{}{
			"requested": *iterations,
			"bound":     morphology.MaxHostIterations,
		})
		boundedIterations = morphology.MaxHostIterations
	}

	processor := morphology.NewProcessorWithWorkers(*workers)
	manager := algorithms.NewManager(processor)

	shutdownManager := shutdown.NewManager(log)
	shutdownManager.Register(manager)
	shutdownManager.Listen()
	defer shutdownManager.Shutdown()

	coordinator := pipeline.NewCoordinator(manager, log)

	if _, err := coordinator.LoadImage(*inputPath); err != nil {
		log.Error("Main", err, map[string]interface{}{"path": *inputPath})
		os.Exit(1)
	}

	algorithmName := processor.GetName()
	for name, value := range map[string]interface{}{
		"kernel":     kernelCells,
		"iterations": boundedIterations,
		"operation":  *operation,
	} {
		if err := manager.SetParameter(algorithmName, name, value); err != nil {
			log.Error("Main", err, nil)
			os.Exit(1)
		}
	}

	progress := consoleProgress(*operation)

	startTime := time.Now()
	result, err := coordinator.Process(algorithmName, manager.GetParameters(algorithmName), progress)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"operation": *operation})
		os.Exit(1)
	}

	log.Info("Main", "processing complete", map[string]interface{}{
		"operation":  *operation,
		"iterations": boundedIterations,
		"width":      result.Width,
		"height":     result.Height,
		"elapsed":    time.Since(startTime).String(),
	})

	if *showMetrics {
		metrics, err := coordinator.Metrics()
		if err != nil {
			log.Error("Main", err, nil)
			os.Exit(1)
		}
		log.Info("Main", "mask metrics", map[string]interface{}{
			"foreground_before": fmt.Sprintf("%.4f", metrics.ForegroundBefore),
			"foreground_after":  fmt.Sprintf("%.4f", metrics.ForegroundAfter),
			"pixels_changed":    metrics.PixelsChanged,
			"iou":               fmt.Sprintf("%.4f", metrics.IoU),
			"dice":              fmt.Sprintf("%.4f", metrics.DiceCoefficient),
		})
	}

	if err := coordinator.SaveProcessed(*outputPath); err != nil {
		log.Error("Main", err, map[string]interface{}{"path": *outputPath})
		os.Exit(1)
	}
}

// resolveKernel builds the kernel cell sequence from either an explicit flat
// list or an all-active square side.
func resolveKernel(spec string, size int) ([]int, error) {
	if spec == "" {
		if size <= 0 {
			return nil, fmt.Errorf("kernel-size must be positive, got %d", size)
		}
		cells := make([]int, size*size)
		for i := range cells {
			cells[i] = 1
		}
		return cells, nil
	}

	parts := strings.Split(spec, ",")
	cells := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid kernel cell %q: %w", part, err)
		}
		cells = append(cells, value)
	}
	return cells, nil
}

// consoleProgress renders a carriage-return percent line on stderr. The
// processor guarantees non-decreasing values ending at exactly 100.
func consoleProgress(operation string) algorithms.ProgressFunc {
	return func(percent float64) {
		fmt.Fprintf(os.Stderr, "\r%s: %3.0f%%", operation, percent)
	}
}
