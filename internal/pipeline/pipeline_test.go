package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"binary-morphology/internal/algorithms"
	"binary-morphology/internal/algorithms/morphology"
	"binary-morphology/internal/logger"
	"binary-morphology/internal/raster"
)

func testImageData(t *testing.T, rows []string) *ImageData {
	t.Helper()
	plane := maskFrom(t, rows)
	return &ImageData{
		Plane:  plane,
		Width:  plane.Width(),
		Height: plane.Height(),
		Format: "png",
	}
}

func TestLoaderSaver_RoundTrip(t *testing.T) {
	log := logger.NewNop()
	saver := NewSaver(log)
	loader := NewLoader(log)

	original := testImageData(t, []string{
		"#..#.",
		".##..",
		"..#.#",
		"#...#",
	})

	for _, name := range []string{"mask.png", "mask.bmp", "mask.tiff"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, saver.SaveImage(path, original), name)

		loaded, err := loader.LoadImage(path)
		require.NoError(t, err, name)
		require.Equal(t, original.Width, loaded.Width, name)
		require.Equal(t, original.Height, loaded.Height, name)

		metrics, err := CalculateBinaryMetrics(original.Plane, loaded.Plane)
		require.NoError(t, err, name)
		require.Zero(t, metrics.PixelsChanged, "%s round trip must be lossless", name)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(logger.NewNop())
	_, err := loader.LoadImage(filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
}

func TestSaver_NilImage(t *testing.T) {
	saver := NewSaver(logger.NewNop())
	require.Error(t, saver.SaveImage(filepath.Join(t.TempDir(), "out.png"), nil))
}

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	processor := morphology.NewProcessorWithWorkers(2)
	t.Cleanup(processor.Shutdown)
	return NewCoordinator(algorithms.NewManager(processor), logger.NewNop())
}

func TestCoordinator_FullFlow(t *testing.T) {
	coordinator := newTestCoordinator(t)

	// Seed an input file through the saver.
	inputPath := filepath.Join(t.TempDir(), "input.png")
	source := testImageData(t, []string{
		".....",
		".....",
		"..#..",
		".....",
		".....",
	})
	require.NoError(t, NewSaver(logger.NewNop()).SaveImage(inputPath, source))

	_, err := coordinator.LoadImage(inputPath)
	require.NoError(t, err)

	params := map[string]interface{}{
		"kernel":     []int{1, 1, 1, 1, 1, 1, 1, 1, 1},
		"iterations": 1,
		"operation":  morphology.OpDilate,
	}

	processed, err := coordinator.Process("Binary Morphology", params, nil)
	require.NoError(t, err)
	require.Equal(t, 9, processed.Plane.CountValue(raster.Foreground))

	metrics, err := coordinator.Metrics()
	require.NoError(t, err)
	require.Equal(t, 8, metrics.PixelsChanged)

	outputPath := filepath.Join(t.TempDir(), "output.png")
	require.NoError(t, coordinator.SaveProcessed(outputPath))

	loaded, err := NewLoader(logger.NewNop()).LoadImage(outputPath)
	require.NoError(t, err)
	require.Equal(t, 9, loaded.Plane.CountValue(raster.Foreground))
}

func TestCoordinator_ProcessWithoutImage(t *testing.T) {
	coordinator := newTestCoordinator(t)

	_, err := coordinator.Process("Binary Morphology", nil, nil)
	require.Error(t, err)
	require.Error(t, coordinator.SaveProcessed(filepath.Join(t.TempDir(), "out.png")))
}

// TestCoordinator_FailedProcessKeepsPreviousResult verifies that a rejected
// request leaves the previously owned result untouched.
func TestCoordinator_FailedProcessKeepsPreviousResult(t *testing.T) {
	coordinator := newTestCoordinator(t)

	inputPath := filepath.Join(t.TempDir(), "input.png")
	source := testImageData(t, []string{
		"##.",
		".#.",
		"...",
	})
	require.NoError(t, NewSaver(logger.NewNop()).SaveImage(inputPath, source))

	_, err := coordinator.LoadImage(inputPath)
	require.NoError(t, err)

	good := map[string]interface{}{"operation": morphology.OpErode}
	first, err := coordinator.Process("Binary Morphology", good, nil)
	require.NoError(t, err)

	bad := map[string]interface{}{"operation": "sharpen"}
	_, err = coordinator.Process("Binary Morphology", bad, nil)
	require.ErrorIs(t, err, morphology.ErrUnknownOperation)

	require.Same(t, first, coordinator.GetProcessedImage())
}
