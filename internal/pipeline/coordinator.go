// Package pipeline wires image loading, morphology processing, and saving
// into one load/process/save flow owned by a Coordinator.
package pipeline

import (
	"fmt"
	"sync"

	"binary-morphology/internal/algorithms"
	"binary-morphology/internal/logger"
	"binary-morphology/internal/raster"
)

// ImageData is a loaded binary image with its metadata.
type ImageData struct {
	Plane      *raster.Plane
	Width      int
	Height     int
	Format     string
	SourcePath string
}

// Coordinator owns the original and processed images. The processed image is
// replaced atomically on each successful Process call; a failed call leaves
// the previous result untouched.
type Coordinator struct {
	mu               sync.RWMutex
	originalImage    *ImageData
	processedImage   *ImageData
	algorithmManager *algorithms.Manager
	loader           *Loader
	saver            *Saver
	log              logger.Logger
}

func NewCoordinator(algorithmManager *algorithms.Manager, log logger.Logger) *Coordinator {
	if log == nil {
		log = logger.NewNop()
	}

	return &Coordinator{
		algorithmManager: algorithmManager,
		loader:           NewLoader(log),
		saver:            NewSaver(log),
		log:              log,
	}
}

func (c *Coordinator) LoadImage(path string) (*ImageData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	imageData, err := c.loader.LoadImage(path)
	if err != nil {
		return nil, err
	}

	c.originalImage = imageData
	c.processedImage = nil
	return imageData, nil
}

// Process runs the named algorithm over the original image. The result
// becomes the coordinator's owned processed image, replacing any previous
// one.
func (c *Coordinator) Process(algorithmName string, params map[string]interface{}, progress algorithms.ProgressFunc) (*ImageData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.originalImage == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	algorithm, err := c.algorithmManager.GetAlgorithm(algorithmName)
	if err != nil {
		return nil, err
	}

	resultPlane, err := algorithm.Process(c.originalImage.Plane, params, progress)
	if err != nil {
		return nil, err
	}

	processedData := &ImageData{
		Plane:      resultPlane,
		Width:      resultPlane.Width(),
		Height:     resultPlane.Height(),
		Format:     c.originalImage.Format,
		SourcePath: c.originalImage.SourcePath,
	}

	c.processedImage = processedData
	return processedData, nil
}

func (c *Coordinator) SaveProcessed(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.processedImage == nil {
		return fmt.Errorf("no processed image to save")
	}

	return c.saver.SaveImage(path, c.processedImage)
}

func (c *Coordinator) GetOriginalImage() *ImageData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.originalImage
}

func (c *Coordinator) GetProcessedImage() *ImageData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processedImage
}

// Metrics compares the original and processed masks.
func (c *Coordinator) Metrics() (*BinaryMetrics, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.originalImage == nil || c.processedImage == nil {
		return nil, fmt.Errorf("both original and processed images are required for metrics")
	}

	return CalculateBinaryMetrics(c.originalImage.Plane, c.processedImage.Plane)
}
