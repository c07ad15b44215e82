package pipeline

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"binary-morphology/internal/logger"
	"binary-morphology/internal/raster"
)

type Saver struct {
	log logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	return &Saver{log: log}
}

// SaveImage encodes a binary image to disk. The format follows the target
// extension: png, tiff, or bmp; anything else falls back to png.
func (s *Saver) SaveImage(path string, imageData *ImageData) error {
	if imageData == nil || imageData.Plane == nil {
		return fmt.Errorf("no image data to save")
	}

	img := planeToGray(imageData.Plane)

	saveFormat := saveFormatForExtension(filepath.Ext(path))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	s.log.Info("PipelineSaver", "saving image", map[string]interface{}{
		"path":   path,
		"format": saveFormat,
	})

	switch saveFormat {
	case "tiff":
		err = tiff.Encode(file, img, nil)
	case "bmp":
		err = bmp.Encode(file, img)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s image: %w", saveFormat, err)
	}

	return nil
}

// planeToGray builds a grayscale image over the plane's two sentinel values.
func planeToGray(plane *raster.Plane) *image.Gray {
	width := plane.Width()
	height := plane.Height()

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+width], plane.Row(y))
	}
	return img
}

func saveFormatForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".tiff", ".tif":
		return "tiff"
	case ".bmp":
		return "bmp"
	default:
		return "png"
	}
}
