package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"binary-morphology/internal/logger"
	"binary-morphology/internal/raster"
)

// binarizationThreshold is the luma cutoff when ingesting images that are not
// strictly two-valued. Pixels at or above it become foreground.
const binarizationThreshold = 128

type Loader struct {
	log logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	return &Loader{log: log}
}

// LoadImage decodes an image file and binarizes it into a raster plane.
// Supported formats: png, jpeg, gif, tiff, bmp, webp.
func (l *Loader) LoadImage(path string) (*ImageData, error) {
	startTime := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	plane, err := binarize(img)
	if err != nil {
		return nil, err
	}

	imageData := &ImageData{
		Plane:      plane,
		Width:      plane.Width(),
		Height:     plane.Height(),
		Format:     determineActualFormat(filepath.Ext(path), format),
		SourcePath: path,
	}

	l.log.Info("PipelineLoader", "image loaded", map[string]interface{}{
		"path":       path,
		"width":      imageData.Width,
		"height":     imageData.Height,
		"format":     imageData.Format,
		"foreground": plane.CountValue(raster.Foreground),
		"elapsed":    time.Since(startTime).String(),
	})

	return imageData, nil
}

// binarize maps an arbitrary decoded image onto the two plane sentinels by
// luma threshold. Images that are already binary pass through unchanged
// because 0 and 255 sit on opposite sides of the cutoff.
func binarize(img image.Image) (*raster.Plane, error) {
	bounds := img.Bounds()
	plane, err := raster.NewPlane(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, fmt.Errorf("failed to create plane: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y >= binarizationThreshold {
				plane.Set(x-bounds.Min.X, y-bounds.Min.Y, raster.Foreground)
			}
		}
	}

	return plane, nil
}

func determineActualFormat(pathExtension, decodedFormat string) string {
	switch strings.ToLower(pathExtension) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return decodedFormat
	}
}
