// Package debug provides frame timing and screenshot capture.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Screenshot image formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ScreenshotCapture writes frames read back from the GPU to disk.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler. format is "png" or "bmp".
func NewScreenshotCapture(outputDir, prefix, format string) (*ScreenshotCapture, error) {
	format = strings.ToLower(format)
	if format != FormatPNG && format != FormatBMP {
		return nil, fmt.Errorf("unknown screenshot format %q", format)
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}, nil
}

// Format returns the image format.
func (sc *ScreenshotCapture) Format() string { return sc.format }

// CaptureFromPixels writes bottom-up RGBA rows (as glReadPixels returns
// them) to a timestamped file and returns its path.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage writes an image to a timestamped file.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := sc.encode(file, img); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	return filename, nil
}

func (sc *ScreenshotCapture) encode(w io.Writer, img image.Image) error {
	var err error
	switch sc.format {
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", strings.ToUpper(sc.format), err)
	}
	return nil
}

// GenerateFilename returns the path the next capture would be written to.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// FlipRGBA copies bottom-up RGBA rows into a top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
