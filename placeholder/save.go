package placeholder

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
)

// JPEGQuality is the quality every placeholder is encoded with.
const JPEGQuality = 85

// Save encodes img as a JPEG file at path, replacing any existing file. The parent directory
// is created if needed.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}
