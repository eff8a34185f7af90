package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// SavePNG writes the canvas content to a PNG file, creating parent
// directories as needed.
func (c *Canvas) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, c.img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
