// Package screenshot writes captured frames to disk as lossless WebP.
package screenshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Name returns the file name used for a capture taken at t.
func Name(t time.Time) string {
	return fmt.Sprintf("globe-%s.webp", t.Format("20060102-150405"))
}

// Save encodes img into dir, creating it if needed, and returns the path.
func Save(dir string, img image.Image, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}

	path := filepath.Join(dir, Name(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return "", fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	return path, nil
}

// FlipRows reverses the row order of a bottom-up framebuffer read in place.
func FlipRows(img *image.RGBA) {
	b := img.Bounds()
	row := make([]byte, b.Dx()*4)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[img.PixOffset(b.Min.X, top):][:len(row)]
		u := img.Pix[img.PixOffset(b.Min.X, bottom):][:len(row)]
		copy(row, t)
		copy(t, u)
		copy(u, row)
	}
}
