// Package asset decodes the globe's textures off the frame thread.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"globe3d/internal/scene"
)

// DefaultMaxTextureSize bounds either side of a decoded texture.
const DefaultMaxTextureSize = 4096

// Request asks for the image at Path to be decoded for Slot.
type Request struct {
	Slot scene.TextureSlot
	Path string
}

// Result reports one finished request. Err is set when Image is nil.
type Result struct {
	Slot  scene.TextureSlot
	Image *image.NRGBA
	Err   error
}

// Loader decodes textures on a worker pool.
type Loader struct {
	pool    worker.DynamicWorkerPool
	maxSize int
	read    func(string) ([]byte, error)
}

type LoaderOption func(*Loader)

// WithMaxSize caps texture width and height; larger images are downscaled.
func WithMaxSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithReader replaces os.ReadFile, e.g. to read from an embedded FS.
func WithReader(read func(string) ([]byte, error)) LoaderOption {
	return func(l *Loader) {
		if read != nil {
			l.read = read
		}
	}
}

// NewLoader creates a loader backed by a pool of workers goroutines. Idle
// workers exit after a second, so an unused loader holds no goroutines.
func NewLoader(workers int, options ...LoaderOption) *Loader {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	l := &Loader{
		maxSize: DefaultMaxTextureSize,
		read:    os.ReadFile,
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(workers, 64, 1*time.Second)
	return l
}

// Load decodes every request concurrently. Each request produces exactly one
// Result; the channel is closed once all have been delivered or ctx is done.
// Results that would be delivered after cancellation are dropped.
func (l *Loader) Load(ctx context.Context, requests []Request) <-chan Result {
	out := make(chan Result, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				img, err := l.decode(req.Path)
				res := Result{Slot: req.Slot, Image: img, Err: err}
				select {
				case out <- res:
				case <-ctx.Done():
				}
				return nil, err
			},
		})
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (l *Loader) decode(path string) (*image.NRGBA, error) {
	raw, err := l.read(path)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", path, err)
	}
	return Fit(ToNRGBA(img), l.maxSize), nil
}

// ToNRGBA converts src to non-premultiplied RGBA with its origin at (0, 0).
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Fit downscales img so neither side exceeds maxSize, keeping the aspect
// ratio. Images already within bounds are returned unchanged.
func Fit(img *image.NRGBA, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(h*maxSize/w, 1)
		w = maxSize
	} else {
		w = max(w*maxSize/h, 1)
		h = maxSize
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
