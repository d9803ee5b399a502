// Package raster provides a pixel backend for vector recordings.
// It replays onto a gg.Context through surface.ContextCanvas, so gradients,
// images, clips and fill rules behave exactly as on a live canvas.
//
//	import _ "github.com/gogpu/gg-shape/vector/backends/raster"
//
//	b, _ := vector.NewBackend("raster")
//	_ = recording.Playback(b)
//	b.WriteTo(w) // PNG
package raster

import (
	"errors"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/surface"
	"github.com/gogpu/gg-shape/vector"
)

func init() {
	vector.Register(vector.Format{Name: "raster", New: func() vector.WriterBackend {
		return NewBackend()
	}})
}

// Backend renders recordings to a pixel image.
type Backend struct {
	*vector.CanvasBackend
	ctx *gg.Context
}

var _ vector.WriterBackend = (*Backend)(nil)

// NewBackend creates a raster backend. Begin allocates the pixels.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin implements vector.Backend. Fractional sizes are rounded up.
func (b *Backend) Begin(width, height float64) error {
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if w <= 0 || h <= 0 {
		return errors.New("raster: empty output size")
	}
	if b.ctx != nil {
		_ = b.ctx.Close()
	}
	b.ctx = gg.NewContext(w, h)
	b.CanvasBackend = vector.NewCanvasBackend(surface.NewContextCanvas(b.ctx))
	return b.CanvasBackend.Begin(width, height)
}

// Image returns the rendered image, or nil before Begin.
func (b *Backend) Image() image.Image {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Image()
}

// WriteTo encodes the rendered image as PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.ctx == nil {
		return 0, vector.ErrNotEnded
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.ctx.Image())
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
