package vector

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-shape/surface"
)

// CanvasBackend replays commands onto a surface.Canvas.
//
// Transforms in a recording are absolute, so CanvasBackend composes them
// with the transform the target had at Begin.
type CanvasBackend struct {
	target surface.Canvas
	base   gg.Matrix
	depth  int
}

var _ Backend = (*CanvasBackend)(nil)

// NewCanvasBackend creates a backend drawing onto target.
func NewCanvasBackend(target surface.Canvas) *CanvasBackend {
	return &CanvasBackend{target: target}
}

// Begin implements Backend. The target's state is saved and restored by End.
func (b *CanvasBackend) Begin(_, _ float64) error {
	b.target.Save()
	b.base = b.target.Transform()
	b.depth = b.target.SaveCount()
	return nil
}

// End implements Backend.
func (b *CanvasBackend) End() error {
	for b.target.SaveCount() >= b.depth && b.target.SaveCount() > 0 {
		b.target.Restore()
	}
	return nil
}

// Save implements Backend.
func (b *CanvasBackend) Save() { b.target.Save() }

// Restore implements Backend. It never pops below the state saved by Begin.
func (b *CanvasBackend) Restore() {
	if b.target.SaveCount() > b.depth {
		b.target.Restore()
	}
}

// SetTransform implements Backend.
func (b *CanvasBackend) SetTransform(m gg.Matrix) {
	cur := b.target.Transform()
	// Concat only composes, so undo the current transform first.
	b.target.Concat(cur.Invert().Multiply(b.base.Multiply(m)))
}

// SetClip implements Backend.
func (b *CanvasBackend) SetClip(path *surface.Path) {
	if path != nil {
		b.target.ClipPath(path)
	}
}

// FillPath implements Backend.
func (b *CanvasBackend) FillPath(path *surface.Path, brush surface.Brush, opacity float64) {
	b.target.DrawPath(path, surface.Paint{Brush: brush, Opacity: opacity})
}

// DrawImage implements Backend.
func (b *CanvasBackend) DrawImage(img image.Image, dst surface.Rect, opacity float64) {
	b.target.DrawImage(img, dst, surface.Paint{Opacity: opacity})
}

// DrawText implements Backend.
func (b *CanvasBackend) DrawText(s string, x, y float64, face text.Face, brush surface.Brush, opacity float64) {
	b.target.DrawText(s, x, y, face, surface.Paint{Brush: brush, Opacity: opacity})
}
