package shape

import (
	"github.com/gogpu/gg-shape/fit"
	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/surface"
)

// fillResult is what drawFill put on the canvas.
type fillResult uint8

const (
	fillSkipped fillResult = iota
	// fillImage: the image went to the container fit drawer, which decides
	// whether any clip geometry is emitted.
	fillImage
	fillGeometry
)

// drawFill draws one fill of a shape of the given kind onto c.
//
// Image fills whose raster is not in images yet are skipped; the image store
// is expected to fill up asynchronously and the shape to be drawn again.
func (r *Renderer) drawFill(c surface.Canvas, f Fill, kind Kind, bounds surface.Rect, images ImageStore) fillResult {
	switch f := f.(type) {
	case ImageFill:
		if images == nil {
			logger.Get().Debug("shape: image fill without store", "image", f.ID)
			return fillSkipped
		}
		img, ok := images.Get(f.ID)
		if !ok || img == nil {
			logger.Get().Debug("shape: image not loaded", "image", f.ID)
			return fillSkipped
		}
		r.opts.fit(c, img, fit.Size{Width: f.Width, Height: f.Height}, kind, bounds, f.Paint(bounds))
		return fillImage

	case SolidFill, GradientFill:
		paint := f.Paint(bounds)
		switch k := kind.(type) {
		case Rect:
			c.DrawRect(bounds, paint)
		case Circle:
			c.DrawOval(bounds, paint)
		case Path:
			if k.Data.IsEmpty() {
				return fillSkipped
			}
			c.DrawPath(k.Data, paint)
		default:
			return fillSkipped
		}
		return fillGeometry
	}
	return fillSkipped
}
