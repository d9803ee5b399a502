package shape

import (
	"fmt"
	"image"

	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/markup"
	"github.com/gogpu/gg-shape/surface"
)

// ImageStore looks up decoded raster images by ID. A missing image is a
// normal state: the fill is skipped until the image arrives.
type ImageStore interface {
	Get(id string) (image.Image, bool)
}

// FontResolver finds faces for text in raw markup.
type FontResolver = markup.FontResolver

// Renderer draws shapes onto canvases.
// A Renderer has no mutable state and may be shared between goroutines; each
// Render call must use its own canvas.
type Renderer struct {
	opts options
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o}
}

// Render draws s onto c with a renderer configured by opts.
func Render(s *Shape, c surface.Canvas, images ImageStore, fonts FontResolver, opts ...Option) error {
	return NewRenderer(opts...).Render(s, c, images, fonts)
}

// Render draws the fills of s onto c in the shape's local space. images and
// fonts may be nil; image fills and text are then skipped.
//
// Opacity, blend mode, visibility and clipping are not applied here: they
// belong to the compositor placing the shape in its layer (see Renderable).
// The canvas state is restored before Render returns, on success or failure.
func (r *Renderer) Render(s *Shape, c surface.Canvas, images ImageStore, fonts FontResolver) error {
	if s == nil {
		return ErrNilShape
	}
	logger.Get().Debug("shape: render", "shape", s.id, "kind", s.kind, "fills", len(s.fills))

	c.Save()
	defer c.Restore()
	c.Concat(PivotMatrix(s.bounds, s.transform))

	switch k := s.kind.(type) {
	case RawMarkup:
		dom, err := markup.ParseDom([]byte(k.Content), fonts)
		if err != nil {
			return &RenderError{ShapeID: s.id, Kind: s.kind, Stage: StageRawMarkup, Err: fmt.Errorf("%w: %w", ErrMarkupParse, err)}
		}
		if err := dom.Render(c); err != nil {
			return &RenderError{ShapeID: s.id, Kind: s.kind, Stage: StageRawMarkup, Err: err}
		}
		return nil
	case Path:
		if len(s.fills) == 0 {
			return nil
		}
		return r.correctedFill(s, c, images, fonts)
	case Rect, Circle:
		for i := len(s.fills) - 1; i >= 0; i-- {
			r.drawFill(c, s.fills[i], s.kind, s.bounds, images)
		}
		return nil
	}
	return fmt.Errorf("shape: render %q: unsupported kind %T", s.id, s.kind)
}
