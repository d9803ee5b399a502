package shape

import (
	"image"

	"github.com/gogpu/gg-shape/fit"
	"github.com/gogpu/gg-shape/surface"
)

// ContainerFitDrawer draws a raster image fill inside a shape. natural is the
// image's natural size, bounds the shape bounds in local coordinates. The
// drawer must leave the canvas state as it found it.
type ContainerFitDrawer func(c surface.Canvas, img image.Image, natural fit.Size, kind Kind, bounds surface.Rect, paint surface.Paint)

// FitPolicy returns a drawer that places every image with p, clipped to the
// footprint of the shape kind.
func FitPolicy(p fit.Policy) ContainerFitDrawer {
	return FitByKind(func(Kind) fit.Policy { return p })
}

// FitByKind returns a drawer that picks the policy per shape kind.
func FitByKind(policy func(Kind) fit.Policy) ContainerFitDrawer {
	return func(c surface.Canvas, img image.Image, natural fit.Size, kind Kind, bounds surface.Rect, paint surface.Paint) {
		fit.Draw(c, img, natural, Footprint(kind, bounds), bounds, policy(kind), paint)
	}
}

// Option configures a Renderer.
//
// Example:
//
//	// Letterbox images instead of cropping them
//	r := shape.NewRenderer(shape.WithContainerFit(shape.FitPolicy(fit.Contain)))
type Option func(*options)

// options holds optional configuration for a Renderer.
type options struct {
	fit ContainerFitDrawer
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		fit: FitPolicy(fit.Cover),
	}
}

// WithContainerFit sets how image fills are placed inside shapes.
// A nil drawer restores the default, which covers the shape bounds.
func WithContainerFit(d ContainerFitDrawer) Option {
	return func(o *options) {
		if d == nil {
			d = FitPolicy(fit.Cover)
		}
		o.fit = d
	}
}
