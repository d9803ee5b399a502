package main

import (
	"fmt"

	"github.com/gogpu/gg"

	shape "github.com/gogpu/gg-shape"
	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/surface"
)

// maxDepth bounds the shape tree; deeper nesting means a cycle.
const maxDepth = 64

// composer walks the shape tree and draws every visible shape.
type composer struct {
	renderer *shape.Renderer
	images   shape.ImageStore
	fonts    shape.FontResolver
	byID     map[string]*shape.Shape
	roots    []*shape.Shape

	// layers is set when drawing to pixels; opacity and blending are then
	// applied through gg layers. Vector output ignores them.
	layers *gg.Context
}

func newComposer(shapes []*shape.Shape, r *shape.Renderer, images shape.ImageStore, fonts shape.FontResolver) (*composer, error) {
	c := &composer{
		renderer: r,
		images:   images,
		fonts:    fonts,
		byID:     make(map[string]*shape.Shape, len(shapes)),
	}
	child := make(map[string]bool)
	for _, s := range shapes {
		c.byID[s.ID()] = s
		for _, id := range s.ChildrenIDs() {
			child[id] = true
		}
	}
	for _, s := range shapes {
		for _, id := range s.ChildrenIDs() {
			if c.byID[id] == nil {
				return nil, fmt.Errorf("shape %q: unknown child %q", s.ID(), id)
			}
		}
		if !child[s.ID()] {
			c.roots = append(c.roots, s)
		}
	}
	return c, nil
}

// draw renders every root shape and its subtree in scene order.
func (c *composer) draw(canvas surface.Canvas) error {
	for _, s := range c.roots {
		if err := c.drawShape(canvas, s, 0); err != nil {
			return err
		}
	}
	return nil
}

func (c *composer) drawShape(canvas surface.Canvas, s *shape.Shape, depth int) error {
	if s.Hidden() {
		return nil
	}
	if depth > maxDepth {
		return fmt.Errorf("shape %q: tree deeper than %d, cycle in children?", s.ID(), maxDepth)
	}

	if c.layers != nil && (s.Opacity() < 1 || s.BlendMode() != shape.BlendNormal) {
		mode, ok := s.BlendMode().GG()
		if !ok {
			logger.Get().Warn("blend mode not supported, using normal", "shape", s.ID(), "blend", s.BlendMode())
		}
		c.layers.PushLayer(mode, s.Opacity())
		defer c.layers.PopLayer()
	} else if c.layers == nil && s.Opacity() < 1 {
		logger.Get().Debug("layer opacity ignored for vector output", "shape", s.ID())
	}

	if err := c.renderer.Render(s, canvas, c.images, c.fonts); err != nil {
		return err
	}
	if len(s.ChildrenIDs()) == 0 {
		return nil
	}

	canvas.Save()
	defer canvas.Restore()
	if s.Clip() {
		m := shape.PivotMatrix(s.Bounds(), s.Transform())
		canvas.Concat(m)
		canvas.ClipPath(shape.Footprint(s.Kind(), s.Bounds()))
		canvas.Concat(m.Invert())
	}
	for _, id := range s.ChildrenIDs() {
		if err := c.drawShape(canvas, c.byID[id], depth+1); err != nil {
			return err
		}
	}
	return nil
}
