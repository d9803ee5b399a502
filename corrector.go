package shape

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/markup"
	"github.com/gogpu/gg-shape/surface"
	"github.com/gogpu/gg-shape/vector"
)

// bufferMargin is added to each side length of the offscreen buffer so that
// geometry touching the right and bottom edges is not cut off.
const bufferMargin = 1

// correctedFill draws the fills of a path shape with the even-odd rule.
//
// Canvases do not take a fill rule per draw call, so the fills are drawn to
// an offscreen vector buffer covering the bounds, serialized to SVG, and the
// first <path> element gets fill-rule="evenodd" before the document is
// drawn onto c at the bounds origin.
//
// Only that first element is patched. With several fills the bottom-most
// one gets the hole, and fills drawn above it keep the rule of the path
// data, so an opaque upper fill covers the hole again. When the buffer holds
// only image fills there may be no path at all (the container fit drawer
// chose not to clip, or the bounds are empty) and the document is drawn
// unpatched.
func (r *Renderer) correctedFill(s *Shape, c surface.Canvas, images ImageStore, fonts FontResolver) error {
	b := s.bounds
	fail := func(stage Stage, err error) error {
		return &RenderError{ShapeID: s.id, Kind: s.kind, Stage: stage, Err: err}
	}

	// Init
	buf := newFillBuffer(b)

	// BufferedDraw
	drawn, geometry := 0, false
	for i := len(s.fills) - 1; i >= 0; i-- {
		switch r.drawFill(buf, s.fills[i], s.kind, b, images) {
		case fillGeometry:
			geometry = true
			drawn++
		case fillImage:
			drawn++
		}
	}
	if drawn == 0 {
		logger.Get().Debug("shape: nothing to correct", "shape", s.id)
		return nil
	}

	// Serialized
	data, err := buf.End()
	if err != nil {
		return fail(StageSerialized, fmt.Errorf("%w: %w", ErrMarkupParse, err))
	}
	doc, err := markup.Parse(data)
	if err != nil {
		return fail(StageSerialized, fmt.Errorf("%w: %w", ErrMarkupParse, err))
	}

	// Patched
	if geometry {
		if err := patchFillRule(doc); err != nil {
			return fail(StagePatched, err)
		}
	} else {
		logger.Get().Debug("shape: image fills only, fill rule left as is", "shape", s.id)
	}
	dom, err := markup.Compile(doc, fonts)
	if err != nil {
		return fail(StagePatched, fmt.Errorf("%w: %w", ErrMarkupParse, err))
	}

	// Composited
	c.Save()
	defer c.Restore()
	c.Concat(gg.Translate(b.Left, b.Top))
	if err := dom.Render(c); err != nil {
		return fail(StageComposited, err)
	}
	return nil
}

// patchFillRule sets fill-rule="evenodd" on the first <path> of doc.
func patchFillRule(doc *markup.Document) error {
	el := doc.Find("path")
	if el == nil {
		return ErrMissingPathElement
	}
	el.SetAttr("fill-rule", "evenodd")
	return nil
}

// newFillBuffer returns a buffer one unit larger than bounds on each axis
// whose origin is the top-left corner of bounds.
func newFillBuffer(bounds surface.Rect) *vector.Buffer {
	buf := vector.NewBuffer(bounds.Width()+bufferMargin, bounds.Height()+bufferMargin)
	buf.Concat(gg.Translate(-bounds.Left, -bounds.Top))
	return buf
}
