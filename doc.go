// Package shape renders individual shapes onto a drawing surface.
//
// # Overview
//
// A Shape is a kind (rectangle, ellipse, path or raw SVG markup), its bounds
// in local space, a local transform and an ordered list of fills. Render
// draws the fills of one shape onto a [surface.Canvas]; placing shapes in a
// scene and compositing layers is left to the caller, which reads opacity,
// blend mode and clipping through [Renderable].
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gg"
//	    shape "github.com/gogpu/gg-shape"
//	    "github.com/gogpu/gg-shape/surface"
//	)
//
//	dc := gg.NewContext(256, 256)
//	s := shape.New("box", shape.Rect{}, surface.XYWH(64, 64, 128, 128),
//	    shape.WithTransform(gg.Rotate(math.Pi/8)),
//	    shape.WithFills(shape.Solid(gg.Red)),
//	)
//	if err := shape.Render(s, surface.NewContextCanvas(dc), nil, nil); err != nil {
//	    log.Fatal(err)
//	}
//	dc.SavePNG("box.png")
//
// # Fill order
//
// Fills[0] is the top-most fill: fills are painted from the end of the list
// to the start.
//
// # Transforms
//
// The shape transform is applied around the center of the bounds, see
// [PivotMatrix].
//
// # Path fill rule
//
// Path shapes are filled with the even-odd rule regardless of the rule of
// their data. The fills are drawn to an offscreen [vector.Buffer] spanning
// the bounds plus one unit, serialized to SVG, patched and drawn back. Rect
// and Circle shapes draw directly.
//
// # Images
//
// Image fills are looked up in an [ImageStore] by ID and placed with a
// [ContainerFitDrawer], by default [fit.Cover] clipped to the shape. Images
// not in the store yet are skipped without error.
//
// # Errors
//
// Failures are returned as [*RenderError], wrapping [ErrMarkupParse] or
// [ErrMissingPathElement]:
//
//	var re *shape.RenderError
//	if errors.As(err, &re) && errors.Is(err, shape.ErrMarkupParse) {
//	    log.Printf("shape %s: bad markup at %s", re.ShapeID, re.Stage)
//	}
package shape
