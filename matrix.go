package shape

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/surface"
)

// PivotMatrix returns m applied around the center of bounds:
//
//	translate(center) · m · translate(-center)
//
// Rotations and scales therefore keep the center of the bounds in place.
// Degenerate bounds still have a center.
func PivotMatrix(bounds surface.Rect, m gg.Matrix) gg.Matrix {
	c := bounds.Center()
	return gg.Translate(c.X, c.Y).Multiply(m).Multiply(gg.Translate(-c.X, -c.Y))
}
