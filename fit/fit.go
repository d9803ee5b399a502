// Package fit places raster images inside a container.
//
// A Policy maps an image's natural size onto a container box. Draw applies a
// policy on a canvas, clipped to the container's footprint so the image never
// paints outside the shape that holds it.
package fit

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/surface"
)

// Size is a width and height in user units.
type Size struct {
	Width, Height float64
}

// SizeOf returns the pixel size of img.
func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// IsEmpty reports whether either side is zero, negative or NaN.
func (s Size) IsEmpty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// Policy decides where an image lands relative to its container.
type Policy uint8

const (
	// Cover scales uniformly until the container is filled, cropping the
	// overflowing axis. The image is centered.
	Cover Policy = iota

	// Contain scales uniformly until the image fits inside the container.
	// The image is centered.
	Contain

	// Stretch scales each axis independently to match the container.
	Stretch

	// Center keeps the natural size and centers the image.
	Center
)

var policyNames = [...]string{
	Cover:   "cover",
	Contain: "contain",
	Stretch: "stretch",
	Center:  "center",
}

// String returns the lowercase policy name.
func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", p)
}

// ParsePolicy returns the policy named s.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if name == s {
			return Policy(i), nil
		}
	}
	return Cover, fmt.Errorf("fit: unknown policy %q", s)
}

// Dest returns the rectangle an image of the given natural size occupies
// inside box. An empty natural size stretches to box.
func (p Policy) Dest(natural Size, box surface.Rect) surface.Rect {
	if natural.IsEmpty() || p == Stretch {
		return box
	}
	bw, bh := box.Width(), box.Height()
	var scale float64
	switch p {
	case Cover:
		scale = math.Max(bw/natural.Width, bh/natural.Height)
	case Contain:
		scale = math.Min(bw/natural.Width, bh/natural.Height)
	default:
		scale = 1
	}
	w, h := natural.Width*scale, natural.Height*scale
	c := box.Center()
	return surface.Rect{Left: c.X - w/2, Top: c.Y - h/2, Right: c.X + w/2, Bottom: c.Y + h/2}
}

// Draw paints img inside box according to p, clipped to footprint. A nil
// footprint clips to box. natural overrides the image's pixel size for the
// aspect ratio; pass the zero Size to use the pixels.
//
// The canvas state is restored before Draw returns.
func Draw(c surface.Canvas, img image.Image, natural Size, footprint *surface.Path, box surface.Rect, p Policy, paint surface.Paint) {
	if img == nil || box.IsEmpty() {
		return
	}
	if natural.IsEmpty() {
		natural = SizeOf(img)
	}
	if footprint == nil {
		footprint = surface.NewPath()
		footprint.Rectangle(box)
	}
	dst := p.Dest(natural, box)
	logger.Get().Debug("fit: draw image", "policy", p, "dst", dst)

	c.Save()
	defer c.Restore()
	c.ClipPath(footprint)
	c.DrawImage(img, dst, paint)
}
