package shape

import (
	"math"
	"slices"

	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/surface"
)

// Fill is one entry of a shape's fill list.
// This is a sealed interface: only SolidFill, GradientFill and ImageFill
// implement it.
type Fill interface {
	// Paint returns the paint the fill uses inside bounds. It has no side
	// effects and always returns a usable paint.
	Paint(bounds surface.Rect) surface.Paint

	fillMarker()
}

// SolidFill paints a single color.
//
// Opacity multiplies the color's alpha and is not defaulted: a literal
// SolidFill{Color: c} has opacity 0 and paints nothing. Use Solid for an
// opaque fill.
type SolidFill struct {
	Color   gg.RGBA
	Opacity float64
}

// Solid returns an opaque solid fill.
func Solid(c gg.RGBA) SolidFill {
	return SolidFill{Color: c, Opacity: 1}
}

func (SolidFill) fillMarker() {}

// Paint implements Fill.
func (f SolidFill) Paint(surface.Rect) surface.Paint {
	return surface.Paint{Brush: surface.Solid(f.Color), Opacity: clamp01(f.Opacity)}
}

// GradientType selects the gradient geometry.
type GradientType uint8

const (
	// Linear interpolates along the line from Start to End.
	Linear GradientType = iota

	// Radial interpolates outwards from Start; End lies on the outer circle.
	Radial
)

// String returns "linear" or "radial".
func (t GradientType) String() string {
	if t == Radial {
		return "radial"
	}
	return "linear"
}

// GradientFill paints a gradient. Start and End are fractions of the shape
// bounds: (0, 0) is the top-left corner and (1, 1) the bottom-right.
//
// For radial gradients Width is the ratio of the minor axis to the
// Start-End radius. The ellipse is drawn as a circle of equal area; zero
// means a circle. Opacity has no default; zero paints nothing.
type GradientFill struct {
	Type    GradientType
	Start   gg.Point
	End     gg.Point
	Width   float64
	Stops   []surface.GradientStop
	Opacity float64
}

func (GradientFill) fillMarker() {}

// Paint implements Fill. Stops are sorted by offset. Without stops the paint
// is transparent; a single stop paints its color.
func (f GradientFill) Paint(bounds surface.Rect) surface.Paint {
	paint := surface.Paint{Opacity: clamp01(f.Opacity)}
	switch len(f.Stops) {
	case 0:
		paint.Brush = surface.Solid(gg.Transparent)
		return paint
	case 1:
		paint.Brush = surface.Solid(f.Stops[0].Color)
		return paint
	}

	stops := slices.Clone(f.Stops)
	slices.SortStableFunc(stops, func(a, b surface.GradientStop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})
	start, end := relative(bounds, f.Start), relative(bounds, f.End)

	if f.Type == Radial {
		r := math.Hypot(end.X-start.X, end.Y-start.Y)
		if f.Width > 0 {
			r *= math.Sqrt(f.Width)
		}
		if r <= 0 {
			paint.Brush = surface.Solid(stops[len(stops)-1].Color)
			return paint
		}
		paint.Brush = surface.RadialGradientBrush{Center: start, Radius: r, Stops: stops}
		return paint
	}
	paint.Brush = surface.LinearGradientBrush{Start: start, End: end, Stops: stops}
	return paint
}

// relative maps a point given in fractions of bounds to local coordinates.
func relative(bounds surface.Rect, p gg.Point) gg.Point {
	return gg.Pt(bounds.Left+p.X*bounds.Width(), bounds.Top+p.Y*bounds.Height())
}

// ImageFill paints a raster image looked up by ID. Width and Height are the
// natural size of the image and drive its aspect ratio; zero uses the
// decoded pixel size.
//
// As with every fill, Opacity must be set: the zero value is transparent.
type ImageFill struct {
	ID      string
	Width   float64
	Height  float64
	Opacity float64
}

func (ImageFill) fillMarker() {}

// Paint implements Fill. Only the opacity is meaningful for images.
func (f ImageFill) Paint(surface.Rect) surface.Paint {
	return surface.Paint{Opacity: clamp01(f.Opacity)}
}
