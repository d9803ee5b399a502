// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/gg"
)

// Brush describes what a fill paints with.
// This is a sealed interface: only types in this package implement it.
//
// Unlike gg.Brush, which samples colors in device space, a surface Brush is
// a definition in the user space of the draw call. Canvases translate it to
// whatever their output needs (sampled pixels, SVG paint servers).
type Brush interface {
	brushMarker()
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color gg.RGBA
}

func (SolidBrush) brushMarker() {}

// Solid creates a solid color brush.
func Solid(c gg.RGBA) SolidBrush {
	return SolidBrush{Color: c}
}

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float64 // 0..1
	Color  gg.RGBA
}

// LinearGradientBrush interpolates colors along the line Start → End.
type LinearGradientBrush struct {
	Start gg.Point
	End   gg.Point
	Stops []GradientStop
}

func (LinearGradientBrush) brushMarker() {}

// RadialGradientBrush interpolates colors from Center outwards to Radius.
type RadialGradientBrush struct {
	Center gg.Point
	Radius float64
	Stops  []GradientStop
}

func (RadialGradientBrush) brushMarker() {}

// Paint is the brush plus the alpha multiplier applied to everything it paints.
type Paint struct {
	Brush   Brush
	Opacity float64
}

// NewPaint returns a fully opaque paint using b.
func NewPaint(b Brush) Paint {
	return Paint{Brush: b, Opacity: 1}
}

// WithOpacity returns a copy of the paint with its opacity multiplied by a.
func (p Paint) WithOpacity(a float64) Paint {
	p.Opacity *= a
	return p
}

// brushOrBlack returns the paint's brush, defaulting to opaque black.
func (p Paint) brushOrBlack() Brush {
	if p.Brush == nil {
		return Solid(gg.Black)
	}
	return p.Brush
}

// sampler converts a brush into a gg.Brush that can be sampled in the
// brush's own coordinate space.
func sampler(b Brush) gg.Brush {
	switch v := b.(type) {
	case SolidBrush:
		return gg.Solid(v.Color)
	case LinearGradientBrush:
		g := gg.NewLinearGradientBrush(v.Start.X, v.Start.Y, v.End.X, v.End.Y)
		for _, s := range v.Stops {
			g.AddColorStop(s.Offset, s.Color)
		}
		return g
	case RadialGradientBrush:
		g := gg.NewRadialGradientBrush(v.Center.X, v.Center.Y, 0, v.Radius)
		for _, s := range v.Stops {
			g.AddColorStop(s.Offset, s.Color)
		}
		return g
	}
	return gg.Solid(gg.Black)
}
