// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle stored as edges.
// Left <= Right and Top <= Bottom for a well-formed rectangle; zero width or
// height is allowed and describes a degenerate (empty) rectangle.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// XYWH creates a rectangle from its origin and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns Right - Left.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns Bottom - Top.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Center returns the midpoint of the rectangle.
// It is well defined for degenerate rectangles.
func (r Rect) Center() gg.Point {
	return gg.Pt((r.Left+r.Right)/2, (r.Top+r.Bottom)/2)
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Right > r.Left && r.Bottom > r.Top)
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Outset grows the rectangle by d on every side. A negative d shrinks it.
func (r Rect) Outset(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Transform returns the bounding box of the rectangle after applying m.
func (r Rect) Transform(m gg.Matrix) Rect {
	corners := [4]gg.Point{
		m.TransformPoint(gg.Pt(r.Left, r.Top)),
		m.TransformPoint(gg.Pt(r.Right, r.Top)),
		m.TransformPoint(gg.Pt(r.Right, r.Bottom)),
		m.TransformPoint(gg.Pt(r.Left, r.Bottom)),
	}
	out := Rect{Left: corners[0].X, Top: corners[0].Y, Right: corners[0].X, Bottom: corners[0].Y}
	for _, p := range corners[1:] {
		out.Left = math.Min(out.Left, p.X)
		out.Top = math.Min(out.Top, p.Y)
		out.Right = math.Max(out.Right, p.X)
		out.Bottom = math.Max(out.Bottom, p.Y)
	}
	return out
}
