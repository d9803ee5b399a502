// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/gogpu/gg"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule. This is the default.
	FillRuleNonZero FillRule = iota

	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns the SVG spelling of the rule.
func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

func (r FillRule) gg() gg.FillRule {
	if r == FillRuleEvenOdd {
		return gg.FillRuleEvenOdd
	}
	return gg.FillRuleNonZero
}

// Path is fill geometry together with the rule used to fill it.
//
// The geometry is stored as a gg.Path. Rule is exported because markup
// rendering needs to switch it; shape geometry always keeps the default.
type Path struct {
	path *gg.Path

	// Rule is the fill rule applied when the path is drawn or used as a clip.
	Rule FillRule
}

// NewPath creates an empty path with the non-zero fill rule.
func NewPath() *Path {
	return &Path{path: gg.NewPath()}
}

// FromGG wraps a copy of a gg.Path.
func FromGG(p *gg.Path) *Path {
	if p == nil {
		return NewPath()
	}
	return &Path{path: p.Clone()}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.path.MoveTo(x, y)
}

// LineTo adds a line from the current point to (x, y).
// Without a current point it behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.path.HasCurrentPoint() {
		p.path.MoveTo(x, y)
		return
	}
	p.path.LineTo(x, y)
}

// QuadTo adds a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.path.HasCurrentPoint() {
		p.path.MoveTo(cx, cy)
	}
	p.path.QuadraticTo(cx, cy, x, y)
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.path.HasCurrentPoint() {
		p.path.MoveTo(c1x, c1y)
	}
	p.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	if !p.path.HasCurrentPoint() {
		return
	}
	p.path.Close()
}

// CurrentPoint returns the end point of the last segment.
func (p *Path) CurrentPoint() gg.Point {
	return p.path.CurrentPoint()
}

// HasCurrentPoint reports whether the path has at least one element.
func (p *Path) HasCurrentPoint() bool {
	return p.path.HasCurrentPoint()
}

// Rectangle adds a closed rectangle subpath.
func (p *Path) Rectangle(r Rect) {
	p.path.Rectangle(r.Left, r.Top, r.Width(), r.Height())
}

// Ellipse adds a closed ellipse inscribed in r.
func (p *Path) Ellipse(r Rect) {
	c := r.Center()
	p.path.Ellipse(c.X, c.Y, r.Width()/2, r.Height()/2)
}

// Append adds all subpaths of o to p. The fill rule of p is unchanged.
func (p *Path) Append(o *Path) {
	if o == nil {
		return
	}
	p.path.Append(o.path)
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || p.path.NumVerbs() == 0
}

// Segment is one path command. Pts holds the control points followed by
// the end point; it is empty for Close.
type Segment struct {
	Verb gg.PathVerb
	Pts  []gg.Point
}

// Segments returns the commands of the path in order.
func (p *Path) Segments() []Segment {
	if p.IsEmpty() {
		return nil
	}
	out := make([]Segment, 0, p.path.NumVerbs())
	p.path.Iterate(func(v gg.PathVerb, c []float64) {
		s := Segment{Verb: v}
		for i := 0; i+1 < len(c); i += 2 {
			s.Pts = append(s.Pts, gg.Pt(c[i], c[i+1]))
		}
		out = append(out, s)
	})
	return out
}

// Clone returns a deep copy of the path, including its rule.
func (p *Path) Clone() *Path {
	return &Path{path: p.path.Clone(), Rule: p.Rule}
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m gg.Matrix) *Path {
	return &Path{path: p.path.Transform(m), Rule: p.Rule}
}

// Bounds returns the bounding box of all points, control points included.
// An empty path has zero bounds.
func (p *Path) Bounds() Rect {
	if p.IsEmpty() {
		return Rect{}
	}
	b := Rect{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
	add := func(pt gg.Point) {
		b.Left = math.Min(b.Left, pt.X)
		b.Top = math.Min(b.Top, pt.Y)
		b.Right = math.Max(b.Right, pt.X)
		b.Bottom = math.Max(b.Bottom, pt.Y)
	}
	c := p.path.Coords()
	for i := 0; i+1 < len(c); i += 2 {
		add(gg.Pt(c[i], c[i+1]))
	}
	return b
}

// replay feeds the path into a gg.Context. The context's current transform
// applies to every point.
func (p *Path) replay(dc *gg.Context) {
	dc.ClearPath()
	p.path.Iterate(func(v gg.PathVerb, c []float64) {
		switch v {
		case gg.MoveTo:
			dc.MoveTo(c[0], c[1])
		case gg.LineTo:
			dc.LineTo(c[0], c[1])
		case gg.QuadTo:
			dc.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			dc.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			dc.ClosePath()
		}
	})
}
