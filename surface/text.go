// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/gg/text"
)

// GlyphPath returns the outlines of s laid out with face, with the baseline
// origin at (x, y). Glyphs without outlines (spaces) contribute nothing.
func GlyphPath(s string, x, y float64, face text.Face) *Path {
	out := NewPath()
	if face == nil || s == "" {
		return out
	}
	src := face.Source()
	if src == nil {
		return out
	}
	parsed := src.Parsed()
	ex := text.NewOutlineExtractor()
	for g := range face.Glyphs(s) {
		outline, err := ex.ExtractOutline(parsed, g.GID, face.Size())
		if err != nil || outline == nil {
			continue
		}
		ox, oy := x+g.X, y+g.Y
		for _, seg := range outline.Segments {
			p := seg.Points
			switch seg.Op {
			case text.OutlineOpMoveTo:
				out.Close()
				out.MoveTo(ox+float64(p[0].X), oy+float64(p[0].Y))
			case text.OutlineOpLineTo:
				out.LineTo(ox+float64(p[0].X), oy+float64(p[0].Y))
			case text.OutlineOpQuadTo:
				out.QuadTo(ox+float64(p[0].X), oy+float64(p[0].Y),
					ox+float64(p[1].X), oy+float64(p[1].Y))
			case text.OutlineOpCubicTo:
				out.CubicTo(ox+float64(p[0].X), oy+float64(p[0].Y),
					ox+float64(p[1].X), oy+float64(p[1].Y),
					ox+float64(p[2].X), oy+float64(p[2].Y))
			}
		}
		out.Close()
	}
	return out
}
