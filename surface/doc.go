// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the drawing target that shapes render onto.
//
// Canvas is a Skia-style drawing target: a save/restore stack carrying the
// current transform and clip, plus a small set of fill primitives. Two
// implementations exist in this module:
//
//   - ContextCanvas rasterizes onto a *gg.Context
//   - vector.Buffer records the calls and serializes them as SVG
//
// # Fill rules
//
// The fill rule is a property of the geometry, not of the paint. A Path
// starts out with FillRuleNonZero and the direct drawing calls have no way to
// override it. Only rendered markup (an SVG document carrying a fill-rule
// attribute) produces even-odd paths.
//
// # Usage
//
//	dc := gg.NewContext(256, 256)
//	c := surface.NewContextCanvas(dc)
//
//	c.Save()
//	c.Concat(gg.Translate(10, 10))
//	c.DrawOval(surface.XYWH(0, 0, 100, 50), surface.NewPaint(surface.Solid(gg.Red)))
//	c.Restore()
//
//	_ = dc.SavePNG("oval.png")
//
// # References
//
//   - Skia: https://skia.org/docs/user/api/skcanvas_overview/
package surface
