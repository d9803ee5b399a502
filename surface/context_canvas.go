// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
)

// maxImageSide bounds the size of the intermediate image DrawImage scales to.
const maxImageSide = 4096

// ContextCanvas is a Canvas that rasterizes onto a *gg.Context.
//
// Unclipped solid fills go straight to gg, which honors the path's fill rule.
// Everything else (gradients, images, partial opacity under a clip, clipped
// fills) is rendered as a coverage mask of the geometry, shaded per pixel and
// composited over the context with DrawImageEx.
//
// ContextCanvas is not safe for concurrent use.
type ContextCanvas struct {
	dc *gg.Context

	// clip is the current clip coverage in device pixels; nil means unclipped.
	clip  *image.Alpha
	clips []*image.Alpha
}

var _ Canvas = (*ContextCanvas)(nil)

// NewContextCanvas wraps dc. The canvas starts from dc's current transform.
func NewContextCanvas(dc *gg.Context) *ContextCanvas {
	return &ContextCanvas{dc: dc}
}

// Context returns the underlying gg context.
func (c *ContextCanvas) Context() *gg.Context {
	return c.dc
}

// Save implements Canvas.
func (c *ContextCanvas) Save() {
	c.dc.Push()
	c.clips = append(c.clips, c.clip)
}

// Restore implements Canvas.
func (c *ContextCanvas) Restore() {
	if len(c.clips) == 0 {
		return
	}
	c.dc.Pop()
	c.clip = c.clips[len(c.clips)-1]
	c.clips = c.clips[:len(c.clips)-1]
}

// SaveCount implements Canvas.
func (c *ContextCanvas) SaveCount() int {
	return len(c.clips)
}

// Concat implements Canvas.
func (c *ContextCanvas) Concat(m gg.Matrix) {
	c.dc.Transform(m)
}

// Transform implements Canvas.
func (c *ContextCanvas) Transform() gg.Matrix {
	return c.dc.GetTransform()
}

// ClipPath implements Canvas.
func (c *ContextCanvas) ClipPath(p *Path) {
	cov := c.coverage(p)
	if c.clip == nil {
		c.clip = cov
		return
	}
	// The previous mask may be referenced by a saved state; never modify it.
	out := image.NewAlpha(cov.Rect)
	for i := range out.Pix {
		out.Pix[i] = uint8(uint16(cov.Pix[i]) * uint16(c.clip.Pix[i]) / 255)
	}
	c.clip = out
}

// DrawRect implements Canvas.
func (c *ContextCanvas) DrawRect(r Rect, p Paint) {
	path := NewPath()
	path.Rectangle(r)
	c.DrawPath(path, p)
}

// DrawOval implements Canvas.
func (c *ContextCanvas) DrawOval(r Rect, p Paint) {
	path := NewPath()
	path.Ellipse(r)
	c.DrawPath(path, p)
}

// DrawPath implements Canvas.
func (c *ContextCanvas) DrawPath(path *Path, p Paint) {
	if path.IsEmpty() || p.Opacity <= 0 {
		return
	}
	brush := p.brushOrBlack()
	if solid, ok := brush.(SolidBrush); ok && c.clip == nil {
		col := solid.Color
		c.dc.SetRGBA(col.R, col.G, col.B, col.A*math.Min(p.Opacity, 1))
		c.dc.SetFillRule(path.Rule.gg())
		path.replay(c.dc)
		_ = c.dc.Fill()
		return
	}
	s := sampler(brush)
	c.composite(c.coverage(path), s.ColorAt, p.Opacity)
}

// DrawImage implements Canvas.
func (c *ContextCanvas) DrawImage(img image.Image, dst Rect, p Paint) {
	if img == nil || img.Bounds().Empty() || dst.IsEmpty() || p.Opacity <= 0 {
		return
	}
	m := c.dc.GetTransform()
	w := clampSide(math.Hypot(m.A, m.D) * dst.Width())
	h := clampSide(math.Hypot(m.B, m.E) * dst.Height())

	scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	area := NewPath()
	area.Rectangle(dst)
	sx := float64(w) / dst.Width()
	sy := float64(h) / dst.Height()
	c.composite(c.coverage(area), func(x, y float64) gg.RGBA {
		ix := clampInt(int((x-dst.Left)*sx), 0, w-1)
		iy := clampInt(int((y-dst.Top)*sy), 0, h-1)
		return nrgbaToGG(scaled.NRGBAAt(ix, iy))
	}, p.Opacity)
}

// DrawText implements Canvas. Glyphs are filled as outlines so the current
// transform applies to them like to any other geometry.
func (c *ContextCanvas) DrawText(s string, x, y float64, face text.Face, p Paint) {
	if face == nil || s == "" {
		return
	}
	c.DrawPath(GlyphPath(s, x, y, face), p)
}

// coverage rasterizes path under the current transform into an alpha mask
// the size of the context.
func (c *ContextCanvas) coverage(path *Path) *image.Alpha {
	w, h := c.dc.Width(), c.dc.Height()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if path.IsEmpty() {
		return mask
	}

	scratch := gg.NewContext(w, h)
	defer func() { _ = scratch.Close() }()
	scratch.SetTransform(c.dc.GetTransform())
	scratch.SetRGBA(1, 1, 1, 1)
	scratch.SetFillRule(path.Rule.gg())
	path.replay(scratch)
	_ = scratch.Fill()

	xdraw.Draw(mask, mask.Bounds(), scratch.Image(), image.Point{}, xdraw.Src)
	return mask
}

// composite shades every covered pixel and draws the result over the context.
// shade receives user-space coordinates of the pixel center.
func (c *ContextCanvas) composite(cov *image.Alpha, shade func(x, y float64) gg.RGBA, opacity float64) {
	area := coveredBounds(cov)
	if c.clip != nil {
		area = area.Intersect(coveredBounds(c.clip))
	}
	if area.Empty() {
		return
	}
	opacity = math.Min(opacity, 1)
	inv := c.dc.GetTransform().Invert()

	overlay := image.NewNRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			a := float64(cov.AlphaAt(x, y).A) / 255
			if c.clip != nil {
				a *= float64(c.clip.AlphaAt(x, y).A) / 255
			}
			if a == 0 {
				continue
			}
			u := inv.TransformPoint(gg.Pt(float64(x)+0.5, float64(y)+0.5))
			col := shade(u.X, u.Y)
			overlay.SetNRGBA(x-area.Min.X, y-area.Min.Y, color.NRGBA{
				R: unit8(col.R),
				G: unit8(col.G),
				B: unit8(col.B),
				A: unit8(col.A * a * opacity),
			})
		}
	}

	c.dc.Push()
	c.dc.Identity()
	c.dc.DrawImageEx(gg.ImageBufFromImage(overlay), gg.DrawImageOptions{
		X:             float64(area.Min.X),
		Y:             float64(area.Min.Y),
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	c.dc.Pop()
}

// coveredBounds returns the smallest rectangle holding every non-zero pixel.
func coveredBounds(m *image.Alpha) image.Rectangle {
	b := m.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[(y-b.Min.Y)*m.Stride : (y-b.Min.Y)*m.Stride+b.Dx()]
		for i, a := range row {
			if a == 0 {
				continue
			}
			x := b.Min.X + i
			minX = min(minX, x)
			maxX = max(maxX, x+1)
			minY = min(minY, y)
			maxY = max(maxY, y+1)
		}
	}
	if minX >= maxX || minY >= maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

func nrgbaToGG(c color.NRGBA) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

func unit8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampSide(v float64) int {
	return clampInt(int(math.Ceil(v)), 1, maxImageSide)
}
