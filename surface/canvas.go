// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Canvas is the drawing target a shape renders onto.
//
// State (transform and clip) lives on a stack managed with Save and Restore.
// Every draw call is atomic and only affects the target's pixels (or
// recorded commands); none of them alter the state stack.
type Canvas interface {
	// Save pushes a copy of the current transform and clip.
	Save()

	// Restore pops the state pushed by the matching Save.
	// Restoring an empty stack is a no-op.
	Restore()

	// SaveCount returns the number of states currently saved.
	SaveCount() int

	// Concat post-multiplies the current transform by m, so m applies to
	// coordinates before the transforms already in effect.
	Concat(m gg.Matrix)

	// Transform returns the current transform.
	Transform() gg.Matrix

	// ClipPath intersects the current clip with the path, honoring its rule.
	ClipPath(p *Path)

	// DrawRect fills r.
	DrawRect(r Rect, p Paint)

	// DrawOval fills the ellipse inscribed in r.
	DrawOval(r Rect, p Paint)

	// DrawPath fills path using path.Rule.
	DrawPath(path *Path, p Paint)

	// DrawImage draws img stretched to dst. Only p.Opacity is used.
	DrawImage(img image.Image, dst Rect, p Paint)

	// DrawText draws s with its baseline origin at (x, y).
	DrawText(s string, x, y float64, face text.Face, p Paint)
}
