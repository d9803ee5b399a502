package vector

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-shape/surface"
)

// Backend receives replayed commands and translates them to its output
// format (markup elements, pixels).
//
// Each backend must:
//  1. Handle all Backend methods, even if some are no-ops
//  2. Manage its own state stack for Save/Restore
//  3. Apply the most recent SetTransform to every geometry argument
type Backend interface {
	// Begin initializes the backend for output of the given size.
	Begin(width, height float64) error
	// End finalizes the output.
	End() error

	// Save pushes the transform and clip.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()
	// SetTransform replaces the current transform.
	SetTransform(m gg.Matrix)
	// SetClip intersects the clip with path, honoring its fill rule.
	SetClip(path *surface.Path)

	// FillPath fills path with brush using path.Rule.
	FillPath(path *surface.Path, brush surface.Brush, opacity float64)
	// DrawImage draws img stretched to dst.
	DrawImage(img image.Image, dst surface.Rect, opacity float64)
	// DrawText draws s with its baseline origin at (x, y).
	DrawText(s string, x, y float64, face text.Face, brush surface.Brush, opacity float64)
}

// WriterBackend is a Backend whose output can be written to an io.Writer
// after End.
type WriterBackend interface {
	Backend
	WriteTo(w io.Writer) (int64, error)
}
