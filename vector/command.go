package vector

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/surface"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdSave         CommandType = iota // Save current state
	CmdRestore                         // Restore previous state
	CmdSetTransform                    // Set transformation matrix
	CmdSetClip                         // Intersect clipping region
	CmdFillPath                        // Fill a path
	CmdDrawImage                       // Draw an image
	CmdDrawText                        // Draw text
)

var commandTypeNames = [...]string{
	CmdSave:         "Save",
	CmdRestore:      "Restore",
	CmdSetTransform: "SetTransform",
	CmdSetClip:      "SetClip",
	CmdFillPath:     "FillPath",
	CmdDrawImage:    "DrawImage",
	CmdDrawText:     "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	Type() CommandType
}

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// BrushRef is a reference to a brush in the resource pool.
type BrushRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// FontRef is a reference to a font face in the resource pool.
type FontRef uint32

// SaveCommand saves the current state.
type SaveCommand struct{}

func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the state saved by the matching SaveCommand.
type RestoreCommand struct{}

func (RestoreCommand) Type() CommandType { return CmdRestore }

// SetTransformCommand replaces the current transform. Recorders emit the
// absolute matrix so backends never compose transforms themselves.
type SetTransformCommand struct {
	Matrix gg.Matrix
}

func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

// SetClipCommand intersects the clip with a path under the current transform.
type SetClipCommand struct {
	Path PathRef
}

func (SetClipCommand) Type() CommandType { return CmdSetClip }

// FillPathCommand fills a path using the path's own fill rule.
type FillPathCommand struct {
	Path    PathRef
	Brush   BrushRef
	Opacity float64
}

func (FillPathCommand) Type() CommandType { return CmdFillPath }

// DrawImageCommand draws an image stretched to Dst.
type DrawImageCommand struct {
	Image   ImageRef
	Dst     surface.Rect
	Opacity float64
}

func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// DrawTextCommand draws a string with its baseline origin at (X, Y).
type DrawTextCommand struct {
	Text    string
	X, Y    float64
	Font    FontRef
	Brush   BrushRef
	Opacity float64
}

func (DrawTextCommand) Type() CommandType { return CmdDrawText }
