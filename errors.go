package shape

import (
	"errors"
	"fmt"
)

// Sentinel errors for the shape package.
var (
	// ErrMarkupParse is returned when markup produced or supplied for a
	// shape cannot be serialized or parsed.
	ErrMarkupParse = errors.New("shape: markup parse failed")

	// ErrMissingPathElement is returned when a geometry fill was drawn into
	// the fill buffer of a path shape but the serialized buffer contains no
	// <path> element to correct. Buffers holding only image fills are drawn
	// without correction instead.
	ErrMissingPathElement = errors.New("shape: no path element in buffer")

	// ErrNilShape is returned when Render is called with a nil shape.
	ErrNilShape = errors.New("shape: nil shape")
)

// Stage identifies where in the pipeline a render failed.
type Stage uint8

// Stages of the path fill-rule correction, in order, plus raw markup.
const (
	StageInit Stage = iota
	StageBufferedDraw
	StageSerialized
	StagePatched
	StageComposited
	StageRawMarkup
)

var stageNames = [...]string{
	StageInit:         "init",
	StageBufferedDraw: "buffered-draw",
	StageSerialized:   "serialized",
	StagePatched:      "patched",
	StageComposited:   "composited",
	StageRawMarkup:    "raw-markup",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// RenderError reports a failed render of one shape.
type RenderError struct {
	ShapeID string
	Kind    Kind
	Stage   Stage
	Err     error
}

func (e *RenderError) Error() string {
	kind := "<nil>"
	if e.Kind != nil {
		kind = e.Kind.String()
	}
	return fmt.Sprintf("shape: render %q (%s) at %s: %v", e.ShapeID, kind, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
