package vector

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-shape/surface"
)

// Recorder captures surface.Canvas calls as commands. Use FinishRecording
// to obtain a Recording that can be replayed to backends.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height float64
	commands      []Command
	resources     *ResourcePool

	transform gg.Matrix
	stack     []gg.Matrix
}

var _ surface.Canvas = (*Recorder)(nil)

// NewRecorder creates a Recorder for an output of the given size, starting
// with the identity transform.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		commands:  make([]Command, 0, 32),
		resources: NewResourcePool(),
		transform: gg.Identity(),
	}
}

// Width returns the width of the recording.
func (r *Recorder) Width() float64 { return r.width }

// Height returns the height of the recording.
func (r *Recorder) Height() float64 { return r.height }

// FinishRecording returns the recorded commands. The Recorder should not be
// used afterwards.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:     r.width,
		height:    r.height,
		commands:  r.commands,
		resources: r.resources,
	}
}

// Save implements surface.Canvas.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.transform)
	r.commands = append(r.commands, SaveCommand{})
}

// Restore implements surface.Canvas.
func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.transform = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.commands = append(r.commands, RestoreCommand{})
}

// SaveCount implements surface.Canvas.
func (r *Recorder) SaveCount() int {
	return len(r.stack)
}

// Concat implements surface.Canvas.
func (r *Recorder) Concat(m gg.Matrix) {
	r.transform = r.transform.Multiply(m)
	r.commands = append(r.commands, SetTransformCommand{Matrix: r.transform})
}

// Transform implements surface.Canvas.
func (r *Recorder) Transform() gg.Matrix {
	return r.transform
}

// ClipPath implements surface.Canvas.
func (r *Recorder) ClipPath(p *surface.Path) {
	if p == nil {
		return
	}
	r.commands = append(r.commands, SetClipCommand{Path: r.resources.AddPath(p)})
}

// DrawRect implements surface.Canvas.
func (r *Recorder) DrawRect(rect surface.Rect, p surface.Paint) {
	path := surface.NewPath()
	path.Rectangle(rect)
	r.DrawPath(path, p)
}

// DrawOval implements surface.Canvas.
func (r *Recorder) DrawOval(rect surface.Rect, p surface.Paint) {
	path := surface.NewPath()
	path.Ellipse(rect)
	r.DrawPath(path, p)
}

// DrawPath implements surface.Canvas.
func (r *Recorder) DrawPath(path *surface.Path, p surface.Paint) {
	if path.IsEmpty() {
		return
	}
	r.commands = append(r.commands, FillPathCommand{
		Path:    r.resources.AddPath(path),
		Brush:   r.resources.AddBrush(brushOf(p)),
		Opacity: p.Opacity,
	})
}

// DrawImage implements surface.Canvas.
func (r *Recorder) DrawImage(img image.Image, dst surface.Rect, p surface.Paint) {
	if img == nil {
		return
	}
	r.commands = append(r.commands, DrawImageCommand{
		Image:   r.resources.AddImage(img),
		Dst:     dst,
		Opacity: p.Opacity,
	})
}

// DrawText implements surface.Canvas.
func (r *Recorder) DrawText(s string, x, y float64, face text.Face, p surface.Paint) {
	if s == "" || face == nil {
		return
	}
	r.commands = append(r.commands, DrawTextCommand{
		Text:    s,
		X:       x,
		Y:       y,
		Font:    r.resources.AddFont(face),
		Brush:   r.resources.AddBrush(brushOf(p)),
		Opacity: p.Opacity,
	})
}

func brushOf(p surface.Paint) surface.Brush {
	if p.Brush == nil {
		return surface.Solid(gg.Black)
	}
	return p.Brush
}

// Recording is an immutable list of recorded commands.
type Recording struct {
	width, height float64
	commands      []Command
	resources     *ResourcePool
}

// Width returns the width of the recording.
func (r *Recording) Width() float64 { return r.width }

// Height returns the height of the recording.
func (r *Recording) Height() float64 { return r.height }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// Playback replays the recording to backend, bracketed by Begin and End.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.width, r.height); err != nil {
		return err
	}
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			backend.Save()
		case RestoreCommand:
			backend.Restore()
		case SetTransformCommand:
			backend.SetTransform(c.Matrix)
		case SetClipCommand:
			backend.SetClip(r.resources.GetPath(c.Path))
		case FillPathCommand:
			backend.FillPath(r.resources.GetPath(c.Path), r.resources.GetBrush(c.Brush), c.Opacity)
		case DrawImageCommand:
			backend.DrawImage(r.resources.GetImage(c.Image), c.Dst, c.Opacity)
		case DrawTextCommand:
			backend.DrawText(c.Text, c.X, c.Y, r.resources.GetFont(c.Font), r.resources.GetBrush(c.Brush), c.Opacity)
		}
	}
	return backend.End()
}
