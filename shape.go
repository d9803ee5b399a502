package shape

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/surface"
)

// Kind is the geometric variant of a shape.
// This is a sealed interface: only types in this package implement it.
type Kind interface {
	String() string
	kindMarker()
}

// Rect is a rectangle covering the shape bounds.
type Rect struct{}

// Circle is the ellipse inscribed in the shape bounds.
type Circle struct{}

// Path is arbitrary geometry in the same local space as the shape bounds.
type Path struct {
	Data *surface.Path
}

// RawMarkup is an SVG document drawn as is, with its origin at the local
// origin of the shape.
type RawMarkup struct {
	Content string
}

func (Rect) kindMarker() {}
func (Circle) kindMarker() {}
func (Path) kindMarker() {}
func (RawMarkup) kindMarker() {}

func (Rect) String() string { return "rect" }
func (Circle) String() string { return "circle" }
func (Path) String() string { return "path" }
func (RawMarkup) String() string { return "raw-markup" }

// Renderable is the read-only view a compositor needs to place a shape in a
// scene: whether to draw it, how to blend it and which children it clips.
type Renderable interface {
	ID() string
	Bounds() surface.Rect
	BlendMode() BlendMode
	Opacity() float64
	Hidden() bool
	Clip() bool
	ChildrenIDs() []string
}

// Shape describes one drawable element.
//
// A Shape is immutable after New. The slices returned by Fills and
// ChildrenIDs must not be modified.
type Shape struct {
	id        string
	kind      Kind
	bounds    surface.Rect
	transform gg.Matrix
	fills     []Fill
	opacity   float64
	blend     BlendMode
	hidden    bool
	clip      bool
	children  []string
}

var _ Renderable = (*Shape)(nil)

// ShapeOption configures a Shape during creation.
type ShapeOption func(*Shape)

// New creates a shape with an identity transform, full opacity, normal
// blending and no fills.
func New(id string, kind Kind, bounds surface.Rect, opts ...ShapeOption) *Shape {
	s := &Shape{
		id:        id,
		kind:      kind,
		bounds:    bounds,
		transform: gg.Identity(),
		opacity:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTransform sets the local transform. It is applied around the center
// of the bounds, see PivotMatrix.
func WithTransform(m gg.Matrix) ShapeOption {
	return func(s *Shape) {
		s.transform = m
	}
}

// WithFills sets the fill list. Index 0 is drawn last, on top of the others.
func WithFills(fills ...Fill) ShapeOption {
	return func(s *Shape) {
		s.fills = append([]Fill(nil), fills...)
	}
}

// WithOpacity sets the layer opacity, clamped to [0, 1].
func WithOpacity(a float64) ShapeOption {
	return func(s *Shape) {
		s.opacity = clamp01(a)
	}
}

// WithBlendMode sets how the shape's layer blends with what is below it.
func WithBlendMode(m BlendMode) ShapeOption {
	return func(s *Shape) {
		s.blend = m
	}
}

// WithHidden marks the shape as hidden.
func WithHidden(hidden bool) ShapeOption {
	return func(s *Shape) {
		s.hidden = hidden
	}
}

// WithClipContent makes the shape clip its children to its bounds.
func WithClipContent(clip bool) ShapeOption {
	return func(s *Shape) {
		s.clip = clip
	}
}

// WithChildren sets the ordered child IDs.
func WithChildren(ids ...string) ShapeOption {
	return func(s *Shape) {
		s.children = append([]string(nil), ids...)
	}
}

func (s *Shape) ID() string { return s.id }
func (s *Shape) Kind() Kind { return s.kind }
func (s *Shape) Bounds() surface.Rect { return s.bounds }
func (s *Shape) Transform() gg.Matrix { return s.transform }
func (s *Shape) Fills() []Fill { return s.fills }
func (s *Shape) Opacity() float64 { return s.opacity }
func (s *Shape) BlendMode() BlendMode { return s.blend }
func (s *Shape) Hidden() bool { return s.hidden }
func (s *Shape) Clip() bool { return s.clip }
func (s *Shape) ChildrenIDs() []string { return s.children }

// Footprint returns the area a kind covers within bounds. Raw markup covers
// its bounds.
func Footprint(kind Kind, bounds surface.Rect) *surface.Path {
	p := surface.NewPath()
	switch k := kind.(type) {
	case Circle:
		p.Ellipse(bounds)
	case Path:
		if !k.Data.IsEmpty() {
			return k.Data.Clone()
		}
		p.Rectangle(bounds)
	default:
		p.Rectangle(bounds)
	}
	return p
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || v != v:
		return 0
	case v > 1:
		return 1
	}
	return v
}
