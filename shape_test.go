package shape_test

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	shape "github.com/gogpu/gg-shape"
	"github.com/gogpu/gg-shape/surface"
)

func approxPoint(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestNewDefaults(t *testing.T) {
	s := shape.New("a", shape.Rect{}, surface.XYWH(1, 2, 3, 4))
	var r shape.Renderable = s
	if r.ID() != "a" || r.Bounds() != surface.XYWH(1, 2, 3, 4) {
		t.Errorf("ID, Bounds = %q, %+v", r.ID(), r.Bounds())
	}
	if r.Opacity() != 1 || r.BlendMode() != shape.BlendNormal || r.Hidden() || r.Clip() {
		t.Errorf("defaults = opacity %v, blend %v, hidden %v, clip %v", r.Opacity(), r.BlendMode(), r.Hidden(), r.Clip())
	}
	if !s.Transform().IsIdentity() {
		t.Errorf("Transform() = %+v, want identity", s.Transform())
	}
	if len(s.Fills()) != 0 || len(r.ChildrenIDs()) != 0 {
		t.Errorf("Fills, ChildrenIDs = %v, %v, want empty", s.Fills(), r.ChildrenIDs())
	}
}

func TestNewOptions(t *testing.T) {
	fills := []shape.Fill{shape.Solid(gg.Red)}
	children := []string{"b", "c"}
	s := shape.New("a", shape.Circle{}, surface.XYWH(0, 0, 1, 1),
		shape.WithTransform(gg.Translate(1, 2)),
		shape.WithFills(fills...),
		shape.WithOpacity(1.5),
		shape.WithBlendMode(shape.BlendScreen),
		shape.WithHidden(true),
		shape.WithClipContent(true),
		shape.WithChildren(children...),
	)
	fills[0] = shape.Solid(gg.Black)
	children[0] = "z"

	if s.Transform() != gg.Translate(1, 2) {
		t.Errorf("Transform() = %+v", s.Transform())
	}
	if diff := cmp.Diff([]shape.Fill{shape.Solid(gg.Red)}, s.Fills()); diff != "" {
		t.Errorf("Fills mismatch (-want +got):\n%s", diff)
	}
	if s.Opacity() != 1 {
		t.Errorf("Opacity() = %v, want clamped 1", s.Opacity())
	}
	if s.BlendMode() != shape.BlendScreen || !s.Hidden() || !s.Clip() {
		t.Errorf("blend, hidden, clip = %v, %v, %v", s.BlendMode(), s.Hidden(), s.Clip())
	}
	if diff := cmp.Diff([]string{"b", "c"}, s.ChildrenIDs()); diff != "" {
		t.Errorf("ChildrenIDs mismatch (-want +got):\n%s", diff)
	}
	if _, ok := s.Kind().(shape.Circle); !ok {
		t.Errorf("Kind() = %T, want Circle", s.Kind())
	}
}

func TestPivotMatrix(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		got := shape.PivotMatrix(surface.XYWH(0, 0, 10, 10), gg.Identity())
		if !got.IsIdentity() {
			t.Errorf("PivotMatrix = %+v, want identity", got)
		}
	})

	tests := []struct {
		name   string
		bounds surface.Rect
		m      gg.Matrix
		in     gg.Point
		want   gg.Point
	}{
		{"rotate keeps center", surface.XYWH(0, 0, 10, 10), gg.Rotate(math.Pi / 2), gg.Pt(5, 5), gg.Pt(5, 5)},
		{"rotate corner", surface.XYWH(0, 0, 10, 10), gg.Rotate(math.Pi / 2), gg.Pt(0, 0), gg.Pt(10, 0)},
		{"scale", surface.XYWH(10, 10, 10, 10), gg.Scale(2, 2), gg.Pt(10, 10), gg.Pt(5, 5)},
		{"translate", surface.XYWH(10, 10, 10, 10), gg.Translate(3, 4), gg.Pt(0, 0), gg.Pt(3, 4)},
		{"degenerate", surface.XYWH(4, 4, 0, 0), gg.Scale(3, 3), gg.Pt(4, 4), gg.Pt(4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shape.PivotMatrix(tt.bounds, tt.m).TransformPoint(tt.in)
			if !approxPoint(got, tt.want) {
				t.Errorf("PivotMatrix().TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSolidFillPaint(t *testing.T) {
	tests := []struct {
		fill shape.SolidFill
		want surface.Paint
	}{
		{shape.Solid(gg.Red), surface.Paint{Brush: surface.Solid(gg.Red), Opacity: 1}},
		{shape.SolidFill{Color: gg.Red, Opacity: 0.25}, surface.Paint{Brush: surface.Solid(gg.Red), Opacity: 0.25}},
		{shape.SolidFill{Color: gg.Red, Opacity: -1}, surface.Paint{Brush: surface.Solid(gg.Red), Opacity: 0}},
		{shape.SolidFill{Color: gg.Red, Opacity: 3}, surface.Paint{Brush: surface.Solid(gg.Red), Opacity: 1}},
		{shape.SolidFill{Color: gg.Red}, surface.Paint{Brush: surface.Solid(gg.Red), Opacity: 0}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.fill.Paint(surface.XYWH(0, 0, 1, 1))); diff != "" {
			t.Errorf("Paint(%+v) mismatch (-want +got):\n%s", tt.fill, diff)
		}
	}
}

func TestGradientFillPaint(t *testing.T) {
	bounds := surface.XYWH(10, 20, 100, 50)
	stops := []surface.GradientStop{{Offset: 1, Color: gg.Red}, {Offset: 0, Color: gg.Black}}
	sorted := []surface.GradientStop{{Offset: 0, Color: gg.Black}, {Offset: 1, Color: gg.Red}}

	tests := []struct {
		name string
		fill shape.GradientFill
		want surface.Paint
	}{
		{
			"linear",
			shape.GradientFill{Start: gg.Pt(0, 0.5), End: gg.Pt(1, 0.5), Stops: stops, Opacity: 0.5},
			surface.Paint{Brush: surface.LinearGradientBrush{Start: gg.Pt(10, 45), End: gg.Pt(110, 45), Stops: sorted}, Opacity: 0.5},
		},
		{
			"radial",
			shape.GradientFill{Type: shape.Radial, Start: gg.Pt(0.5, 0.5), End: gg.Pt(0.5, 1), Stops: stops, Opacity: 1},
			surface.Paint{Brush: surface.RadialGradientBrush{Center: gg.Pt(60, 45), Radius: 25, Stops: sorted}, Opacity: 1},
		},
		{
			"radial width",
			shape.GradientFill{Type: shape.Radial, Start: gg.Pt(0, 0), End: gg.Pt(0, 1), Width: 0.25, Stops: stops, Opacity: 1},
			surface.Paint{Brush: surface.RadialGradientBrush{Center: gg.Pt(10, 20), Radius: 25, Stops: sorted}, Opacity: 1},
		},
		{
			"radial zero radius",
			shape.GradientFill{Type: shape.Radial, Stops: stops, Opacity: 1},
			surface.Paint{Brush: surface.Solid(gg.Red), Opacity: 1},
		},
		{
			"single stop",
			shape.GradientFill{Stops: stops[:1], Opacity: 1},
			surface.Paint{Brush: surface.Solid(gg.Red), Opacity: 1},
		},
		{
			"no stops",
			shape.GradientFill{Opacity: 1},
			surface.Paint{Brush: surface.Solid(gg.Transparent), Opacity: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fill.Paint(bounds)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Paint mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if stops[0].Offset != 1 {
		t.Error("Paint reordered the fill's stops")
	}
}

func TestImageFillPaint(t *testing.T) {
	got := shape.ImageFill{ID: "x", Opacity: 0.3}.Paint(surface.XYWH(0, 0, 1, 1))
	if got.Opacity != 0.3 {
		t.Errorf("Opacity = %v, want 0.3", got.Opacity)
	}
	if zero := (shape.ImageFill{ID: "x"}).Paint(surface.XYWH(0, 0, 1, 1)); zero.Opacity != 0 {
		t.Errorf("zero value Opacity = %v, want 0", zero.Opacity)
	}
}

func TestGradientTypeString(t *testing.T) {
	if shape.Linear.String() != "linear" || shape.Radial.String() != "radial" {
		t.Errorf("String() = %q, %q", shape.Linear, shape.Radial)
	}
}

func TestBlendMode(t *testing.T) {
	tests := []struct {
		name string
		mode shape.BlendMode
		gg   gg.BlendMode
		ok   bool
	}{
		{"normal", shape.BlendNormal, gg.BlendNormal, true},
		{"multiply", shape.BlendMultiply, gg.BlendMultiply, true},
		{"screen", shape.BlendScreen, gg.BlendScreen, true},
		{"overlay", shape.BlendOverlay, gg.BlendOverlay, true},
		{"color-dodge", shape.BlendColorDodge, gg.BlendNormal, false},
		{"luminosity", shape.BlendLuminosity, gg.BlendNormal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mode.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.mode.String(), tt.name)
			}
			parsed, err := shape.ParseBlendMode(tt.name)
			if err != nil || parsed != tt.mode {
				t.Errorf("ParseBlendMode(%q) = %v, %v", tt.name, parsed, err)
			}
			got, ok := tt.mode.GG()
			if got != tt.gg || ok != tt.ok {
				t.Errorf("GG() = %v, %v; want %v, %v", got, ok, tt.gg, tt.ok)
			}
		})
	}
	if m, err := shape.ParseBlendMode(""); err != nil || m != shape.BlendNormal {
		t.Errorf("ParseBlendMode(\"\") = %v, %v", m, err)
	}
	if _, err := shape.ParseBlendMode("dissolve"); err == nil {
		t.Error("ParseBlendMode(dissolve) returned nil error")
	}
}

func TestFootprint(t *testing.T) {
	bounds := surface.XYWH(0, 0, 10, 20)
	data := surface.NewPath()
	data.MoveTo(0, 0)
	data.LineTo(10, 0)
	data.LineTo(0, 20)
	data.Close()

	rect := surface.NewPath()
	rect.Rectangle(bounds)
	oval := surface.NewPath()
	oval.Ellipse(bounds)

	tests := []struct {
		kind shape.Kind
		want *surface.Path
	}{
		{shape.Rect{}, rect},
		{shape.Circle{}, oval},
		{shape.Path{Data: data}, data},
		{shape.Path{}, rect},
		{shape.RawMarkup{}, rect},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := shape.Footprint(tt.kind, bounds)
			if diff := cmp.Diff(tt.want.Segments(), got.Segments()); diff != "" {
				t.Errorf("Footprint mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if shape.Footprint(shape.Path{Data: data}, bounds) == data {
		t.Error("Footprint returned the shape's own path")
	}
}

func TestRenderError(t *testing.T) {
	inner := errors.New("boom")
	err := error(&shape.RenderError{ShapeID: "s1", Kind: shape.Path{}, Stage: shape.StagePatched, Err: inner})
	want := `shape: render "s1" (path) at patched: boom`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is(err, inner) = false")
	}
	if s := shape.Stage(42).String(); s != "Stage(42)" {
		t.Errorf("String() = %q", s)
	}
}
