package main

import (
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"

	shape "github.com/gogpu/gg-shape"
	"github.com/gogpu/gg-shape/surface"
)

const sampleScene = `
width = 64
height = 32
background = "white"

[[image]]
id = "photo"
file = "photo.png"

[[shape]]
id = "frame"
kind = "rect"
x = 0
y = 0
width = 64
height = 32
opacity = 0.5
blend = "multiply"
clip_content = true
children = ["ring"]

  [[shape.fill]]
  type = "image"
  image = "photo"
  image_width = 640
  image_height = 320

  [[shape.fill]]
  color = "#ff0000"

[[shape]]
id = "ring"
kind = "path"
path = "M0 0 H20 V20 H0 Z M5 5 H15 V15 H5 Z"
width = 20
height = 20
rotate = 90

  [[shape.fill]]
  type = "linear"
  start = [0, 0]
  end = [1, 0]
  opacity = 0.5

    [[shape.fill.stop]]
    offset = 0
    color = "black"

    [[shape.fill.stop]]
    offset = 1
    color = "rgb(0, 0, 255)"
`

func TestDecodeScene(t *testing.T) {
	sc, err := DecodeScene(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("DecodeScene: %v", err)
	}
	if sc.Width != 64 || sc.Height != 32 || sc.Background != "white" {
		t.Errorf("header = %d, %d, %q", sc.Width, sc.Height, sc.Background)
	}
	if diff := cmp.Diff([]ImageDef{{ID: "photo", File: "photo.png"}}, sc.Images); diff != "" {
		t.Errorf("images mismatch (-want +got):\n%s", diff)
	}
	if len(sc.Shapes) != 2 || len(sc.Shapes[1].Fills[0].Stops) != 2 {
		t.Fatalf("decoded %d shapes", len(sc.Shapes))
	}
}

func TestDecodeSceneStrict(t *testing.T) {
	_, err := DecodeScene(strings.NewReader("[[shape]]\nkind = \"rect\"\ncolour = \"red\"\n"))
	if err == nil {
		t.Fatal("DecodeScene accepted an unknown key")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error %q does not name the unknown key", err)
	}
}

func TestBuildShapes(t *testing.T) {
	sc, err := DecodeScene(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("DecodeScene: %v", err)
	}
	shapes, err := sc.BuildShapes()
	if err != nil {
		t.Fatalf("BuildShapes: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("len = %d, want 2", len(shapes))
	}

	frame := shapes[0]
	if _, ok := frame.Kind().(shape.Rect); !ok {
		t.Errorf("frame kind = %T", frame.Kind())
	}
	if frame.Opacity() != 0.5 || frame.BlendMode() != shape.BlendMultiply || !frame.Clip() {
		t.Errorf("frame = opacity %v, blend %v, clip %v", frame.Opacity(), frame.BlendMode(), frame.Clip())
	}
	wantFills := []shape.Fill{
		shape.ImageFill{ID: "photo", Width: 640, Height: 320, Opacity: 1},
		shape.SolidFill{Color: gg.RGBA{R: 1, A: 1}, Opacity: 1},
	}
	if diff := cmp.Diff(wantFills, frame.Fills()); diff != "" {
		t.Errorf("frame fills mismatch (-want +got):\n%s", diff)
	}

	ring := shapes[1]
	p, ok := ring.Kind().(shape.Path)
	if !ok {
		t.Fatalf("ring kind = %T", ring.Kind())
	}
	if b := p.Data.Bounds(); b != surface.XYWH(0, 0, 20, 20) {
		t.Errorf("ring path bounds = %+v", b)
	}
	pt := ring.Transform().TransformPoint(gg.Pt(1, 0))
	if pt.X > 1e-9 || pt.Y < 1-1e-9 {
		t.Errorf("rotate 90: (1, 0) -> %v, want (0, 1)", pt)
	}
	g, ok := ring.Fills()[0].(shape.GradientFill)
	if !ok {
		t.Fatalf("ring fill = %T", ring.Fills()[0])
	}
	if g.Type != shape.Linear || g.Opacity != 0.5 || g.End != gg.Pt(1, 0) || len(g.Stops) != 2 {
		t.Errorf("gradient = %+v", g)
	}
	if g.Stops[1].Color != (gg.RGBA{B: 1, A: 1}) {
		t.Errorf("stop color = %+v, want blue", g.Stops[1].Color)
	}
}

func TestBuildShapesErrors(t *testing.T) {
	tests := []struct {
		name  string
		scene string
		want  string
	}{
		{"duplicate id", "[[shape]]\nid = \"a\"\n[[shape]]\nid = \"a\"\n", "duplicate"},
		{"unknown kind", "[[shape]]\nkind = \"star\"\n", "unknown kind"},
		{"bad path", "[[shape]]\nkind = \"path\"\npath = \"M0 0 L\"\n", "shape-1"},
		{"bad transform", "[[shape]]\ntransform = [1, 0, 0]\n", "transform"},
		{"bad blend", "[[shape]]\nblend = \"dissolve\"\n", "blend"},
		{"bad color", "[[shape]]\n[[shape.fill]]\ncolor = \"nope\"\n", "bad color"},
		{"bad fill type", "[[shape]]\n[[shape.fill]]\ntype = \"noise\"\n", "fill type"},
		{"image without id", "[[shape]]\n[[shape.fill]]\ntype = \"image\"\n", "image id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := DecodeScene(strings.NewReader(tt.scene))
			if err != nil {
				t.Fatalf("DecodeScene: %v", err)
			}
			_, err = sc.BuildShapes()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("BuildShapes() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	sc := &Scene{dir: "scenes"}
	if got := sc.Resolve("a.png"); got != "scenes/a.png" {
		t.Errorf("Resolve = %q", got)
	}
	if got := sc.Resolve("/abs/a.png"); got != "/abs/a.png" {
		t.Errorf("Resolve = %q", got)
	}
}
