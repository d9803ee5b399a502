package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"

	shape "github.com/gogpu/gg-shape"
	"github.com/gogpu/gg-shape/markup"
	"github.com/gogpu/gg-shape/surface"
)

// Scene is the TOML scene file.
type Scene struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Background string     `toml:"background"`
	Fit        string     `toml:"fit"`
	Images     []ImageDef `toml:"image"`
	Fonts      []FontDef  `toml:"font"`
	Shapes     []ShapeDef `toml:"shape"`

	dir string
}

// ImageDef loads an image file under an ID referenced by image fills.
type ImageDef struct {
	ID   string `toml:"id"`
	File string `toml:"file"`
}

// FontDef registers a font file under a family name.
type FontDef struct {
	Family string `toml:"family"`
	File   string `toml:"file"`
}

// ShapeDef describes one shape. Bounds are in scene coordinates.
//
// Kind is rect, circle, path or svg. Path holds SVG path data for paths;
// Markup or MarkupFile an SVG document for svg shapes. Rotate is in degrees
// and rotates points before Transform does.
type ShapeDef struct {
	ID          string    `toml:"id"`
	Kind        string    `toml:"kind"`
	X           float64   `toml:"x"`
	Y           float64   `toml:"y"`
	Width       float64   `toml:"width"`
	Height      float64   `toml:"height"`
	Path        string    `toml:"path"`
	Markup      string    `toml:"markup"`
	MarkupFile  string    `toml:"markup_file"`
	Rotate      float64   `toml:"rotate"`
	Transform   []float64 `toml:"transform"`
	Opacity     *float64  `toml:"opacity"`
	Blend       string    `toml:"blend"`
	Hidden      bool      `toml:"hidden"`
	ClipContent bool      `toml:"clip_content"`
	Children    []string  `toml:"children"`
	Fills       []FillDef `toml:"fill"`
}

// FillDef describes one fill. Type is solid, linear, radial or image.
type FillDef struct {
	Type    string     `toml:"type"`
	Color   string     `toml:"color"`
	Opacity *float64   `toml:"opacity"`
	Start   [2]float64 `toml:"start"`
	End     [2]float64 `toml:"end"`
	Width   float64    `toml:"width"`
	Stops   []StopDef  `toml:"stop"`
	Image   string     `toml:"image"`
	ImageW  float64    `toml:"image_width"`
	ImageH  float64    `toml:"image_height"`
}

// StopDef is a gradient stop.
type StopDef struct {
	Offset float64 `toml:"offset"`
	Color  string  `toml:"color"`
}

// LoadScene reads a scene file. Relative file references are resolved
// against the scene's directory.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := DecodeScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// DecodeScene decodes a scene. Unknown keys are rejected.
func DecodeScene(r io.Reader) (*Scene, error) {
	var sc Scene
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&sc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("scene: %s", strict.String())
		}
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &sc, nil
}

// Resolve returns a path relative to the scene directory.
func (sc *Scene) Resolve(file string) string {
	if filepath.IsAbs(file) || sc.dir == "" {
		return file
	}
	return filepath.Join(sc.dir, file)
}

// BuildShapes converts the shape definitions.
func (sc *Scene) BuildShapes() ([]*shape.Shape, error) {
	shapes := make([]*shape.Shape, 0, len(sc.Shapes))
	seen := make(map[string]bool, len(sc.Shapes))
	for i, def := range sc.Shapes {
		if def.ID == "" {
			def.ID = fmt.Sprintf("shape-%d", i+1)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("scene: duplicate shape id %q", def.ID)
		}
		seen[def.ID] = true
		s, err := sc.buildShape(def)
		if err != nil {
			return nil, fmt.Errorf("scene: shape %q: %w", def.ID, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func (sc *Scene) buildShape(def ShapeDef) (*shape.Shape, error) {
	kind, err := sc.kind(def)
	if err != nil {
		return nil, err
	}
	m := gg.Identity()
	switch n := len(def.Transform); n {
	case 0:
	case 6:
		t := def.Transform
		m = gg.Matrix{A: t[0], B: t[1], C: t[2], D: t[3], E: t[4], F: t[5]}
	default:
		return nil, fmt.Errorf("transform has %d values, want 6", n)
	}
	if def.Rotate != 0 {
		m = m.Multiply(gg.Rotate(def.Rotate * math.Pi / 180))
	}
	blend, err := shape.ParseBlendMode(def.Blend)
	if err != nil {
		return nil, err
	}
	fills := make([]shape.Fill, 0, len(def.Fills))
	for i, fd := range def.Fills {
		f, err := buildFill(fd)
		if err != nil {
			return nil, fmt.Errorf("fill %d: %w", i, err)
		}
		fills = append(fills, f)
	}
	opts := []shape.ShapeOption{
		shape.WithTransform(m),
		shape.WithFills(fills...),
		shape.WithBlendMode(blend),
		shape.WithHidden(def.Hidden),
		shape.WithClipContent(def.ClipContent),
		shape.WithChildren(def.Children...),
	}
	if def.Opacity != nil {
		opts = append(opts, shape.WithOpacity(*def.Opacity))
	}
	return shape.New(def.ID, kind, surface.XYWH(def.X, def.Y, def.Width, def.Height), opts...), nil
}

func (sc *Scene) kind(def ShapeDef) (shape.Kind, error) {
	switch def.Kind {
	case "", "rect":
		return shape.Rect{}, nil
	case "circle":
		return shape.Circle{}, nil
	case "path":
		p, err := markup.ParsePathData(def.Path)
		if err != nil {
			return nil, err
		}
		return shape.Path{Data: p}, nil
	case "svg":
		content := def.Markup
		if def.MarkupFile != "" {
			data, err := os.ReadFile(sc.Resolve(def.MarkupFile))
			if err != nil {
				return nil, err
			}
			content = string(data)
		}
		return shape.RawMarkup{Content: content}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", def.Kind)
}

func buildFill(fd FillDef) (shape.Fill, error) {
	opacity := 1.0
	if fd.Opacity != nil {
		opacity = *fd.Opacity
	}
	switch fd.Type {
	case "", "solid":
		c, err := color(fd.Color)
		if err != nil {
			return nil, err
		}
		return shape.SolidFill{Color: c, Opacity: opacity}, nil
	case "linear", "radial":
		g := shape.GradientFill{
			Start:   gg.Pt(fd.Start[0], fd.Start[1]),
			End:     gg.Pt(fd.End[0], fd.End[1]),
			Width:   fd.Width,
			Opacity: opacity,
		}
		if fd.Type == "radial" {
			g.Type = shape.Radial
		}
		for _, st := range fd.Stops {
			c, err := color(st.Color)
			if err != nil {
				return nil, err
			}
			g.Stops = append(g.Stops, surface.GradientStop{Offset: st.Offset, Color: c})
		}
		return g, nil
	case "image":
		if fd.Image == "" {
			return nil, errors.New("image fill without image id")
		}
		return shape.ImageFill{ID: fd.Image, Width: fd.ImageW, Height: fd.ImageH, Opacity: opacity}, nil
	}
	return nil, fmt.Errorf("unknown fill type %q", fd.Type)
}

func color(s string) (gg.RGBA, error) {
	c, ok := markup.ParseColor(s)
	if !ok {
		return gg.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return c, nil
}
