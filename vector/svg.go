package vector

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/markup"
	"github.com/gogpu/gg-shape/surface"
)

func init() {
	Register(Format{Name: "svg", Ext: ".svg", New: func() WriterBackend {
		return NewSVGBackend()
	}})
}

// ErrNotEnded is returned when output is requested before End.
var ErrNotEnded = errors.New("vector: output requested before End")

// SVGBackend serializes commands to an SVG document.
//
// Every fill becomes a <path> element carrying the absolute transform in
// its transform attribute. A fill rule is written only when it differs
// from the SVG default (nonzero). Gradients and clip paths are emitted as
// elements with generated ids right before their first use.
type SVGBackend struct {
	doc       *markup.Document
	open      []*markup.Element // innermost open group last
	transform gg.Matrix
	states    []svgState
	nextID    int
	ended     bool
}

type svgState struct {
	transform gg.Matrix
	depth     int
}

var _ WriterBackend = (*SVGBackend)(nil)

// NewSVGBackend creates an SVG backend. Begin must be called before use.
func NewSVGBackend() *SVGBackend {
	return &SVGBackend{}
}

// Begin implements Backend.
func (b *SVGBackend) Begin(width, height float64) error {
	if width < 0 || height < 0 || math.IsNaN(width) || math.IsNaN(height) {
		return fmt.Errorf("vector: invalid svg size %vx%v", width, height)
	}
	root := markup.NewElement("svg",
		markup.Attr{Name: "xmlns", Value: "http://www.w3.org/2000/svg"},
		markup.Attr{Name: "width", Value: num(width)},
		markup.Attr{Name: "height", Value: num(height)},
		markup.Attr{Name: "viewBox", Value: "0 0 " + num(width) + " " + num(height)},
	)
	b.doc = &markup.Document{Root: root}
	b.open = []*markup.Element{root}
	b.transform = gg.Identity()
	b.states = b.states[:0]
	b.nextID = 0
	b.ended = false
	return nil
}

// End implements Backend.
func (b *SVGBackend) End() error {
	if b.doc == nil {
		return errors.New("vector: End called before Begin")
	}
	b.ended = true
	return nil
}

// Document returns the generated document. It is nil before Begin.
func (b *SVGBackend) Document() *markup.Document {
	return b.doc
}

// WriteTo implements WriterBackend.
func (b *SVGBackend) WriteTo(w io.Writer) (int64, error) {
	if !b.ended {
		return 0, ErrNotEnded
	}
	return b.doc.WriteTo(w)
}

// Save implements Backend.
func (b *SVGBackend) Save() {
	b.states = append(b.states, svgState{transform: b.transform, depth: len(b.open)})
}

// Restore implements Backend. Clip groups opened since the matching Save
// are closed.
func (b *SVGBackend) Restore() {
	if len(b.states) == 0 {
		return
	}
	s := b.states[len(b.states)-1]
	b.states = b.states[:len(b.states)-1]
	b.transform = s.transform
	b.open = b.open[:s.depth]
}

// SetTransform implements Backend.
func (b *SVGBackend) SetTransform(m gg.Matrix) {
	b.transform = m
}

// SetClip implements Backend.
func (b *SVGBackend) SetClip(path *surface.Path) {
	if path == nil {
		return
	}
	id := b.id("clip")
	shape := markup.NewElement("path", markup.Attr{Name: "d", Value: PathData(path)})
	b.setTransform(shape)
	if path.Rule == surface.FillRuleEvenOdd {
		shape.SetAttr("clip-rule", "evenodd")
	}
	clip := markup.NewElement("clipPath", markup.Attr{Name: "id", Value: id})
	clip.Append(shape)
	b.top().Append(clip)

	g := markup.NewElement("g", markup.Attr{Name: "clip-path", Value: "url(#" + id + ")"})
	b.top().Append(g)
	b.open = append(b.open, g)
}

// FillPath implements Backend.
func (b *SVGBackend) FillPath(path *surface.Path, brush surface.Brush, opacity float64) {
	if path.IsEmpty() {
		return
	}
	el := markup.NewElement("path", markup.Attr{Name: "d", Value: PathData(path)})
	b.setTransform(el)
	b.setFill(el, brush, opacity)
	if path.Rule == surface.FillRuleEvenOdd {
		el.SetAttr("fill-rule", "evenodd")
	}
	b.top().Append(el)
}

// DrawImage implements Backend. The image is embedded as a PNG data URL.
func (b *SVGBackend) DrawImage(img image.Image, dst surface.Rect, opacity float64) {
	if img == nil || dst.IsEmpty() {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logger.Get().Warn("vector: image not embedded", "err", err)
		return
	}
	el := markup.NewElement("image",
		markup.Attr{Name: "x", Value: num(dst.Left)},
		markup.Attr{Name: "y", Value: num(dst.Top)},
		markup.Attr{Name: "width", Value: num(dst.Width())},
		markup.Attr{Name: "height", Value: num(dst.Height())},
		markup.Attr{Name: "preserveAspectRatio", Value: "none"},
		markup.Attr{Name: "href", Value: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())},
	)
	b.setTransform(el)
	if opacity < 1 {
		el.SetAttr("opacity", num(math.Max(opacity, 0)))
	}
	b.top().Append(el)
}

// DrawText implements Backend.
func (b *SVGBackend) DrawText(s string, x, y float64, face text.Face, brush surface.Brush, opacity float64) {
	if s == "" || face == nil {
		return
	}
	el := markup.NewElement("text",
		markup.Attr{Name: "x", Value: num(x)},
		markup.Attr{Name: "y", Value: num(y)},
		markup.Attr{Name: "font-size", Value: num(face.Size())},
	)
	if src := face.Source(); src != nil && src.Name() != "" {
		el.SetAttr("font-family", src.Name())
	}
	b.setTransform(el)
	b.setFill(el, brush, opacity)
	el.Text = s
	b.top().Append(el)
}

func (b *SVGBackend) top() *markup.Element {
	return b.open[len(b.open)-1]
}

func (b *SVGBackend) id(prefix string) string {
	b.nextID++
	return prefix + strconv.Itoa(b.nextID)
}

func (b *SVGBackend) setTransform(el *markup.Element) {
	if !b.transform.IsIdentity() {
		el.SetAttr("transform", MatrixAttr(b.transform))
	}
}

func (b *SVGBackend) setFill(el *markup.Element, brush surface.Brush, opacity float64) {
	opacity = math.Max(0, math.Min(opacity, 1))
	switch v := brush.(type) {
	case surface.LinearGradientBrush:
		id := b.id("grad")
		g := markup.NewElement("linearGradient",
			markup.Attr{Name: "id", Value: id},
			markup.Attr{Name: "gradientUnits", Value: "userSpaceOnUse"},
			markup.Attr{Name: "x1", Value: num(v.Start.X)},
			markup.Attr{Name: "y1", Value: num(v.Start.Y)},
			markup.Attr{Name: "x2", Value: num(v.End.X)},
			markup.Attr{Name: "y2", Value: num(v.End.Y)},
		)
		appendStops(g, v.Stops)
		b.top().Append(g)
		el.SetAttr("fill", "url(#"+id+")")
	case surface.RadialGradientBrush:
		id := b.id("grad")
		g := markup.NewElement("radialGradient",
			markup.Attr{Name: "id", Value: id},
			markup.Attr{Name: "gradientUnits", Value: "userSpaceOnUse"},
			markup.Attr{Name: "cx", Value: num(v.Center.X)},
			markup.Attr{Name: "cy", Value: num(v.Center.Y)},
			markup.Attr{Name: "r", Value: num(v.Radius)},
		)
		appendStops(g, v.Stops)
		b.top().Append(g)
		el.SetAttr("fill", "url(#"+id+")")
	case surface.SolidBrush:
		el.SetAttr("fill", HexColor(v.Color))
		opacity *= v.Color.A
	default:
		el.SetAttr("fill", "#000000")
	}
	if opacity < 1 {
		el.SetAttr("fill-opacity", num(opacity))
	}
}

func appendStops(g *markup.Element, stops []surface.GradientStop) {
	for _, s := range stops {
		stop := markup.NewElement("stop",
			markup.Attr{Name: "offset", Value: num(s.Offset)},
			markup.Attr{Name: "stop-color", Value: HexColor(s.Color)},
		)
		if s.Color.A < 1 {
			stop.SetAttr("stop-opacity", num(s.Color.A))
		}
		g.Append(stop)
	}
}

// PathData returns the SVG path data ("d" attribute) for p.
func PathData(p *surface.Path) string {
	var sb strings.Builder
	for _, seg := range p.Segments() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch seg.Verb {
		case gg.MoveTo:
			sb.WriteByte('M')
		case gg.LineTo:
			sb.WriteByte('L')
		case gg.QuadTo:
			sb.WriteByte('Q')
		case gg.CubicTo:
			sb.WriteByte('C')
		case gg.Close:
			sb.WriteByte('Z')
		}
		for i, pt := range seg.Pts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(num(pt.X) + " " + num(pt.Y))
		}
	}
	return sb.String()
}

// MatrixAttr formats m as an SVG transform attribute value.
func MatrixAttr(m gg.Matrix) string {
	return "matrix(" + num(m.A) + " " + num(m.D) + " " + num(m.B) + " " +
		num(m.E) + " " + num(m.C) + " " + num(m.F) + ")"
}

// HexColor formats the color channels of c as #rrggbb. Alpha is ignored.
func HexColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(v, 1)) * 255))
}

// num formats v with at most four decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
