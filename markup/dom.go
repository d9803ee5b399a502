package markup

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/surface"
)

// ErrNotSVG is returned when a document's root element is not <svg>.
var ErrNotSVG = errors.New("markup: root element is not <svg>")

// FontResolver finds a face for a font family at a size. Generic family
// names (serif, sans-serif, monospace) may be passed.
type FontResolver interface {
	ResolveFace(family string, size float64) (text.Face, bool)
}

// maxUseDepth bounds nested <use> references.
const maxUseDepth = 16

// Dom is a compiled SVG document ready to be drawn.
//
// A Dom holds its own copy of the document, so the Document it was compiled
// from may be edited afterwards. Render may be called any number of times.
type Dom struct {
	root     *Element
	ids      map[string]*Element
	fonts    FontResolver
	width    float64
	height   float64
	viewport surface.Rect // viewBox, or the intrinsic size without one
	hasView  bool
	aspect   string
}

// Compile prepares doc for rendering. fonts may be nil, in which case text
// is not drawn.
func Compile(doc *Document, fonts FontResolver) (*Dom, error) {
	if doc == nil || doc.Root == nil {
		return nil, ErrNoRoot
	}
	if doc.Root.Name != "svg" {
		return nil, fmt.Errorf("%w: got <%s>", ErrNotSVG, doc.Root.Name)
	}
	root := doc.Root.Clone()
	d := &Dom{
		root:  root,
		ids:   make(map[string]*Element),
		fonts: fonts,
	}
	root.Walk(func(e *Element) {
		if id, ok := e.Attr("id"); ok && id != "" {
			if _, dup := d.ids[id]; !dup {
				d.ids[id] = e
			}
		}
	})

	var vb surface.Rect
	if v, ok := root.Attr("viewBox"); ok {
		if n, ok := numbers(v); ok && len(n) == 4 && n[2] > 0 && n[3] > 0 {
			vb = surface.XYWH(n[0], n[1], n[2], n[3])
			d.hasView = true
		} else {
			logger.Get().Warn("markup: ignoring bad viewBox", "value", v)
		}
	}
	d.width, d.height = vb.Width(), vb.Height()
	if v, ok := root.Attr("width"); ok && !strings.HasSuffix(strings.TrimSpace(v), "%") {
		if n, ok := length(v, 0, 16); ok {
			d.width = n
		}
	}
	if v, ok := root.Attr("height"); ok && !strings.HasSuffix(strings.TrimSpace(v), "%") {
		if n, ok := length(v, 0, 16); ok {
			d.height = n
		}
	}
	if !d.hasView {
		vb = surface.XYWH(0, 0, d.width, d.height)
	}
	d.viewport = vb
	d.aspect, _ = root.Attr("preserveAspectRatio")
	return d, nil
}

// ParseDom parses and compiles a document in one step.
func ParseDom(data []byte, fonts FontResolver) (*Dom, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(doc, fonts)
}

// Size returns the intrinsic size of the document in user units.
func (d *Dom) Size() (width, height float64) {
	return d.width, d.height
}

// Render draws the document onto c with its origin at c's current origin.
// The canvas state is restored before Render returns.
func (d *Dom) Render(c surface.Canvas) error {
	c.Save()
	defer c.Restore()

	if d.hasView && d.width > 0 && d.height > 0 {
		m, clip := viewBoxTransform(d.viewport, surface.XYWH(0, 0, d.width, d.height), d.aspect)
		if clip {
			c.ClipPath(rectPath(surface.XYWH(0, 0, d.width, d.height)))
		}
		c.Concat(m)
	}
	r := &renderer{dom: d, canvas: c}
	r.children(d.root, defaultStyle().derive(d.root))
	return nil
}

// renderer carries per-Render state.
type renderer struct {
	dom      *Dom
	canvas   surface.Canvas
	useDepth int
	warned   map[string]bool
}

func (r *renderer) children(e *Element, st style) {
	for _, c := range e.Children {
		r.element(c, st)
	}
}

func (r *renderer) element(e *Element, parent style) {
	switch e.Name {
	case "defs", "linearGradient", "radialGradient", "clipPath", "stop", "style",
		"title", "desc", "metadata", "symbol", "mask", "pattern", "filter", "marker":
		return
	}
	st := parent.derive(e)
	if !st.display {
		return
	}

	c := r.canvas
	c.Save()
	defer c.Restore()

	if v, ok := e.Attr("transform"); ok {
		m, err := parseTransform(v)
		if err != nil {
			logger.Get().Warn("markup: ignoring transform", "element", e.Name, "err", err)
		} else {
			c.Concat(m)
		}
	}
	if st.clipPath != "" && !r.clip(e, st) {
		return
	}

	switch e.Name {
	case "g", "a", "switch":
		r.children(e, st)
	case "svg":
		r.nested(e, st)
	case "use":
		r.use(e, st)
	case "path", "rect", "circle", "ellipse", "polygon", "polyline", "line":
		r.shape(e, st)
	case "image":
		r.image(e, st)
	case "text":
		r.text(e, st)
	default:
		r.warnOnce(e.Name)
	}
}

func (r *renderer) warnOnce(name string) {
	if r.warned == nil {
		r.warned = make(map[string]bool)
	}
	if !r.warned[name] {
		r.warned[name] = true
		logger.Get().Warn("markup: unsupported element", "element", name)
	}
}

// nested renders an inner <svg> as a new viewport.
func (r *renderer) nested(e *Element, st style) {
	vp := r.dom.viewport
	x := r.lengthAttr(e, "x", vp.Width(), st)
	y := r.lengthAttr(e, "y", vp.Height(), st)
	w, okW := r.lengthAttrOK(e, "width", vp.Width(), st)
	h, okH := r.lengthAttrOK(e, "height", vp.Height(), st)
	if !okW {
		w = vp.Width()
	}
	if !okH {
		h = vp.Height()
	}
	r.canvas.Concat(gg.Translate(x, y))
	if v, ok := e.Attr("viewBox"); ok {
		if n, ok := numbers(v); ok && len(n) == 4 && n[2] > 0 && n[3] > 0 {
			aspect, _ := e.Attr("preserveAspectRatio")
			m, clip := viewBoxTransform(surface.XYWH(n[0], n[1], n[2], n[3]), surface.XYWH(0, 0, w, h), aspect)
			if clip {
				r.canvas.ClipPath(rectPath(surface.XYWH(0, 0, w, h)))
			}
			r.canvas.Concat(m)
		}
	}
	r.children(e, st)
}

// use renders the referenced element translated by x and y.
func (r *renderer) use(e *Element, st style) {
	id, ok := href(e)
	if !ok {
		return
	}
	target := r.dom.ids[id]
	if target == nil || r.useDepth >= maxUseDepth {
		return
	}
	vp := r.dom.viewport
	r.canvas.Concat(gg.Translate(r.lengthAttr(e, "x", vp.Width(), st), r.lengthAttr(e, "y", vp.Height(), st)))
	r.useDepth++
	defer func() { r.useDepth-- }()
	if target.Name == "symbol" {
		r.children(target, st.derive(target))
		return
	}
	r.element(target, st)
}

func (r *renderer) shape(e *Element, st style) {
	if st.hidden || st.fill.kind == paintNone {
		return
	}
	p := r.geometry(e, st)
	if p.IsEmpty() {
		return
	}
	p.Rule = st.fillRule
	paint, ok := r.paint(st, p.Bounds())
	if !ok {
		return
	}
	r.canvas.DrawPath(p, paint)
}

// paint resolves the fill of st for geometry with bounding box bbox.
func (r *renderer) paint(st style, bbox surface.Rect) (surface.Paint, bool) {
	ps := st.fill
	alpha := st.fillOpacity * st.opacity
	for {
		switch ps.kind {
		case paintNone:
			return surface.Paint{}, false
		case paintCurrent:
			return surface.Paint{Brush: surface.Solid(st.color), Opacity: alpha}, true
		case paintColor:
			return surface.Paint{Brush: surface.Solid(ps.color), Opacity: alpha}, true
		case paintRef:
			if g := r.dom.ids[ps.ref]; g != nil {
				b, ok := r.dom.gradientBrush(g, bbox)
				return surface.Paint{Brush: b, Opacity: alpha}, ok
			}
			if ps.fallback == nil {
				return surface.Paint{}, false
			}
			ps = *ps.fallback
		}
	}
}

// geometry returns the fill geometry of a basic shape or path element.
func (r *renderer) geometry(e *Element, st style) *surface.Path {
	vp := r.dom.viewport
	w, h := vp.Width(), vp.Height()
	diag := math.Hypot(w, h) / math.Sqrt2
	p := surface.NewPath()

	switch e.Name {
	case "path":
		d, _ := e.Attr("d")
		parsed, err := ParsePathData(d)
		if err != nil {
			logger.Get().Warn("markup: path data", "err", err)
		}
		return parsed
	case "rect":
		x, y := r.lengthAttr(e, "x", w, st), r.lengthAttr(e, "y", h, st)
		rw, rh := r.lengthAttr(e, "width", w, st), r.lengthAttr(e, "height", h, st)
		if rw <= 0 || rh <= 0 {
			return p
		}
		rx, okX := r.lengthAttrOK(e, "rx", w, st)
		ry, okY := r.lengthAttrOK(e, "ry", h, st)
		switch {
		case okX && !okY:
			ry = rx
		case okY && !okX:
			rx = ry
		}
		roundRect(p, surface.XYWH(x, y, rw, rh), math.Min(math.Max(rx, 0), rw/2), math.Min(math.Max(ry, 0), rh/2))
	case "circle":
		cx, cy, radius := r.lengthAttr(e, "cx", w, st), r.lengthAttr(e, "cy", h, st), r.lengthAttr(e, "r", diag, st)
		if radius > 0 {
			p.Ellipse(surface.Rect{Left: cx - radius, Top: cy - radius, Right: cx + radius, Bottom: cy + radius})
		}
	case "ellipse":
		cx, cy := r.lengthAttr(e, "cx", w, st), r.lengthAttr(e, "cy", h, st)
		rx, okX := r.lengthAttrOK(e, "rx", w, st)
		ry, okY := r.lengthAttrOK(e, "ry", h, st)
		if !okX {
			rx = ry
		}
		if !okY {
			ry = rx
		}
		if rx > 0 && ry > 0 {
			p.Ellipse(surface.Rect{Left: cx - rx, Top: cy - ry, Right: cx + rx, Bottom: cy + ry})
		}
	case "polygon", "polyline":
		pts, _ := e.Attr("points")
		n, _ := numbers(pts)
		for i := 0; i+1 < len(n); i += 2 {
			p.LineTo(n[i], n[i+1])
		}
		if e.Name == "polygon" {
			p.Close()
		}
	}
	// "line" has no interior; it is only ever stroked.
	return p
}

// clip applies the clip-path of st. It returns false when the clip is
// empty and nothing of e can be visible.
func (r *renderer) clip(e *Element, st style) bool {
	cp := r.dom.ids[st.clipPath]
	if cp == nil || cp.Name != "clipPath" {
		// An unresolved reference leaves the element unclipped.
		return true
	}
	area := surface.NewPath()
	rule := surface.FillRuleNonZero
	first := true
	cst := st.derive(cp)
	for _, child := range cp.Children {
		switch child.Name {
		case "path", "rect", "circle", "ellipse", "polygon", "polyline":
		default:
			continue
		}
		chst := cst.derive(child)
		if !chst.display {
			continue
		}
		g := r.geometry(child, chst)
		if v, ok := child.Attr("transform"); ok {
			if m, err := parseTransform(v); err == nil {
				g = g.Transform(m)
			}
		}
		if first {
			rule = chst.clipRule
			first = false
		}
		area.Append(g)
	}
	if units, _ := cp.Attr("clipPathUnits"); units == "objectBoundingBox" {
		bbox := r.bbox(e, st)
		area = area.Transform(gg.Translate(bbox.Left, bbox.Top).Multiply(gg.Scale(bbox.Width(), bbox.Height())))
	}
	if v, ok := cp.Attr("transform"); ok {
		if m, err := parseTransform(v); err == nil {
			area = area.Transform(m)
		}
	}
	if area.IsEmpty() {
		return false
	}
	area.Rule = rule
	r.canvas.ClipPath(area)
	return true
}

// bbox approximates the object bounding box of e, ignoring the transforms
// of descendants.
func (r *renderer) bbox(e *Element, st style) surface.Rect {
	switch e.Name {
	case "g", "a", "switch", "svg":
		var b surface.Rect
		first := true
		for _, c := range e.Children {
			cb := r.bbox(c, st.derive(c))
			if cb.IsEmpty() {
				continue
			}
			if first {
				b, first = cb, false
				continue
			}
			b = b.Union(cb)
		}
		return b
	case "image":
		x, y, w, h := r.imageBox(e, st, 0, 0)
		return surface.XYWH(x, y, w, h)
	}
	return r.geometry(e, st).Bounds()
}

func (r *renderer) lengthAttr(e *Element, name string, ref float64, st style) float64 {
	v, _ := r.lengthAttrOK(e, name, ref, st)
	return v
}

func (r *renderer) lengthAttrOK(e *Element, name string, ref float64, st style) (float64, bool) {
	v, ok := e.Attr(name)
	if !ok {
		return 0, false
	}
	return length(v, ref, st.fontSize)
}

func rectPath(rect surface.Rect) *surface.Path {
	p := surface.NewPath()
	p.Rectangle(rect)
	return p
}

// roundRect adds a rectangle with elliptical corners of radii rx, ry.
func roundRect(p *surface.Path, b surface.Rect, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.Rectangle(b)
		return
	}
	const k = 0.5522847498307936
	kx, ky := rx*k, ry*k
	p.MoveTo(b.Left+rx, b.Top)
	p.LineTo(b.Right-rx, b.Top)
	p.CubicTo(b.Right-rx+kx, b.Top, b.Right, b.Top+ry-ky, b.Right, b.Top+ry)
	p.LineTo(b.Right, b.Bottom-ry)
	p.CubicTo(b.Right, b.Bottom-ry+ky, b.Right-rx+kx, b.Bottom, b.Right-rx, b.Bottom)
	p.LineTo(b.Left+rx, b.Bottom)
	p.CubicTo(b.Left+rx-kx, b.Bottom, b.Left, b.Bottom-ry+ky, b.Left, b.Bottom-ry)
	p.LineTo(b.Left, b.Top+ry)
	p.CubicTo(b.Left, b.Top+ry-ky, b.Left+rx-kx, b.Top, b.Left+rx, b.Top)
	p.Close()
}

// viewBoxTransform maps vb into vp following a preserveAspectRatio value.
// clip reports whether content can overflow vp ("slice").
func viewBoxTransform(vb, vp surface.Rect, aspect string) (m gg.Matrix, clip bool) {
	sx, sy := vp.Width()/vb.Width(), vp.Height()/vb.Height()
	fields := strings.Fields(aspect)
	align := "xMidYMid"
	if len(fields) > 0 {
		align = fields[0]
	}
	if align == "none" {
		return gg.Translate(vp.Left, vp.Top).Multiply(gg.Scale(sx, sy)).Multiply(gg.Translate(-vb.Left, -vb.Top)), false
	}
	slice := len(fields) > 1 && fields[1] == "slice"
	s := math.Min(sx, sy)
	if slice {
		s = math.Max(sx, sy)
	}
	tx := vp.Left - vb.Left*s
	ty := vp.Top - vb.Top*s
	extraX, extraY := vp.Width()-vb.Width()*s, vp.Height()-vb.Height()*s
	switch {
	case strings.HasPrefix(align, "xMid"):
		tx += extraX / 2
	case strings.HasPrefix(align, "xMax"):
		tx += extraX
	}
	switch {
	case strings.HasSuffix(align, "YMid"):
		ty += extraY / 2
	case strings.HasSuffix(align, "YMax"):
		ty += extraY
	}
	return gg.Matrix{A: s, E: s, C: tx, F: ty}, slice
}
