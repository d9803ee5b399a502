package markup

import (
	"strings"

	"github.com/gogpu/gg/text"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/surface"
)

// text renders a <text> element and its <tspan> children as one run that
// advances a pen from the x and y attributes.
func (r *renderer) text(e *Element, st style) {
	vp := r.dom.viewport
	pen := struct{ x, y float64 }{
		x: r.firstLength(e, "x", vp.Width(), st),
		y: r.firstLength(e, "y", vp.Height(), st),
	}

	type run struct {
		s  string
		st style
		x  float64
		y  float64
	}
	var runs []run
	add := func(s string, rst style) {
		s = normalizeText(s, rst.preserveWS)
		if s == "" {
			return
		}
		if len(runs) > 0 && !rst.preserveWS {
			s = " " + s
		}
		face, ok := r.face(rst)
		if !ok {
			return
		}
		runs = append(runs, run{s: s, st: rst, x: pen.x, y: pen.y})
		pen.x += face.Advance(s)
	}

	add(e.Text, st)
	for _, c := range e.Children {
		if c.Name != "tspan" {
			continue
		}
		cst := st.derive(c)
		if !cst.display {
			continue
		}
		if v, ok := r.firstLengthOK(c, "x", vp.Width(), cst); ok {
			pen.x = v
		}
		if v, ok := r.firstLengthOK(c, "y", vp.Height(), cst); ok {
			pen.y = v
		}
		if v, ok := r.firstLengthOK(c, "dx", vp.Width(), cst); ok {
			pen.x += v
		}
		if v, ok := r.firstLengthOK(c, "dy", vp.Height(), cst); ok {
			pen.y += v
		}
		add(c.Text, cst)
	}
	if len(runs) == 0 {
		return
	}

	// text-anchor of the <text> element shifts the whole run.
	var shift float64
	switch st.textAnchor {
	case "middle":
		shift = -(pen.x - runs[0].x) / 2
	case "end":
		shift = -(pen.x - runs[0].x)
	}
	for _, rn := range runs {
		if rn.st.hidden || rn.st.fill.kind == paintNone {
			continue
		}
		face, _ := r.face(rn.st)
		w := face.Advance(rn.s)
		m := face.Metrics()
		bbox := surface.Rect{Left: rn.x + shift, Top: rn.y - m.Ascent, Right: rn.x + shift + w, Bottom: rn.y + m.Descent}
		paint, ok := r.paint(rn.st, bbox)
		if !ok {
			continue
		}
		r.canvas.DrawText(rn.s, rn.x+shift, rn.y, face, paint)
	}
}

func (r *renderer) face(st style) (text.Face, bool) {
	if r.dom.fonts == nil {
		return nil, false
	}
	f, ok := r.dom.fonts.ResolveFace(st.fontFamily, st.fontSize)
	if !ok || f == nil {
		logger.Get().Debug("markup: no face for text", "family", st.fontFamily, "size", st.fontSize)
		return nil, false
	}
	return f, true
}

// firstLength reads the first entry of a length list attribute (x="1 2 3").
func (r *renderer) firstLength(e *Element, name string, ref float64, st style) float64 {
	v, _ := r.firstLengthOK(e, name, ref, st)
	return v
}

func (r *renderer) firstLengthOK(e *Element, name string, ref float64, st style) (float64, bool) {
	v, ok := e.Attr(name)
	if !ok {
		return 0, false
	}
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return 0, false
	}
	return length(fields[0], ref, st.fontSize)
}

// normalizeText applies Unicode NFC and SVG whitespace handling.
func normalizeText(s string, preserve bool) string {
	s = norm.NFC.String(s)
	if preserve {
		return strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == '\t' {
				return ' '
			}
			return r
		}, s)
	}
	s = strings.NewReplacer("\r\n", "", "\n", "", "\r", "", "\t", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
