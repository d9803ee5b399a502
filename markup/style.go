package markup

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/surface"
)

// presentation lists the properties read from presentation attributes and
// style declarations. Everything else in a style attribute is ignored.
var presentation = map[string]bool{
	"fill":         true,
	"fill-opacity": true,
	"fill-rule":    true,
	"clip-rule":    true,
	"clip-path":    true,
	"opacity":      true,
	"color":        true,
	"display":      true,
	"visibility":   true,
	"font-family":  true,
	"font-size":    true,
	"text-anchor":  true,
	"stop-color":   true,
	"stop-opacity": true,
	"white-space":  true,
	"xml:space":    true,
}

// properties returns the presentation properties of e. Declarations in the
// style attribute override presentation attributes.
func properties(e *Element) map[string]string {
	props := make(map[string]string)
	for _, a := range e.Attrs {
		if presentation[a.Name] {
			props[a.Name] = strings.TrimSpace(a.Value)
		}
	}
	if s, ok := e.Attr("style"); ok && strings.TrimSpace(s) != "" {
		decls, err := parser.ParseDeclarations(s)
		if err != nil {
			logger.Get().Warn("markup: bad style attribute", "element", e.Name, "err", err)
			return props
		}
		for _, d := range decls {
			name := strings.ToLower(strings.TrimSpace(d.Property))
			if presentation[name] {
				props[name] = strings.TrimSpace(d.Value)
			}
		}
	}
	return props
}

// paintKind distinguishes the forms of the fill property.
type paintKind uint8

const (
	paintColor paintKind = iota
	paintNone
	paintRef
	paintCurrent
)

// paintSpec is a parsed fill value.
type paintSpec struct {
	kind     paintKind
	color    gg.RGBA
	ref      string    // id for paintRef
	fallback *paintSpec // used when ref does not resolve
}

func parsePaint(s string) (paintSpec, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "none":
		return paintSpec{kind: paintNone}, true
	case "currentcolor":
		return paintSpec{kind: paintCurrent}, true
	}
	if strings.HasPrefix(s, "url(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return paintSpec{}, false
		}
		p := paintSpec{kind: paintRef, ref: refID(s[4:end])}
		if rest := strings.TrimSpace(s[end+1:]); rest != "" {
			if fb, ok := parsePaint(rest); ok && fb.kind != paintRef {
				p.fallback = &fb
			}
		}
		return p, true
	}
	c, ok := parseColor(s)
	if !ok {
		return paintSpec{}, false
	}
	return paintSpec{kind: paintColor, color: c}, true
}

// refID extracts the id from the inside of url(...) or an href value.
func refID(s string) string {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	return strings.TrimPrefix(s, "#")
}

// style is the computed style of an element.
type style struct {
	fill        paintSpec
	fillOpacity float64
	fillRule    surface.FillRule
	clipRule    surface.FillRule
	color       gg.RGBA
	fontFamily  string
	fontSize    float64
	textAnchor  string
	preserveWS  bool
	hidden      bool // visibility: hidden, inherited

	// Not inherited.
	opacity  float64 // accumulated group opacity
	display  bool
	clipPath string
}

func defaultStyle() style {
	return style{
		fill:        paintSpec{kind: paintColor, color: gg.Black},
		fillOpacity: 1,
		color:       gg.Black,
		fontFamily:  "sans-serif",
		fontSize:    16,
		textAnchor:  "start",
		opacity:     1,
		display:     true,
	}
}

// derive computes the style of a child element from its parent's style.
func (parent style) derive(e *Element) style {
	s := parent
	s.display = true
	s.clipPath = ""
	props := properties(e)

	if v, ok := props["color"]; ok {
		if c, ok := parseColor(v); ok {
			s.color = c
		}
	}
	if v, ok := props["fill"]; ok && v != "inherit" {
		if p, ok := parsePaint(v); ok {
			s.fill = p
		}
	}
	if v, ok := props["fill-opacity"]; ok {
		if f, ok := fraction(v); ok {
			s.fillOpacity = clamp01(f)
		}
	}
	if v, ok := props["fill-rule"]; ok {
		s.fillRule = parseRule(v, s.fillRule)
	}
	if v, ok := props["clip-rule"]; ok {
		s.clipRule = parseRule(v, s.clipRule)
	}
	if v, ok := props["opacity"]; ok {
		if f, ok := fraction(v); ok {
			s.opacity *= clamp01(f)
		}
	}
	if v, ok := props["font-family"]; ok && v != "inherit" {
		s.fontFamily = firstFamily(v)
	}
	if v, ok := props["font-size"]; ok {
		if n, ok := length(v, parent.fontSize, parent.fontSize); ok && n > 0 {
			s.fontSize = n
		}
	}
	if v, ok := props["text-anchor"]; ok && v != "inherit" {
		s.textAnchor = v
	}
	if v, ok := props["xml:space"]; ok {
		s.preserveWS = v == "preserve"
	}
	if v, ok := props["white-space"]; ok {
		s.preserveWS = strings.HasPrefix(v, "pre")
	}
	if v, ok := props["visibility"]; ok {
		switch v {
		case "hidden", "collapse":
			s.hidden = true
		case "visible":
			s.hidden = false
		}
	}
	if v, ok := props["display"]; ok && v == "none" {
		s.display = false
	}
	if v, ok := props["clip-path"]; ok && strings.HasPrefix(v, "url(") {
		if end := strings.IndexByte(v, ')'); end > 4 {
			s.clipPath = refID(v[4:end])
		}
	}
	return s
}

func parseRule(v string, cur surface.FillRule) surface.FillRule {
	switch strings.ToLower(v) {
	case "evenodd":
		return surface.FillRuleEvenOdd
	case "nonzero":
		return surface.FillRuleNonZero
	}
	return cur
}

// firstFamily returns the first family of a font-family list, unquoted.
func firstFamily(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}
