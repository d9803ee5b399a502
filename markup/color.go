package markup

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color value as used by fill and stop-color.
func ParseColor(s string) (gg.RGBA, bool) {
	return parseColor(s)
}

// parseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(),
// rgba(), transparent or a named color.
func parseColor(s string) (gg.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return gg.RGBA{}, false
	case s == "transparent":
		return gg.Transparent, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return gg.RGBA{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, true
	}
	return gg.RGBA{}, false
}

func parseHex(h string) (gg.RGBA, bool) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, c := range h {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		h = b.String()
	case 6, 8:
	default:
		return gg.RGBA{}, false
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return gg.RGBA{}, false
	}
	return gg.RGBA{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, true
}

func parseRGBFunc(s string) (gg.RGBA, bool) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if end < open {
		return gg.RGBA{}, false
	}
	args := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
	if len(args) != 3 && len(args) != 4 {
		return gg.RGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, a := range args {
		if i == 3 {
			v, ok := fraction(a)
			if !ok {
				return gg.RGBA{}, false
			}
			ch[3] = clamp01(v)
			continue
		}
		if strings.HasSuffix(a, "%") {
			v, ok := fraction(a)
			if !ok {
				return gg.RGBA{}, false
			}
			ch[i] = clamp01(v)
			continue
		}
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		ch[i] = clamp01(v / 255)
	}
	return gg.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}
