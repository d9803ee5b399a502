package markup

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// parseTransform parses an SVG transform list. Functions apply left to
// right, so "translate(10) scale(2)" scales first.
func parseTransform(s string) (gg.Matrix, error) {
	m := gg.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open < 0 || closing < open {
			return gg.Identity(), fmt.Errorf("markup: bad transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, ok := numbers(rest[open+1 : closing])
		if !ok {
			return gg.Identity(), fmt.Errorf("markup: bad transform arguments in %q", s)
		}
		f, err := transformFunc(name, args)
		if err != nil {
			return gg.Identity(), err
		}
		m = m.Multiply(f)
		rest = strings.TrimLeft(rest[closing+1:], " \t\r\n,")
	}
	return m, nil
}

func transformFunc(name string, a []float64) (gg.Matrix, error) {
	bad := func() (gg.Matrix, error) {
		return gg.Identity(), fmt.Errorf("markup: %s takes other arguments than %v", name, a)
	}
	switch name {
	case "matrix":
		if len(a) != 6 {
			return bad()
		}
		return gg.Matrix{A: a[0], B: a[2], C: a[4], D: a[1], E: a[3], F: a[5]}, nil
	case "translate":
		switch len(a) {
		case 1:
			return gg.Translate(a[0], 0), nil
		case 2:
			return gg.Translate(a[0], a[1]), nil
		}
		return bad()
	case "scale":
		switch len(a) {
		case 1:
			return gg.Scale(a[0], a[0]), nil
		case 2:
			return gg.Scale(a[0], a[1]), nil
		}
		return bad()
	case "rotate":
		r := gg.Rotate(a0(a) * math.Pi / 180)
		switch len(a) {
		case 1:
			return r, nil
		case 3:
			return gg.Translate(a[1], a[2]).Multiply(r).Multiply(gg.Translate(-a[1], -a[2])), nil
		}
		return bad()
	case "skewX":
		if len(a) != 1 {
			return bad()
		}
		return gg.Shear(math.Tan(a[0]*math.Pi/180), 0), nil
	case "skewY":
		if len(a) != 1 {
			return bad()
		}
		return gg.Shear(0, math.Tan(a[0]*math.Pi/180)), nil
	}
	return gg.Identity(), fmt.Errorf("markup: unknown transform %q", name)
}

func a0(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return a[0]
}
