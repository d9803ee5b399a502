package markup

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/surface"
)

// ParsePathData parses SVG path data. On malformed input it returns the
// geometry read up to the error together with the error, matching how
// SVG renderers draw a path up to its first bad segment.
func ParsePathData(d string) (*surface.Path, error) {
	p := surface.NewPath()
	sc := newScanner(d)

	var (
		cmd       byte
		start     gg.Point // start of the current subpath
		cur       gg.Point
		lastCtrl  gg.Point // reflected by S/s and T/t
		lastCubic bool
		lastQuad  bool
	)
	for !sc.done() {
		if c := sc.b[sc.i]; isCommand(c) {
			cmd = c
			sc.i++
		} else if cmd == 0 {
			return p, fmt.Errorf("markup: path data must start with a command, got %q", c)
		} else if cmd == 'Z' || cmd == 'z' {
			return p, fmt.Errorf("markup: unexpected %q after closepath", c)
		}

		rel := cmd >= 'a'
		off := func(x, y float64) gg.Point {
			if rel {
				return gg.Pt(cur.X+x, cur.Y+y)
			}
			return gg.Pt(x, y)
		}
		args := func(n int) ([]float64, error) {
			v := make([]float64, n)
			for i := range v {
				f, ok := sc.number()
				if !ok {
					return nil, fmt.Errorf("markup: missing argument for %q in path data", cmd)
				}
				v[i] = f
			}
			return v, nil
		}

		cubic, quad := false, false
		switch cmd {
		case 'Z', 'z':
			p.Close()
			cur = start
			sc.skipSep()
		case 'M', 'm':
			a, err := args(2)
			if err != nil {
				return p, err
			}
			cur = off(a[0], a[1])
			start = cur
			p.MoveTo(cur.X, cur.Y)
			// Extra coordinate pairs after a moveto are linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			a, err := args(2)
			if err != nil {
				return p, err
			}
			cur = off(a[0], a[1])
			p.LineTo(cur.X, cur.Y)
		case 'H', 'h':
			a, err := args(1)
			if err != nil {
				return p, err
			}
			if rel {
				cur.X += a[0]
			} else {
				cur.X = a[0]
			}
			p.LineTo(cur.X, cur.Y)
		case 'V', 'v':
			a, err := args(1)
			if err != nil {
				return p, err
			}
			if rel {
				cur.Y += a[0]
			} else {
				cur.Y = a[0]
			}
			p.LineTo(cur.X, cur.Y)
		case 'C', 'c':
			a, err := args(6)
			if err != nil {
				return p, err
			}
			c1, c2, end := off(a[0], a[1]), off(a[2], a[3]), off(a[4], a[5])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl, cur, cubic = c2, end, true
		case 'S', 's':
			a, err := args(4)
			if err != nil {
				return p, err
			}
			c1 := cur
			if lastCubic {
				c1 = gg.Pt(2*cur.X-lastCtrl.X, 2*cur.Y-lastCtrl.Y)
			}
			c2, end := off(a[0], a[1]), off(a[2], a[3])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl, cur, cubic = c2, end, true
		case 'Q', 'q':
			a, err := args(4)
			if err != nil {
				return p, err
			}
			c, end := off(a[0], a[1]), off(a[2], a[3])
			p.QuadTo(c.X, c.Y, end.X, end.Y)
			lastCtrl, cur, quad = c, end, true
		case 'T', 't':
			a, err := args(2)
			if err != nil {
				return p, err
			}
			c := cur
			if lastQuad {
				c = gg.Pt(2*cur.X-lastCtrl.X, 2*cur.Y-lastCtrl.Y)
			}
			end := off(a[0], a[1])
			p.QuadTo(c.X, c.Y, end.X, end.Y)
			lastCtrl, cur, quad = c, end, true
		case 'A', 'a':
			a, err := args(3)
			if err != nil {
				return p, err
			}
			large, ok1 := sc.flag()
			sweep, ok2 := sc.flag()
			if !ok1 || !ok2 {
				return p, fmt.Errorf("markup: bad arc flags in path data")
			}
			e, err := args(2)
			if err != nil {
				return p, err
			}
			end := off(e[0], e[1])
			arcTo(p, cur, end, a[0], a[1], a[2], large, sweep)
			cur = end
		}
		lastCubic, lastQuad = cubic, quad
	}
	return p, nil
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'Z', 'z', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
		return true
	}
	return false
}

// arcTo appends an elliptical arc from p0 to p1 as cubic Beziers, using the
// endpoint-to-center conversion of SVG 1.1 appendix F.6.
func arcTo(p *surface.Path, p0, p1 gg.Point, rx, ry, phiDeg float64, large, sweep bool) {
	if p0 == p1 {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(p1.X, p1.Y)
		return
	}
	phi := phiDeg * math.Pi / 180
	sin, cos := math.Sincos(phi)

	dx, dy := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	cx := cos*cx1 - sin*cy1 + (p0.X+p1.X)/2
	cy := sin*cx1 + cos*cy1 + (p0.Y+p1.Y)/2

	theta := vecAngle(1, 0, (x1-cx1)/rx, (y1-cy1)/ry)
	delta := vecAngle((x1-cx1)/rx, (y1-cy1)/ry, (-x1-cx1)/rx, (-y1-cy1)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	step := delta / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)
	point := func(t float64) (gg.Point, gg.Point) {
		st, ct := math.Sincos(t)
		pt := gg.Pt(cx+rx*ct*cos-ry*st*sin, cy+rx*ct*sin+ry*st*cos)
		d := gg.Pt(-rx*st*cos-ry*ct*sin, -rx*st*sin+ry*ct*cos)
		return pt, d
	}
	t := theta
	from, d0 := point(t)
	for i := 0; i < n; i++ {
		to, d1 := point(t + step)
		if i == n-1 {
			to = p1
		}
		p.CubicTo(from.X+k*d0.X, from.Y+k*d0.Y, to.X-k*d1.X, to.Y-k*d1.Y, to.X, to.Y)
		from, d0 = to, d1
		t += step
	}
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
