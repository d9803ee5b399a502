package markup

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// scanner walks a list of numbers separated by whitespace and/or a comma,
// as used by path data, points, viewBox and transform arguments.
type scanner struct {
	b []byte
	i int
}

func newScanner(s string) *scanner {
	return &scanner{b: []byte(s)}
}

func (s *scanner) skipSpace() {
	for s.i < len(s.b) && isSpace(s.b[s.i]) {
		s.i++
	}
}

// skipSep skips whitespace with at most one comma.
func (s *scanner) skipSep() {
	s.skipSpace()
	if s.i < len(s.b) && s.b[s.i] == ',' {
		s.i++
		s.skipSpace()
	}
}

func (s *scanner) done() bool {
	s.skipSpace()
	return s.i >= len(s.b)
}

// number reads one number and the separator after it.
func (s *scanner) number() (float64, bool) {
	s.skipSpace()
	v, n := strconv.ParseFloat(s.b[s.i:])
	if n == 0 {
		return 0, false
	}
	s.i += n
	s.skipSep()
	return v, true
}

// flag reads an arc flag, which may be written without a separator.
func (s *scanner) flag() (bool, bool) {
	s.skipSpace()
	if s.i >= len(s.b) || (s.b[s.i] != '0' && s.b[s.i] != '1') {
		return false, false
	}
	f := s.b[s.i] == '1'
	s.i++
	s.skipSep()
	return f, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// numbers parses a whole list of numbers. It returns false if anything
// other than numbers and separators is present.
func numbers(s string) ([]float64, bool) {
	sc := newScanner(s)
	var out []float64
	for !sc.done() {
		v, ok := sc.number()
		if !ok {
			return out, false
		}
		out = append(out, v)
	}
	return out, true
}

// unit sizes in px at 96 dpi.
var units = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
}

// length parses a length. Percentages are taken of ref; em and ex units
// are relative to fontSize.
func length(s string, ref, fontSize float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 {
		return 0, false
	}
	unit := strings.ToLower(strings.TrimSpace(s[n:]))
	switch unit {
	case "%":
		return v * ref / 100, true
	case "em":
		return v * fontSize, true
	case "ex":
		return v * fontSize / 2, true
	}
	k, ok := units[unit]
	if !ok {
		return 0, false
	}
	return v * k, true
}

// fraction parses a number or percentage into a fraction, as used by
// gradient offsets, opacities and object bounding box coordinates.
func fraction(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, n := strconv.ParseFloat([]byte(s[:len(s)-1]))
		if n == 0 || n != len(s)-1 {
			return 0, false
		}
		return v / 100, true
	}
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0, false
	}
	return v, true
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
