package markup

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gg-shape/surface"
)

func seg(v gg.PathVerb, pts ...gg.Point) surface.Segment {
	return surface.Segment{Verb: v, Pts: pts}
}

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []surface.Segment
	}{
		{
			name: "absolute with implicit lineto",
			d:    "M0 0 L10 0 10 10 Z",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(0, 0)),
				seg(gg.LineTo, gg.Pt(10, 0)),
				seg(gg.LineTo, gg.Pt(10, 10)),
				seg(gg.Close),
			},
		},
		{
			name: "relative moveto pairs",
			d:    "m1 1 2 0 0 2",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(1, 1)),
				seg(gg.LineTo, gg.Pt(3, 1)),
				seg(gg.LineTo, gg.Pt(3, 3)),
			},
		},
		{
			name: "horizontal and vertical",
			d:    "M1,2H5V7h-1v-2",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(1, 2)),
				seg(gg.LineTo, gg.Pt(5, 2)),
				seg(gg.LineTo, gg.Pt(5, 7)),
				seg(gg.LineTo, gg.Pt(4, 7)),
				seg(gg.LineTo, gg.Pt(4, 5)),
			},
		},
		{
			name: "compact numbers",
			d:    "M.5-.5l1.5.5",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(0.5, -0.5)),
				seg(gg.LineTo, gg.Pt(2, 0)),
			},
		},
		{
			name: "smooth cubic reflects control",
			d:    "M0 0 C0 10 10 10 10 0 S20 -10 20 0",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(0, 0)),
				seg(gg.CubicTo, gg.Pt(0, 10), gg.Pt(10, 10), gg.Pt(10, 0)),
				seg(gg.CubicTo, gg.Pt(10, -10), gg.Pt(20, -10), gg.Pt(20, 0)),
			},
		},
		{
			name: "smooth cubic without previous cubic",
			d:    "M0 0 S5 5 10 0",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(0, 0)),
				seg(gg.CubicTo, gg.Pt(0, 0), gg.Pt(5, 5), gg.Pt(10, 0)),
			},
		},
		{
			name: "smooth quadratic",
			d:    "M0 0 Q5 5 10 0 T20 0",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(0, 0)),
				seg(gg.QuadTo, gg.Pt(5, 5), gg.Pt(10, 0)),
				seg(gg.QuadTo, gg.Pt(15, -5), gg.Pt(20, 0)),
			},
		},
		{
			name: "close returns to subpath start",
			d:    "M2 2 L4 2 z l1 0",
			want: []surface.Segment{
				seg(gg.MoveTo, gg.Pt(2, 2)),
				seg(gg.LineTo, gg.Pt(4, 2)),
				seg(gg.Close),
				seg(gg.LineTo, gg.Pt(3, 2)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePathData(tt.d)
			if err != nil {
				t.Fatalf("ParsePathData(%q) error: %v", tt.d, err)
			}
			if diff := cmp.Diff(tt.want, p.Segments()); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		d         string
		wantEmpty bool
	}{
		{"5 5", true},
		{"M0 0 L1", false},
		{"M0 0 Z 5", false},
		{"M0 0 A1 1 0 2 0 3 3", false},
	}
	for _, tt := range tests {
		p, err := ParsePathData(tt.d)
		if err == nil {
			t.Errorf("ParsePathData(%q) error = nil", tt.d)
			continue
		}
		if p.IsEmpty() != tt.wantEmpty {
			t.Errorf("ParsePathData(%q) partial path empty = %v, want %v", tt.d, p.IsEmpty(), tt.wantEmpty)
		}
	}
}

func TestParsePathDataArc(t *testing.T) {
	p, err := ParsePathData("M0 0 A10 10 0 0 1 20 0")
	if err != nil {
		t.Fatal(err)
	}
	end := p.CurrentPoint()
	if end != gg.Pt(20, 0) {
		t.Errorf("arc ends at %v, want (20,0)", end)
	}
	b := p.Bounds()
	if b.Top > -9 || b.Bottom > 0.001 {
		t.Errorf("arc bounds = %+v, want upper half circle", b)
	}

	// Compact flags.
	q, err := ParsePathData("M0 0a10 10 0 0120 0")
	if err != nil {
		t.Fatal(err)
	}
	if got := q.CurrentPoint(); math.Abs(got.X-20) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("compact arc ends at %v, want (20,0)", got)
	}

	// A zero radius degrades to a line.
	l, err := ParsePathData("M0 0 A0 5 0 0 1 4 4")
	if err != nil {
		t.Fatal(err)
	}
	want := []surface.Segment{seg(gg.MoveTo, gg.Pt(0, 0)), seg(gg.LineTo, gg.Pt(4, 4))}
	if diff := cmp.Diff(want, l.Segments()); diff != "" {
		t.Errorf("zero radius arc (-want +got):\n%s", diff)
	}
}
