// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
)

func TestPath_DefaultRule(t *testing.T) {
	if got := NewPath().Rule; got != FillRuleNonZero {
		t.Errorf("NewPath().Rule = %v, want nonzero", got)
	}
}

func TestFillRule_String(t *testing.T) {
	if got := FillRuleEvenOdd.String(); got != "evenodd" {
		t.Errorf("FillRuleEvenOdd.String() = %q", got)
	}
	if got := FillRuleNonZero.String(); got != "nonzero" {
		t.Errorf("FillRuleNonZero.String() = %q", got)
	}
}

func TestPath_LineToWithoutMoveTo(t *testing.T) {
	p := NewPath()
	p.LineTo(3, 4)
	want := []Segment{{Verb: gg.MoveTo, Pts: []gg.Point{gg.Pt(3, 4)}}}
	if diff := cmp.Diff(want, p.Segments()); diff != "" {
		t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
	}
}

func TestPath_Bounds(t *testing.T) {
	p := NewPath()
	p.MoveTo(-5, 2)
	p.LineTo(4, -3)
	p.CubicTo(10, 0, 0, 10, 1, 1)
	p.Close()

	want := Rect{Left: -5, Top: -3, Right: 10, Bottom: 10}
	if diff := cmp.Diff(want, p.Bounds()); diff != "" {
		t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
	}
	if got := NewPath().Bounds(); got != (Rect{}) {
		t.Errorf("empty Bounds() = %v, want zero", got)
	}
}

func TestPath_CloneKeepsRule(t *testing.T) {
	p := NewPath()
	p.Rectangle(XYWH(0, 0, 1, 1))
	p.Rule = FillRuleEvenOdd

	c := p.Clone()
	c.LineTo(9, 9)
	if c.Rule != FillRuleEvenOdd {
		t.Errorf("Clone().Rule = %v, want evenodd", c.Rule)
	}
	if len(p.Segments()) == len(c.Segments()) {
		t.Error("modifying the clone changed the original")
	}
}

func TestPath_TransformAndAppend(t *testing.T) {
	p := NewPath()
	p.Rectangle(XYWH(0, 0, 2, 2))
	moved := p.Transform(gg.Translate(10, 20))
	if got, want := moved.Bounds(), XYWH(10, 20, 2, 2); got != want {
		t.Errorf("Transform bounds = %v, want %v", got, want)
	}

	p.Append(moved)
	if got, want := p.Bounds(), (Rect{Left: 0, Top: 0, Right: 12, Bottom: 22}); got != want {
		t.Errorf("Append bounds = %v, want %v", got, want)
	}
}

func TestRect(t *testing.T) {
	r := Rect{Left: -5, Top: -5, Right: 5, Bottom: 5}
	if c := r.Center(); c.X != 0 || c.Y != 0 {
		t.Errorf("Center() = %v, want origin", c)
	}
	if r.Width() != 10 || r.Height() != 10 {
		t.Errorf("size = %vx%v, want 10x10", r.Width(), r.Height())
	}

	degenerate := Rect{Left: 4, Top: 7, Right: 4, Bottom: 7}
	if !degenerate.IsEmpty() {
		t.Error("degenerate rect should be empty")
	}
	if c := degenerate.Center(); c.X != 4 || c.Y != 7 {
		t.Errorf("degenerate Center() = %v, want (4,7)", c)
	}

	rotated := XYWH(0, 0, 2, 1).Transform(gg.Rotate(0))
	if rotated != XYWH(0, 0, 2, 1) {
		t.Errorf("identity Transform() = %v", rotated)
	}
	if got := XYWH(0, 0, 2, 2).Outset(1); got != XYWH(-1, -1, 4, 4) {
		t.Errorf("Outset(1) = %v", got)
	}
}
