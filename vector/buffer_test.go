package vector

import (
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/markup"
	"github.com/gogpu/gg-shape/surface"
)

func TestBufferEnd(t *testing.T) {
	// A shape with bounds {-5,-5,5,5} gets an 11x11 buffer shifted by (5,5).
	b := NewBuffer(11, 11)
	b.Concat(gg.Translate(5, 5))
	b.DrawOval(surface.Rect{Left: -5, Top: -5, Right: 5, Bottom: 5}, surface.NewPaint(surface.Solid(gg.Red)))

	out, err := b.End()
	if err != nil {
		t.Fatalf("End error: %v", err)
	}
	doc, err := markup.Parse(out)
	if err != nil {
		t.Fatalf("Parse(End()) error: %v", err)
	}
	if w, _ := doc.Root.Attr("width"); w != "11" {
		t.Errorf("width = %q, want 11", w)
	}
	path := doc.Find("path")
	if path == nil {
		t.Fatal("no <path> in buffer output")
	}
	if got, _ := path.Attr("transform"); got != "matrix(1 0 0 1 5 5)" {
		t.Errorf("transform = %q, want translate by (5,5)", got)
	}
	if _, ok := path.Attr("fill-rule"); ok {
		t.Error("buffer output already has a fill-rule")
	}
}

func TestBufferIsCanvas(t *testing.T) {
	var c surface.Canvas = NewBuffer(1, 1)
	c.Save()
	if c.SaveCount() != 1 {
		t.Errorf("SaveCount() = %d, want 1", c.SaveCount())
	}
	c.Restore()
}
