package fit

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gg-shape/surface"
	"github.com/gogpu/gg-shape/vector"
)

func TestPolicyDest(t *testing.T) {
	box := surface.XYWH(0, 0, 100, 50)
	tests := []struct {
		policy  Policy
		natural Size
		want    surface.Rect
	}{
		{Cover, Size{200, 200}, surface.Rect{Left: 0, Top: -25, Right: 100, Bottom: 75}},
		{Cover, Size{10, 50}, surface.Rect{Left: 0, Top: -225, Right: 100, Bottom: 275}},
		{Contain, Size{200, 200}, surface.Rect{Left: 25, Top: 0, Right: 75, Bottom: 50}},
		{Contain, Size{400, 100}, surface.Rect{Left: 0, Top: 12.5, Right: 100, Bottom: 37.5}},
		{Stretch, Size{7, 3}, box},
		{Center, Size{20, 10}, surface.Rect{Left: 40, Top: 20, Right: 60, Bottom: 30}},
		{Cover, Size{}, box},
		{Contain, Size{0, 10}, box},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			if got := tt.policy.Dest(tt.natural, box); got != tt.want {
				t.Errorf("Dest(%v) = %+v, want %+v", tt.natural, got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{Cover, Contain, Stretch, Center} {
		got, err := ParsePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePolicy(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
	if _, err := ParsePolicy("tile"); err == nil {
		t.Error("ParsePolicy(tile) returned nil error")
	}
	if s := Policy(9).String(); s != "Policy(9)" {
		t.Errorf("String() = %q, want Policy(9)", s)
	}
}

func TestDrawClipsToFootprint(t *testing.T) {
	rec := vector.NewRecorder(100, 100)
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	footprint := surface.NewPath()
	footprint.Ellipse(surface.XYWH(10, 10, 40, 40))

	Draw(rec, img, Size{}, footprint, surface.XYWH(10, 10, 40, 40), Cover, surface.Paint{Opacity: 0.5})
	if rec.SaveCount() != 0 {
		t.Errorf("SaveCount() = %d, want 0", rec.SaveCount())
	}

	r := rec.FinishRecording()
	var types []vector.CommandType
	for _, c := range r.Commands() {
		types = append(types, c.Type())
	}
	want := []vector.CommandType{vector.CmdSave, vector.CmdSetClip, vector.CmdDrawImage, vector.CmdRestore}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	clip := r.Commands()[1].(vector.SetClipCommand)
	if diff := cmp.Diff(footprint.Segments(), r.Resources().GetPath(clip.Path).Segments()); diff != "" {
		t.Errorf("clip path mismatch (-want +got):\n%s", diff)
	}
	draw := r.Commands()[2].(vector.DrawImageCommand)
	wantDst := surface.Rect{Left: -10, Top: 10, Right: 70, Bottom: 50}
	if draw.Dst != wantDst {
		t.Errorf("Dst = %+v, want %+v", draw.Dst, wantDst)
	}
	if draw.Opacity != 0.5 {
		t.Errorf("Opacity = %v, want 0.5", draw.Opacity)
	}
}

func TestDrawNaturalSizeOverridesPixels(t *testing.T) {
	rec := vector.NewRecorder(100, 100)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	Draw(rec, img, Size{40, 20}, nil, surface.XYWH(0, 0, 40, 40), Contain, surface.NewPaint(nil))

	r := rec.FinishRecording()
	for _, c := range r.Commands() {
		if d, ok := c.(vector.DrawImageCommand); ok {
			want := surface.Rect{Left: 0, Top: 10, Right: 40, Bottom: 30}
			if d.Dst != want {
				t.Errorf("Dst = %+v, want %+v", d.Dst, want)
			}
			return
		}
	}
	t.Error("no DrawImage command recorded")
}

func TestDrawSkipsEmpty(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		box  surface.Rect
	}{
		{"nil image", nil, surface.XYWH(0, 0, 10, 10)},
		{"empty box", image.NewRGBA(image.Rect(0, 0, 1, 1)), surface.XYWH(0, 0, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := vector.NewRecorder(10, 10)
			Draw(rec, tt.img, Size{}, nil, tt.box, Cover, surface.NewPaint(nil))
			if n := len(rec.FinishRecording().Commands()); n != 0 {
				t.Errorf("recorded %d commands, want 0", n)
			}
		})
	}
}
