package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/gg-shape/surface"
	"github.com/gogpu/gg-shape/vector"
)

func TestBackendRegistration(t *testing.T) {
	if _, ok := vector.Lookup("raster"); !ok {
		t.Fatal("raster format not registered")
	}
	b, err := vector.NewBackend("raster")
	if err != nil {
		t.Fatalf("NewBackend(raster) error: %v", err)
	}
	if _, ok := b.(*Backend); !ok {
		t.Fatalf("NewBackend(raster) = %T, want *raster.Backend", b)
	}
}

func TestBackendEmptySize(t *testing.T) {
	if err := NewBackend().Begin(0, 10); err == nil {
		t.Error("Begin(0, 10) error = nil, want error")
	}
}

func TestBackendPlayback(t *testing.T) {
	rec := vector.NewRecorder(20, 20)
	rec.Save()
	rec.Concat(gg.Translate(10, 0))
	rec.DrawRect(surface.XYWH(0, 0, 10, 10), surface.NewPaint(surface.Solid(gg.Red)))
	rec.Restore()

	b := NewBackend()
	if err := rec.FinishRecording().Playback(b); err != nil {
		t.Fatalf("Playback error: %v", err)
	}

	img := b.Image()
	if got := img.Bounds().Dx(); got != 20 {
		t.Fatalf("image width = %d, want 20", got)
	}
	at := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
	if c := at(15, 5); c.R < 200 || c.A < 200 {
		t.Errorf("translated pixel = %v, want red", c)
	}
	if c := at(5, 5); c.A != 0 {
		t.Errorf("untouched pixel = %v, want transparent", c)
	}

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo n = %d, want %d", n, buf.Len())
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}
