// Package vector records drawing operations so they can be replayed to
// different backends.
//
// A Recorder implements surface.Canvas. Instead of producing pixels it
// stores the calls as commands, which a Recording replays to any Backend:
//
//	rec := vector.NewRecorder(100, 100)
//	rec.DrawRect(surface.XYWH(10, 10, 50, 50), surface.NewPaint(surface.Solid(gg.Red)))
//	r := rec.FinishRecording()
//	svg := vector.NewSVGBackend()
//	_ = r.Playback(svg)
//	svg.WriteTo(os.Stdout)
//
// Buffer is a Recorder that serializes itself to SVG with End. It is the
// offscreen target used when a shape's fills need their markup rewritten
// before they reach the real canvas.
//
// # Backends
//
// Backends are looked up by output format. The svg format is built in;
// others register a Format in init, following the database/sql driver
// pattern:
//
//	import _ "github.com/gogpu/gg-shape/vector/backends/raster"
//
//	b, err := vector.NewBackend("raster")
package vector
