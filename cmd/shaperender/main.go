// Command shaperender renders a TOML scene of shapes to PNG or SVG.
//
// Usage:
//
//	shaperender -scene scene.toml -output out.png
//	shaperender -scene scene.toml -output out.svg
//	shaperender -scene scene.toml -format raster -output out.bin
//
// Formats: png draws directly with layer opacity and blending; svg and raster
// replay a recording through the vector backends of the same name. Without
// -format the output file extension decides.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	shape "github.com/gogpu/gg-shape"
	"github.com/gogpu/gg-shape/fit"
	"github.com/gogpu/gg-shape/fonts"
	"github.com/gogpu/gg-shape/imagestore"
	"github.com/gogpu/gg-shape/markup"
	"github.com/gogpu/gg-shape/surface"
	"github.com/gogpu/gg-shape/vector"
	_ "github.com/gogpu/gg-shape/vector/backends/raster"
)

const defaultSize = 512

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("shaperender: %v", err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("shaperender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scenePath   = fs.String("scene", "scene.toml", "scene file")
		output      = fs.String("output", "out.png", "output file")
		format      = fs.String("format", "", "output format: png, svg or raster (default: from -output)")
		width       = fs.Int("width", 0, "output width (default: scene width)")
		height      = fs.Int("height", 0, "output height (default: scene height)")
		fitPolicy   = fs.String("fit", "", "image fit policy: cover, contain, stretch or center")
		systemFonts = fs.Bool("system-fonts", false, "resolve font families against installed fonts")
		verbose     = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	shape.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer shape.SetLogger(nil)

	sc, err := LoadScene(*scenePath)
	if err != nil {
		return err
	}
	w, h := pick(*width, sc.Width), pick(*height, sc.Height)
	if *fitPolicy != "" {
		sc.Fit = *fitPolicy
	}

	name, err := outputFormat(*format, *output)
	if err != nil {
		return err
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	n, err := render(sc, name, w, h, *systemFonts, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	shape.Logger().Info("scene rendered", "output", *output, "format", name, "width", w, "height", h, "bytes", n)
	return nil
}

// outputFormat resolves the -format flag, falling back to the extension of
// the output file. Unknown formats fail before the output file is created.
func outputFormat(flagValue, output string) (string, error) {
	name := flagValue
	if name == "" {
		ext := strings.ToLower(filepath.Ext(output))
		switch f, ok := vector.FormatForExt(ext); {
		case ext == "" || ext == ".png":
			name = "png"
		case ok:
			name = f.Name
		default:
			return "", fmt.Errorf("cannot infer format from %q, use -format", output)
		}
	}
	if name == "png" {
		return name, nil
	}
	if _, ok := vector.Lookup(name); !ok {
		return "", fmt.Errorf("unknown format %q", name)
	}
	return name, nil
}

func pick(flagValue, sceneValue int) int {
	switch {
	case flagValue > 0:
		return flagValue
	case sceneValue > 0:
		return sceneValue
	}
	return defaultSize
}

// render draws the scene and writes it to out in the given format.
func render(sc *Scene, format string, w, h int, systemFonts bool, out io.Writer) (int64, error) {
	shapes, err := sc.BuildShapes()
	if err != nil {
		return 0, err
	}
	policy := fit.Cover
	if sc.Fit != "" {
		if policy, err = fit.ParsePolicy(sc.Fit); err != nil {
			return 0, err
		}
	}

	images := imagestore.New()
	for _, im := range sc.Images {
		// A missing image leaves its fills empty; keep going.
		if err := images.LoadFile(im.ID, sc.Resolve(im.File)); err != nil {
			shape.Logger().Warn("image not loaded", "id", im.ID, "err", err)
		}
	}
	resolver, err := fonts.New()
	if err != nil {
		return 0, err
	}
	for _, fd := range sc.Fonts {
		if err := resolver.RegisterFile(fd.Family, sc.Resolve(fd.File)); err != nil {
			return 0, err
		}
	}
	if systemFonts {
		if err := resolver.UseSystemFonts(""); err != nil {
			shape.Logger().Warn("system fonts unavailable", "err", err)
		}
	}

	r := shape.NewRenderer(shape.WithContainerFit(shape.FitPolicy(policy)))
	comp, err := newComposer(shapes, r, images, resolver)
	if err != nil {
		return 0, err
	}

	var bg gg.RGBA
	hasBG := sc.Background != ""
	if hasBG {
		var ok bool
		if bg, ok = markup.ParseColor(sc.Background); !ok {
			return 0, fmt.Errorf("scene: bad background %q", sc.Background)
		}
	}

	if format == "png" {
		dc := gg.NewContext(w, h)
		defer dc.Close()
		if hasBG {
			dc.ClearWithColor(bg)
		}
		comp.layers = dc
		if err := comp.draw(surface.NewContextCanvas(dc)); err != nil {
			return 0, err
		}
		cw := &countingWriter{w: out}
		err := dc.EncodePNG(cw)
		return cw.n, err
	}

	wb, err := vector.NewBackend(format)
	if err != nil {
		return 0, err
	}
	rec := vector.NewRecorder(float64(w), float64(h))
	if hasBG {
		rec.DrawRect(surface.XYWH(0, 0, float64(w), float64(h)), surface.NewPaint(surface.Solid(bg)))
	}
	if err := comp.draw(rec); err != nil {
		return 0, err
	}
	if err := rec.FinishRecording().Playback(wb); err != nil {
		return 0, err
	}
	return wb.WriteTo(out)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
