// Package fonts resolves font family names to gg text faces.
//
// A Resolver knows three kinds of families: fonts registered from memory,
// font files registered by path or discovered among the system fonts, and
// the built-in Go fonts used for generic families and as the fallback.
// Files are parsed on first use and cached.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gg-shape/internal/logger"
)

// ErrEmptyFamily is returned when registering a font without a family name.
var ErrEmptyFamily = errors.New("fonts: empty family name")

// generic maps CSS generic families to built-in families.
var generic = map[string]string{
	"sans-serif": "go",
	"serif":      "go",
	"system-ui":  "go",
	"cursive":    "go",
	"fantasy":    "go",
	"monospace":  "gomono",
}

// Resolver maps family names to font sources. It is safe for concurrent use.
type Resolver struct {
	mu       sync.Mutex
	sources  map[string]*text.FontSource
	files    map[string]fontscan.Location
	failed   map[string]bool
	fallback *text.FontSource
}

// New creates a resolver that knows the built-in Go fonts.
func New() (*Resolver, error) {
	r := &Resolver{
		sources: make(map[string]*text.FontSource),
		files:   make(map[string]fontscan.Location),
		failed:  make(map[string]bool),
	}
	if err := r.Register("Go", goregular.TTF); err != nil {
		return nil, err
	}
	if err := r.Register("Go Mono", gomono.TTF); err != nil {
		return nil, err
	}
	r.fallback = r.sources["go"]
	return r, nil
}

// Register parses font data and makes it available under family.
func (r *Resolver) Register(family string, data []byte) error {
	key := font.NormalizeFamily(family)
	if key == "" {
		return ErrEmptyFamily
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("fonts: register %q: %w", family, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[key] = src
	delete(r.files, key)
	delete(r.failed, key)
	return nil
}

// RegisterFile makes the font file at path available under family. The
// file is parsed on first use.
func (r *Resolver) RegisterFile(family, path string) error {
	key := font.NormalizeFamily(family)
	if key == "" {
		return ErrEmptyFamily
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("fonts: register %q: %w", family, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, key)
	delete(r.failed, key)
	r.files[key] = fontscan.Location{File: path}
	return nil
}

// UseSystemFonts adds the fonts installed on the system. Families already
// known keep their current font. cacheDir holds the font index between
// runs; an empty string uses the user cache directory.
func (r *Resolver) UseSystemFonts(cacheDir string) error {
	if cacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("fonts: %w", err)
		}
		cacheDir = dir
	}
	prints, err := fontscan.SystemFonts(scanLogger{}, cacheDir)
	if err != nil {
		return fmt.Errorf("fonts: scan system fonts: %w", err)
	}
	found := make(map[string]fontscan.Location)
	for _, fp := range prints {
		if _, ok := found[fp.Family]; !ok || upright(fp) {
			found[fp.Family] = fp.Location
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	added := 0
	for family, loc := range found {
		_, have := r.sources[family]
		_, pending := r.files[family]
		if have || pending {
			continue
		}
		r.files[family] = loc
		added++
	}
	logger.Get().Debug("fonts: system fonts indexed", "footprints", len(prints), "families", added)
	return nil
}

// upright reports whether fp is a regular weight, upright face, the one
// picked to represent its family.
func upright(fp fontscan.Footprint) bool {
	return fp.Aspect.Style == font.StyleNormal && fp.Aspect.Weight == font.WeightNormal
}

// Families returns the known family names, normalized (lower case, no
// spaces) and sorted.
func (r *Resolver) Families() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sources)+len(r.files))
	for k := range r.sources {
		out = append(out, k)
	}
	for k := range r.files {
		if _, ok := r.sources[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// ResolveFace returns a face of family at size. Unknown families resolve
// to the fallback font; ok is false only for a non-positive size.
func (r *Resolver) ResolveFace(family string, size float64) (text.Face, bool) {
	if size <= 0 {
		return nil, false
	}
	src := r.source(family)
	if src == nil {
		logger.Get().Debug("fonts: using fallback", "family", family)
		src = r.fallback
	}
	if src == nil {
		return nil, false
	}
	return src.Face(size), true
}

func (r *Resolver) source(family string) *text.FontSource {
	key := font.NormalizeFamily(family)
	if g, ok := generic[key]; ok {
		if _, own := r.lookup(key); !own {
			key = g
		}
	}
	src, _ := r.lookup(key)
	return src
}

// lookup returns the source registered under key, loading a pending file.
// known reports whether key names a family at all.
func (r *Resolver) lookup(key string) (src *text.FontSource, known bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sources[key]; ok {
		return s, true
	}
	loc, ok := r.files[key]
	if !ok || r.failed[key] {
		return nil, ok
	}
	var opts []text.SourceOption
	if loc.Index > 0 {
		opts = append(opts, text.WithCollectionIndex(int(loc.Index)))
	}
	s, err := text.NewFontSourceFromFile(loc.File, opts...)
	if err != nil {
		logger.Get().Warn("fonts: load failed", "family", key, "file", loc.File, "err", err)
		r.failed[key] = true
		return nil, true
	}
	r.sources[key] = s
	delete(r.files, key)
	return s, true
}

// scanLogger forwards fontscan messages to the package logger.
type scanLogger struct{}

func (scanLogger) Printf(format string, args ...interface{}) {
	logger.Get().Debug("fonts: " + fmt.Sprintf(format, args...))
}
