package vector

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Format is a named output format backed by a WriterBackend.
type Format struct {
	// Name selects the format, for example "svg".
	Name string
	// Ext is the file extension including the dot. It may be empty.
	Ext string
	// New returns a fresh backend for one playback.
	New func() WriterBackend
}

var (
	registryMu sync.RWMutex
	formats    = make(map[string]Format)
)

// Register makes a format available by name. It is meant to be called from
// init and panics on an empty name, a nil New, or a name or extension that
// is already taken, so conflicting registrations surface at program start.
func Register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if f.Name == "" {
		panic("vector: Register with empty format name")
	}
	if f.New == nil {
		panic("vector: Register " + f.Name + " without a backend constructor")
	}
	if _, dup := formats[f.Name]; dup {
		panic("vector: Register called twice for " + f.Name)
	}
	f.Ext = strings.ToLower(f.Ext)
	if f.Ext != "" {
		for _, other := range formats {
			if other.Ext == f.Ext {
				panic("vector: extension " + f.Ext + " already used by " + other.Name)
			}
		}
	}
	formats[f.Name] = f
}

// Unregister removes a format. It exists for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(formats, name)
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := formats[name]
	return f, ok
}

// FormatForExt returns the format writing files with extension ext
// (".svg" or "svg"). Case is ignored.
func FormatForExt(ext string) (Format, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, f := range formats {
		if ext != "" && f.Ext == ext {
			return f, true
		}
	}
	return Format{}, false
}

// NewBackend creates a backend for the named format.
func NewBackend(name string) (WriterBackend, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("vector: unknown format %q (forgotten import?)", name)
	}
	return f.New(), nil
}

// Formats returns the registered formats sorted by name.
func Formats() []Format {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Format) int { return strings.Compare(a.Name, b.Name) })
	return out
}
