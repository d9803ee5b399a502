// Package imagestore keeps decoded raster images by id.
//
// A Store is safe for concurrent use. Lookups of ids that are not (yet)
// loaded simply report false; callers treat that as a transient state.
package imagestore

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	"github.com/gogpu/gg-shape/internal/logger"
)

// Store maps image ids to decoded images.
type Store struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// New creates an empty store.
func New() *Store {
	return &Store{images: make(map[string]image.Image)}
}

// Put stores img under id, replacing any previous image.
func (s *Store) Put(id string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = img
}

// Get returns the image stored under id.
func (s *Store) Get(id string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	return img, ok
}

// Delete removes id from the store.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, id)
}

// Len returns the number of stored images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Load decodes an image from r and stores it under id. Decoding happens
// outside the lock.
func (s *Store) Load(id string, r io.Reader) error {
	img, format, err := Decode(r)
	if err != nil {
		return fmt.Errorf("imagestore: load %q: %w", id, err)
	}
	s.Put(id, img)
	b := img.Bounds()
	logger.Get().Debug("imagestore: loaded", "id", id, "format", format, "width", b.Dx(), "height", b.Dy())
	return nil
}

// LoadFile decodes the file at path and stores it under id.
func (s *Store) LoadFile(id, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("imagestore: %w", err)
	}
	defer f.Close()
	return s.Load(id, f)
}
