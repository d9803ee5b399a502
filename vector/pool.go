package vector

import (
	"image"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-shape/surface"
)

// ResourcePool stores resources referenced by recording commands.
// Paths are cloned on Add so later edits by the caller do not leak into the
// recording; brushes, images and faces are immutable values.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	paths   []*surface.Path
	brushes []surface.Brush
	images  []image.Image
	fonts   []text.Face
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:   make([]*surface.Path, 0, 16),
		brushes: make([]surface.Brush, 0, 16),
	}
}

// AddPath adds a copy of path to the pool.
func (p *ResourcePool) AddPath(path *surface.Path) PathRef {
	if path != nil {
		path = path.Clone()
	}
	p.paths = append(p.paths, path)
	// #nosec G115 -- pool size is bounded by available memory
	return PathRef(uint32(len(p.paths) - 1))
}

// GetPath returns the path for ref, or nil.
func (p *ResourcePool) GetPath(ref PathRef) *surface.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// AddBrush adds a brush to the pool.
func (p *ResourcePool) AddBrush(b surface.Brush) BrushRef {
	p.brushes = append(p.brushes, b)
	// #nosec G115 -- pool size is bounded by available memory
	return BrushRef(uint32(len(p.brushes) - 1))
}

// GetBrush returns the brush for ref, or nil.
func (p *ResourcePool) GetBrush(ref BrushRef) surface.Brush {
	if int(ref) >= len(p.brushes) {
		return nil
	}
	return p.brushes[ref]
}

// AddImage adds an image to the pool.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory
	return ImageRef(uint32(len(p.images) - 1))
}

// GetImage returns the image for ref, or nil.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// AddFont adds a font face to the pool.
func (p *ResourcePool) AddFont(face text.Face) FontRef {
	p.fonts = append(p.fonts, face)
	// #nosec G115 -- pool size is bounded by available memory
	return FontRef(uint32(len(p.fonts) - 1))
}

// GetFont returns the face for ref, or nil.
func (p *ResourcePool) GetFont(ref FontRef) text.Face {
	if int(ref) >= len(p.fonts) {
		return nil
	}
	return p.fonts[ref]
}

// Counts returns the number of paths, brushes, images and fonts.
func (p *ResourcePool) Counts() (paths, brushes, images, fonts int) {
	return len(p.paths), len(p.brushes), len(p.images), len(p.fonts)
}
