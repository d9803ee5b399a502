package vector

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg-shape/internal/logger"
)

// Buffer is an offscreen canvas whose drawing serializes to SVG.
//
// A Buffer is created for one drawing pass and finished with End.
type Buffer struct {
	*Recorder
}

// NewBuffer creates a buffer of the given size.
func NewBuffer(width, height float64) *Buffer {
	logger.Get().Debug("vector: buffer", "width", width, "height", height)
	return &Buffer{Recorder: NewRecorder(width, height)}
}

// End finishes the buffer and returns its SVG serialization.
func (b *Buffer) End() ([]byte, error) {
	svg := NewSVGBackend()
	if err := b.FinishRecording().Playback(svg); err != nil {
		return nil, fmt.Errorf("vector: serialize buffer: %w", err)
	}
	var out bytes.Buffer
	if _, err := svg.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("vector: serialize buffer: %w", err)
	}
	return out.Bytes(), nil
}
