package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for content that is not a raster image
// format this package decodes.
var ErrUnsupportedFormat = errors.New("imagestore: unsupported image format")

// sniffLen is the number of leading bytes inspected to detect the format.
const sniffLen = 262

var supported = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
	"tif":  true,
}

// Decode reads an image, detecting its format from the content rather than
// from a name. It returns the decoded image and the detected extension.
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("imagestore: read: %w", err)
	}
	head := data[:min(len(data), sniffLen)]
	kind, err := filetype.Image(head)
	if err != nil || kind == filetype.Unknown || !supported[kind.Extension] {
		return nil, "", ErrUnsupportedFormat
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, kind.Extension, fmt.Errorf("imagestore: decode %s: %w", kind.Extension, err)
	}
	return img, kind.Extension, nil
}
