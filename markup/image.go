package markup

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"net/url"
	"strings"

	"github.com/gogpu/gg-shape/imagestore"
	"github.com/gogpu/gg-shape/internal/logger"
	"github.com/gogpu/gg-shape/surface"
)

// errNotDataURL is returned for image references that are not data URLs.
// Documents are rendered without filesystem or network access.
var errNotDataURL = errors.New("markup: only data URLs are supported")

// image renders an <image> element.
func (r *renderer) image(e *Element, st style) {
	if st.hidden {
		return
	}
	ref, ok := e.Attr("href")
	if !ok {
		ref, ok = e.Attr("xlink:href")
	}
	if !ok {
		return
	}
	img, err := decodeDataURL(ref)
	if err != nil {
		logger.Get().Warn("markup: image not drawn", "err", err)
		return
	}
	b := img.Bounds()
	x, y, w, h := r.imageBox(e, st, float64(b.Dx()), float64(b.Dy()))
	if w <= 0 || h <= 0 || b.Empty() {
		return
	}
	dst := surface.XYWH(x, y, w, h)
	aspect, _ := e.Attr("preserveAspectRatio")

	c := r.canvas
	c.Save()
	defer c.Restore()
	m, clip := viewBoxTransform(surface.XYWH(0, 0, float64(b.Dx()), float64(b.Dy())), dst, aspect)
	if clip {
		c.ClipPath(rectPath(dst))
	}
	c.Concat(m)
	c.DrawImage(img, surface.XYWH(0, 0, float64(b.Dx()), float64(b.Dy())), surface.Paint{Opacity: st.opacity})
}

// imageBox returns the placement of an image; missing sizes fall back to
// the natural size nw x nh.
func (r *renderer) imageBox(e *Element, st style, nw, nh float64) (x, y, w, h float64) {
	vp := r.dom.viewport
	x = r.lengthAttr(e, "x", vp.Width(), st)
	y = r.lengthAttr(e, "y", vp.Height(), st)
	var ok bool
	if w, ok = r.lengthAttrOK(e, "width", vp.Width(), st); !ok {
		w = nw
	}
	if h, ok = r.lengthAttrOK(e, "height", vp.Height(), st); !ok {
		h = nh
	}
	return x, y, w, h
}

// decodeDataURL decodes an image from a data: URL.
func decodeDataURL(ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, "data:") {
		return nil, errNotDataURL
	}
	meta, payload, ok := strings.Cut(ref[len("data:"):], ",")
	if !ok {
		return nil, errors.New("markup: malformed data URL")
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		clean := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		var err error
		if data, err = base64.StdEncoding.DecodeString(clean); err != nil {
			if data, err = base64.RawStdEncoding.DecodeString(clean); err != nil {
				return nil, err
			}
		}
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, err
		}
		data = []byte(s)
	}
	img, _, err := imagestore.Decode(bytes.NewReader(data))
	return img, err
}
