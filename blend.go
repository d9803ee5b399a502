package shape

import (
	"fmt"

	"github.com/gogpu/gg"
)

// BlendMode describes how a shape's layer combines with the content below.
type BlendMode uint8

// Blend modes.
const (
	BlendNormal BlendMode = iota
	BlendDarken
	BlendMultiply
	BlendColorBurn
	BlendLighten
	BlendScreen
	BlendColorDodge
	BlendOverlay
	BlendSoftLight
	BlendHardLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendNames = [...]string{
	BlendNormal:     "normal",
	BlendDarken:     "darken",
	BlendMultiply:   "multiply",
	BlendColorBurn:  "color-burn",
	BlendLighten:    "lighten",
	BlendScreen:     "screen",
	BlendColorDodge: "color-dodge",
	BlendOverlay:    "overlay",
	BlendSoftLight:  "soft-light",
	BlendHardLight:  "hard-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
	BlendHue:        "hue",
	BlendSaturation: "saturation",
	BlendColor:      "color",
	BlendLuminosity: "luminosity",
}

// String returns the CSS name of the mode.
func (m BlendMode) String() string {
	if int(m) < len(blendNames) {
		return blendNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", m)
}

// ParseBlendMode returns the mode with the given CSS name. The empty string
// is normal.
func ParseBlendMode(s string) (BlendMode, error) {
	if s == "" {
		return BlendNormal, nil
	}
	for i, name := range blendNames {
		if name == s {
			return BlendMode(i), nil
		}
	}
	return BlendNormal, fmt.Errorf("shape: unknown blend mode %q", s)
}

// GG returns the gg layer blend mode for m. ok is false when gg has no
// equivalent, in which case normal blending is returned.
func (m BlendMode) GG() (mode gg.BlendMode, ok bool) {
	switch m {
	case BlendNormal:
		return gg.BlendNormal, true
	case BlendMultiply:
		return gg.BlendMultiply, true
	case BlendScreen:
		return gg.BlendScreen, true
	case BlendOverlay:
		return gg.BlendOverlay, true
	}
	return gg.BlendNormal, false
}
