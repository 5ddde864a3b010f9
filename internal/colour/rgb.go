// Package colour provides the colour value types, hex formatting and contrast
// helpers shared by the palette, binding and presentation layers.
package colour

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jmylchreest/colorfinder/internal/security"
)

// Marker is the character conventionally prefixing a hex colour string.
const Marker = '#'

// InvalidHex is returned by ConvertRGBToHex when a channel is out of range.
const InvalidHex = "-1"

// RGB represents an opaque colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// RGBA represents a colour with an alpha channel, used for text colours that
// are composited over a swatch background.
type RGBA struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return ConvertRGBToHex(int(rgb.R), int(rgb.G), int(rgb.B))
}

// Color converts the RGB value to an opaque color.Color.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Opaque returns the colour with full alpha.
func (rgb RGB) Opaque() RGBA {
	return RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// String returns the colour in the format "rgba(r, g, b, a)" with a in [0,1].
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, float64(c.A)/255.0)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: security.SafeUint8FromUint32(r >> 8),
		G: security.SafeUint8FromUint32(g >> 8),
		B: security.SafeUint8FromUint32(b >> 8),
	}
}

// ConvertRGBToHex converts three 0-255 channels into a "#RRGGBB" string with
// uppercase digits in channel order. Any channel outside [0,255] yields
// InvalidHex.
func ConvertRGBToHex(r, g, b int) string {
	if !inByteRange(r) || !inByteRange(g) || !inByteRange(b) {
		return InvalidHex
	}
	return fmt.Sprintf("%c%02X%02X%02X", Marker, r, g, b)
}

func inByteRange(v int) bool {
	return v >= 0 && v <= 255
}

// CopyText derives the clipboard text for a hex string. The leading marker is
// stripped when includeMarker is false.
func CopyText(hex string, includeMarker bool) string {
	if includeMarker {
		return hex
	}
	return strings.TrimPrefix(hex, string(Marker))
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (either case) into an RGB value.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), string(Marker))
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 digits", s)
	}
	var rgb RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rgb.R, &rgb.G, &rgb.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return rgb, nil
}
