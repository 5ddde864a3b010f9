package palette

import (
	"github.com/jmylchreest/colorfinder/internal/colour"
)

const (
	minContrastBodyText  = 4.5
	minContrastTitleText = 3.0
)

var (
	white = colour.RGB{R: 255, G: 255, B: 255}
	black = colour.RGB{}
)

// Swatch is a representative colour together with the number of sampled
// pixels it stands for.
type Swatch struct {
	RGB        colour.RGB
	Population int

	hue, saturation, lightness float64

	textGenerated bool
	bodyText      colour.RGBA
	titleText     colour.RGBA
}

// NewSwatch builds a swatch and precomputes its HSL coordinates.
func NewSwatch(rgb colour.RGB, population int) *Swatch {
	h, s, l := colour.HSL(rgb)
	return &Swatch{
		RGB:        rgb,
		Population: population,
		hue:        h,
		saturation: s,
		lightness:  l,
	}
}

// HSL returns hue (0-360), saturation and lightness (0-1).
func (s *Swatch) HSL() (h, sat, l float64) {
	return s.hue, s.saturation, s.lightness
}

// Hex returns the swatch colour as "#RRGGBB".
func (s *Swatch) Hex() string {
	return s.RGB.Hex()
}

// BodyTextColor returns a white or black colour, with the lowest alpha that
// keeps 4.5:1 contrast on this swatch.
func (s *Swatch) BodyTextColor() colour.RGBA {
	s.ensureTextColors()
	return s.bodyText
}

// TitleTextColor returns a white or black colour, with the lowest alpha that
// keeps 3:1 contrast on this swatch.
func (s *Swatch) TitleTextColor() colour.RGBA {
	s.ensureTextColors()
	return s.titleText
}

// BodyTextRGB is BodyTextColor composited over the swatch, for renderers
// without alpha support.
func (s *Swatch) BodyTextRGB() colour.RGB {
	return colour.CompositeOver(s.BodyTextColor(), s.RGB)
}

func (s *Swatch) ensureTextColors() {
	if s.textGenerated {
		return
	}
	s.textGenerated = true

	lightBody := colour.MinimumAlpha(white, s.RGB, minContrastBodyText)
	lightTitle := colour.MinimumAlpha(white, s.RGB, minContrastTitleText)
	if lightBody != -1 && lightTitle != -1 {
		s.bodyText = withAlpha(white, lightBody)
		s.titleText = withAlpha(white, lightTitle)
		return
	}

	darkBody := colour.MinimumAlpha(black, s.RGB, minContrastBodyText)
	darkTitle := colour.MinimumAlpha(black, s.RGB, minContrastTitleText)
	if darkBody != -1 && darkTitle != -1 {
		s.bodyText = withAlpha(black, darkBody)
		s.titleText = withAlpha(black, darkTitle)
		return
	}

	// Mixed: pick whichever of white or black works for each role.
	if lightBody != -1 {
		s.bodyText = withAlpha(white, lightBody)
	} else {
		s.bodyText = withAlpha(black, darkBody)
	}
	if lightTitle != -1 {
		s.titleText = withAlpha(white, lightTitle)
	} else {
		s.titleText = withAlpha(black, darkTitle)
	}
}

func withAlpha(c colour.RGB, alpha int) colour.RGBA {
	if alpha < 0 {
		alpha = 255
	}
	return colour.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha)}
}
