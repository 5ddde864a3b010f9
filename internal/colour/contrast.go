package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	rf := gammaCorrect(float64(rgb.R) / 255.0)
	rg := gammaCorrect(float64(rgb.G) / 255.0)
	rb := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*rf + 0.7152*rg + 0.0722*rb
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two opaque colours
// according to WCAG 2.0. Returns a value between 1 and 21.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// CompositeOver blends a translucent foreground over an opaque background.
func CompositeOver(fg RGBA, bg RGB) RGB {
	a := float64(fg.A) / 255.0
	blend := func(f, b uint8) uint8 {
		return uint8(math.Round(float64(f)*a + float64(b)*(1-a)))
	}
	return RGB{
		R: blend(fg.R, bg.R),
		G: blend(fg.G, bg.G),
		B: blend(fg.B, bg.B),
	}
}

const (
	minAlphaSearchMaxIterations = 10
	minAlphaSearchPrecision     = 1
)

// MinimumAlpha finds the lowest alpha for fg over bg that still reaches
// minContrast. Returns -1 when fg at full opacity does not reach it.
func MinimumAlpha(fg RGB, bg RGB, minContrast float64) int {
	if ContrastRatio(fg, bg) < minContrast {
		return -1
	}

	minAlpha, maxAlpha := 0, 255
	for i := 0; i <= minAlphaSearchMaxIterations && maxAlpha-minAlpha > minAlphaSearchPrecision; i++ {
		alpha := (minAlpha + maxAlpha) / 2
		test := CompositeOver(RGBA{R: fg.R, G: fg.G, B: fg.B, A: uint8(alpha)}, bg)
		if ContrastRatio(test, bg) < minContrast {
			minAlpha = alpha
		} else {
			maxAlpha = alpha
		}
	}

	return maxAlpha
}

// HSL returns hue (0-360), saturation (0-1) and lightness (0-1).
func HSL(rgb RGB) (h, s, l float64) {
	c, _ := colorful.MakeColor(rgb.Color())
	return c.Hsl()
}
