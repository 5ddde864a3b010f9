package colour

import (
	"github.com/charmbracelet/lipgloss"
)

const defaultPreviewWidth = 8

// Preview returns a solid colour block of the given width rendered with the
// current lipgloss colour profile.
func Preview(c RGB, width int) string {
	if width <= 0 {
		width = defaultPreviewWidth
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Width(width).
		Render("")
}

// PreviewWithText renders text on a background colour. When fg is nil the text
// colour is black or white, whichever contrasts more.
func PreviewWithText(bg RGB, fg *RGB, text string, width int) string {
	if width <= 0 {
		width = defaultPreviewWidth
	}

	textColour := ReadableOn(bg)
	if fg != nil {
		textColour = *fg
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(textColour.Hex())).
		Width(width).
		MaxWidth(width).
		Render(text)
}

// ReadableOn returns black or white, whichever has the higher contrast on bg.
func ReadableOn(bg RGB) RGB {
	white := RGB{R: 255, G: 255, B: 255}
	black := RGB{}
	if ContrastRatio(white, bg) >= ContrastRatio(black, bg) {
		return white
	}
	return black
}
