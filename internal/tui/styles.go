package tui

import "github.com/charmbracelet/lipgloss"

// Styles defines all visual styles for the TUI
type Styles struct {
	Header    lipgloss.Style
	Origin    lipgloss.Style
	Footer    lipgloss.Style
	StatusBar lipgloss.Style
	Error     lipgloss.Style
	Toast     lipgloss.Style

	// Swatch rows
	Row         lipgloss.Style
	UnboundRow  lipgloss.Style
	Cursor      lipgloss.Style
	Checkbox    lipgloss.Style
	RowWidth    int
	CursorGlyph string

	// Modals
	PopupBorder lipgloss.Style
	PopupTitle  lipgloss.Style
	Link        lipgloss.Style
}

// DefaultStyles returns the default style configuration
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1),

		Origin: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1),

		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),

		Row: lipgloss.NewStyle().
			Padding(0, 1),

		UnboundRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),

		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),

		Checkbox: lipgloss.NewStyle().
			Padding(0, 1),

		RowWidth:    28,
		CursorGlyph: "›",

		PopupBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),

		PopupTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),

		Link: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true),
	}
}
