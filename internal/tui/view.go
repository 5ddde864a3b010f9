package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/colorfinder/internal/about"
	"github.com/jmylchreest/colorfinder/internal/binding"
	"github.com/jmylchreest/colorfinder/internal/permission"
)

// View implements tea.Model
func (m Model) View() string {
	switch m.state {
	case StateFiles:
		return m.viewFiles()
	case StatePermission:
		return m.viewPermission()
	case StateAdvisory:
		return m.viewAdvisory()
	case StateAbout:
		return m.viewAbout()
	}
	return m.viewMain()
}

func (m Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(about.Title))
	b.WriteString("\n")
	origin := m.origin
	if origin == "" {
		origin = "No image selected"
	}
	b.WriteString(m.styles.Origin.Render(origin))
	b.WriteString("\n\n")

	for i, bd := range m.bindings {
		b.WriteString(m.renderRow(bd, i == m.selected))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Checkbox.Render(checkbox(m.copyHashtag) + " Copy with #"))
	b.WriteString("\n")

	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderRow(bd binding.Binding, selected bool) string {
	cursor := " "
	if selected {
		cursor = m.styles.Cursor.Render(m.styles.CursorGlyph)
	}

	var row string
	if bd.Bound {
		row = m.styles.Row.
			Background(lipgloss.Color(bd.Hex)).
			Foreground(lipgloss.Color(bd.TextColor.Hex())).
			Width(m.styles.RowWidth).
			Render(bd.Text)
	} else {
		row = m.styles.UnboundRow.Width(m.styles.RowWidth).Render(bd.Text)
	}
	return cursor + " " + row
}

// statusLine shows the toast first so a copy made during an extraction is
// still confirmed; the spinner sits beside it.
func (m Model) statusLine() string {
	var loading string
	if m.loading {
		loading = m.styles.StatusBar.Render(m.spinner.View() + " Extracting colours...")
	}

	switch {
	case m.toast != "" && m.loading:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Toast.Render(m.toast), "  ", loading)
	case m.toast != "":
		return m.styles.Toast.Render(m.toast)
	case m.loading:
		return loading
	case m.errMsg != "":
		return m.styles.Error.Render("Error: " + m.errMsg)
	case m.statusMsg != "":
		return m.styles.StatusBar.Render(m.statusMsg)
	}
	return ""
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewFiles() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Choose an image"))
	b.WriteString("\n")
	if m.picker.CurrentDirectory != "" {
		b.WriteString(m.styles.Origin.Render(m.picker.CurrentDirectory))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(m.styles.StatusBar.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render("esc back"))
	return b.String()
}

func (m Model) viewPermission() string {
	req := permission.WallpaperRequest()
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.PopupTitle.Render(req.Title),
		"",
		req.Rationale,
		"",
		m.help.View(permissionKeys{Yes: m.keys.Yes, No: m.keys.No}),
	)
	return m.popup(content)
}

func (m Model) viewAdvisory() string {
	title := permission.DeniedTitle
	message := ""
	if m.advisory != nil {
		title = m.advisory.Title
		message = m.advisory.Message
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.PopupTitle.Render(title),
		"",
		lipgloss.NewStyle().Width(50).Render(message),
		"",
		m.styles.Footer.Render("enter OK"),
	)
	return m.popup(content)
}

func (m Model) viewAbout() string {
	lines := []string{m.styles.PopupTitle.Render(about.Title), ""}
	for i, l := range about.Links() {
		lines = append(lines, fmt.Sprintf("%d  %s  %s", i+1, l.Label, m.styles.Link.Render(l.URL)))
	}
	lines = append(lines, "")
	if line := m.statusLine(); line != "" {
		lines = append(lines, line, "")
	}
	lines = append(lines, m.help.View(m.aboutKeys))
	return m.popup(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) popup(content string) string {
	box := m.styles.PopupBorder.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
