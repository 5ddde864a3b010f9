package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/colorfinder/internal/about"
	"github.com/jmylchreest/colorfinder/internal/acquire"
	"github.com/jmylchreest/colorfinder/internal/clipboard"
	"github.com/jmylchreest/colorfinder/internal/permission"
)

var errNoFinder = errors.New("no palette finder configured")

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.state == StateFiles {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case foundMsg:
		return m.handleFound(msg)

	case clearToastMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case linkOpenedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Opened %s", msg.link.URL)
		return m, nil
	}

	if m.state == StateFiles {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFound(msg foundMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation {
		m.logger.Debug("dropping stale extraction result", "generation", msg.generation, "current", m.generation)
		return m, nil
	}
	m.loading = false

	var denied *permission.DeniedError
	switch {
	case msg.err == nil:
		m.bindings = msg.result.Bindings
		m.origin = msg.result.Origin
		m.errMsg = ""
		if m.selected >= len(m.bindings) {
			m.selected = max(0, len(m.bindings)-1)
		}
	case errors.Is(msg.err, acquire.ErrCancelled):
		m.statusMsg = "Cancelled"
	case errors.As(msg.err, &denied):
		m.advisory = denied
		m.state = StateAdvisory
	default:
		m.logger.Error("extraction failed", "error", msg.err)
		m.errMsg = msg.err.Error()
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateFiles:
		return m.handleFilesKey(msg)
	case StatePermission:
		return m.handlePermissionKey(msg)
	case StateAdvisory:
		return m.handleAdvisoryKey(msg)
	case StateAbout:
		return m.handleAboutKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.bindings)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()

	case key.Matches(msg, m.keys.Files):
		m.picker = m.newFilePicker()
		if m.height > 0 {
			m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		m.state = StateFiles
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Portal):
		return m.startFind(m.pickerSource())

	case key.Matches(msg, m.keys.Wallpaper):
		m.state = StatePermission
		return m, nil

	case key.Matches(msg, m.keys.Screen):
		return m.startFind(m.screenSource())

	case key.Matches(msg, m.keys.Hashtag):
		return m.toggleHashtag()

	case key.Matches(msg, m.keys.About):
		m.state = StateAbout
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	if m.selected < 0 || m.selected >= len(m.bindings) {
		return m, nil
	}
	res, err := m.copier.Copy(m.bindings[m.selected])
	if err != nil {
		if errors.Is(err, clipboard.ErrUnbound) {
			return m.showToast("No colour to copy yet")
		}
		m.errMsg = err.Error()
		return m, nil
	}
	m.logger.Debug("copied swatch", "text", res.Text)
	return m.showToast(res.Message)
}

func (m Model) toggleHashtag() (tea.Model, tea.Cmd) {
	if m.opts.Prefs == nil {
		m.errMsg = "preferences are not available"
		return m, nil
	}
	v, err := m.opts.Prefs.ToggleCopyHashtag()
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save preference: %v", err)
		return m, nil
	}
	m.copyHashtag = v
	m.errMsg = ""
	return m, nil
}

func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.state = StateMain
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		return m.startFind(acquire.File{Path: path, Loader: m.loader()})
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.statusMsg = fmt.Sprintf("%s is not a supported image", path)
	}
	return m, cmd
}

func (m Model) handlePermissionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		return m.startFind(m.wallpaperSource(permission.Granted))

	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Escape):
		// The reader is never consulted on a denial, so this cannot block.
		err := permission.Require(m.ctx, permission.Static(permission.Denied), permission.WallpaperRequest())
		var denied *permission.DeniedError
		if errors.As(err, &denied) {
			m.advisory = denied
			m.state = StateAdvisory
			return m, nil
		}
		m.state = StateMain
		return m, nil

	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleAdvisoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "y", "o", " ":
		m.advisory = nil
		m.state = StateMain
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleAboutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.aboutKeys.Back):
		m.state = StateMain
		return m, nil

	case key.Matches(msg, m.aboutKeys.Image):
		return m.showToast(about.ImageToast())

	case key.Matches(msg, m.aboutKeys.Links):
		links := about.Links()
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(links) {
			return m, nil
		}
		return m, m.openLinkCmd(links[idx].Name)

	case msg.String() == "q", msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) openLinkCmd(name string) tea.Cmd {
	opener := m.opts.Opener
	return func() tea.Msg {
		link, err := about.Open(name, opener)
		return linkOpenedMsg{link: link, err: err}
	}
}
