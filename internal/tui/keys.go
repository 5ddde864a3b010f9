package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Copy      key.Binding
	Files     key.Binding
	Portal    key.Binding
	Wallpaper key.Binding
	Screen    key.Binding
	Hashtag   key.Binding
	About     key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
	Yes       key.Binding
	No        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("↵", "copy"),
		),
		Files: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "browse"),
		),
		Portal: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pick"),
		),
		Wallpaper: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wallpaper"),
		),
		Screen: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "screen"),
		),
		Hashtag: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "copy #"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "about"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "allow"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "deny"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Files, k.Portal, k.Wallpaper, k.Screen, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Copy},
		{k.Files, k.Portal, k.Wallpaper, k.Screen},
		{k.Hashtag, k.About, k.Help, k.Quit},
	}
}

// permissionKeys is shown under the wallpaper permission modal.
type permissionKeys struct {
	Yes key.Binding
	No  key.Binding
}

func (k permissionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

func (k permissionKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// aboutKeys is shown on the About screen.
type aboutKeys struct {
	Links key.Binding
	Image key.Binding
	Back  key.Binding
}

func newAboutKeys() aboutKeys {
	return aboutKeys{
		Links: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "open link"),
		),
		Image: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "image"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "a"),
			key.WithHelp("esc", "back"),
		),
	}
}

func (k aboutKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Links, k.Image, k.Back}
}

func (k aboutKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
