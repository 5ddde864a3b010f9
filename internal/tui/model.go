// Package tui is the interactive Color Finder shell: six swatch rows, image
// sources bound to keys, copy to clipboard and the About screen.
package tui

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colorfinder/internal/about"
	"github.com/jmylchreest/colorfinder/internal/acquire"
	"github.com/jmylchreest/colorfinder/internal/binding"
	"github.com/jmylchreest/colorfinder/internal/clipboard"
	"github.com/jmylchreest/colorfinder/internal/finder"
	imgutil "github.com/jmylchreest/colorfinder/internal/image"
	"github.com/jmylchreest/colorfinder/internal/permission"
)

// toastDuration matches a short toast.
const toastDuration = 2 * time.Second

// AppState represents the current UI state
type AppState int

const (
	StateMain AppState = iota
	StateFiles
	StatePermission
	StateAdvisory
	StateAbout
)

func (s AppState) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateFiles:
		return "files"
	case StatePermission:
		return "permission"
	case StateAdvisory:
		return "advisory"
	case StateAbout:
		return "about"
	}
	return "unknown"
}

// Preferences is the subset of the preference store the UI needs.
type Preferences interface {
	CopyHashtag() (bool, error)
	ToggleCopyHashtag() (bool, error)
}

// Options wires the model to its collaborators. Finder is required; sources
// left nil fall back to the desktop implementations.
type Options struct {
	Finder *finder.Finder
	Prefs  Preferences
	Copier *clipboard.Copier

	Wallpaper acquire.PathReader
	Picker    acquire.Source
	Screen    acquire.Source
	Loader    imgutil.Loader
	Opener    about.Opener
	Logger    hclog.Logger

	// Initial is extracted as soon as the program starts.
	Initial acquire.Source
	// StartWithWallpaper opens the wallpaper permission prompt on start.
	StartWithWallpaper bool
	// StartDir is where the file browser opens. Defaults to the home directory.
	StartDir string
}

// Model is the main Bubble Tea model
type Model struct {
	ctx    context.Context
	opts   Options
	copier *clipboard.Copier
	logger hclog.Logger

	keys      KeyMap
	aboutKeys aboutKeys
	styles    Styles
	help      help.Model
	spinner   spinner.Model
	picker    filepicker.Model

	width  int
	height int

	state    AppState
	bindings []binding.Binding
	origin   string
	selected int

	// generation numbers extraction requests; results from older requests
	// are dropped.
	generation int
	loading    bool

	copyHashtag bool
	statusMsg   string
	errMsg      string
	toast       string
	toastID     int
	advisory    *permission.DeniedError
}

// New creates a new TUI model
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	copier := opts.Copier
	if copier == nil {
		var hp clipboard.HashtagPreference
		if opts.Prefs != nil {
			hp = opts.Prefs
		}
		copier = clipboard.NewCopier(hp)
	}
	labels := binding.DefaultLabels()
	if opts.Finder != nil && opts.Finder.Labels != nil {
		labels = opts.Finder.Labels
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	m := Model{
		ctx:         ctx,
		opts:        opts,
		copier:      copier,
		logger:      logger,
		keys:        DefaultKeyMap(),
		aboutKeys:   newAboutKeys(),
		styles:      DefaultStyles(),
		help:        help.New(),
		spinner:     sp,
		state:       StateMain,
		bindings:    binding.Bind(labels, nil),
		copyHashtag: true,
	}

	if opts.Prefs != nil {
		v, err := opts.Prefs.CopyHashtag()
		if err != nil {
			logger.Warn("failed to read preferences", "error", err)
		}
		m.copyHashtag = v
	}

	switch {
	case opts.Initial != nil:
		m.generation = 1
		m.loading = true
	case opts.StartWithWallpaper:
		m.state = StatePermission
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.opts.Initial != nil && m.generation == 1 {
		return tea.Batch(m.spinner.Tick, m.findCmd(m.generation, m.opts.Initial))
	}
	return nil
}

// foundMsg carries the outcome of one extraction request.
type foundMsg struct {
	generation int
	result     *finder.Result
	err        error
}

// clearToastMsg hides the toast it was scheduled for.
type clearToastMsg struct {
	id int
}

// linkOpenedMsg reports the outcome of opening an About link.
type linkOpenedMsg struct {
	link about.Link
	err  error
}

func (m Model) findCmd(generation int, src acquire.Source) tea.Cmd {
	f := m.opts.Finder
	ctx := m.ctx
	return func() tea.Msg {
		if f == nil {
			return foundMsg{generation: generation, err: errNoFinder}
		}
		res, err := f.Find(ctx, src)
		return foundMsg{generation: generation, result: res, err: err}
	}
}

// startFind begins a new extraction and supersedes any request in flight.
func (m Model) startFind(src acquire.Source) (Model, tea.Cmd) {
	m.generation++
	m.loading = true
	m.errMsg = ""
	m.statusMsg = ""
	m.state = StateMain
	m.logger.Debug("starting extraction", "generation", m.generation)
	return m, tea.Batch(m.spinner.Tick, m.findCmd(m.generation, src))
}

func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toastID++
	m.toast = text
	id := m.toastID
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

func (m Model) loader() imgutil.Loader {
	if m.opts.Loader != nil {
		return m.opts.Loader
	}
	return imgutil.NewFileLoader()
}

func (m Model) pickerSource() acquire.Source {
	if m.opts.Picker != nil {
		return m.opts.Picker
	}
	return acquire.Picker{Loader: m.loader()}
}

func (m Model) screenSource() acquire.Source {
	if m.opts.Screen != nil {
		return m.opts.Screen
	}
	return acquire.Screen{}
}

// wallpaperSource is used once the user has answered the permission modal.
func (m Model) wallpaperSource(decision permission.Decision) acquire.Source {
	return acquire.Wallpaper{
		Asker:  permission.Static(decision),
		Reader: m.opts.Wallpaper,
		Loader: m.loader(),
	}
}

func (m Model) newFilePicker() filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = imgutil.SupportedImageExtensions()
	fp.CurrentDirectory = m.opts.StartDir
	if fp.CurrentDirectory == "" {
		if home, err := os.UserHomeDir(); err == nil {
			fp.CurrentDirectory = home
		} else {
			fp.CurrentDirectory = "."
		}
	}
	return fp
}

// State returns the current UI state.
func (m Model) State() AppState {
	return m.state
}

// Bindings returns the current label bindings.
func (m Model) Bindings() []binding.Binding {
	return m.bindings
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
