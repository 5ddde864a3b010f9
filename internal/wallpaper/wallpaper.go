// Package wallpaper locates the image file behind the current desktop
// wallpaper. Each desktop or wallpaper daemon has its own Backend; a Detector
// tries the ones that look active and returns the first existing file.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"

	imgutil "github.com/jmylchreest/colorfinder/internal/image"
)

// ErrNotFound is returned when no backend can name an existing wallpaper file.
var ErrNotFound = errors.New("wallpaper not found")

// Env is what backends can see of the host.
type Env struct {
	GOOS     string
	Home     string
	Getenv   func(string) string
	Runner   ProcessRunner
	Procs    ProcessFinder
	ReadFile func(string) ([]byte, error)
}

// DefaultEnv describes the running host.
func DefaultEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{
		GOOS:     runtime.GOOS,
		Home:     home,
		Getenv:   os.Getenv,
		Runner:   NewRealProcessRunner(),
		Procs:    PSFinder{},
		ReadFile: os.ReadFile,
	}
}

func (e Env) running(name string) bool {
	if e.Procs == nil {
		return false
	}
	ok, err := e.Procs.Running(name)
	return err == nil && ok
}

func (e Env) output(ctx context.Context, name string, args ...string) (string, error) {
	stdout, stderr, err := e.Runner.Run(ctx, name, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return string(stdout), nil
}

// Backend reads the wallpaper from one desktop environment or daemon.
type Backend interface {
	Name() string
	Available(ctx context.Context, env Env) bool
	Path(ctx context.Context, env Env) (string, error)
}

// DefaultBackends returns every backend in detection order.
func DefaultBackends() []Backend {
	return []Backend{
		Hyprpaper{},
		Swww{},
		Gnome{},
		Feh{},
		Nitrogen{},
		MacOS{},
		Windows{},
	}
}

// Detector finds the wallpaper file using the first backend that answers.
type Detector struct {
	env      Env
	backends []Backend
	logger   hclog.Logger
	exists   func(string) bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithEnv replaces the host environment.
func WithEnv(env Env) Option {
	return func(d *Detector) { d.env = env }
}

// WithBackends replaces the backend list.
func WithBackends(backends ...Backend) Option {
	return func(d *Detector) { d.backends = backends }
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(d *Detector) { d.logger = logger }
}

// WithExists replaces the file existence check.
func WithExists(exists func(string) bool) Option {
	return func(d *Detector) { d.exists = exists }
}

// NewDetector creates a Detector for the running host.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		env:      DefaultEnv(),
		backends: DefaultBackends(),
		logger:   hclog.NewNullLogger(),
		exists:   fileExists,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the path of the current wallpaper image.
func (d *Detector) Path(ctx context.Context) (string, error) {
	var tried []string
	for _, b := range d.backends {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !b.Available(ctx, d.env) {
			continue
		}
		tried = append(tried, b.Name())

		raw, err := b.Path(ctx, d.env)
		if err != nil {
			d.logger.Debug("wallpaper backend failed", "backend", b.Name(), "error", err)
			continue
		}
		path, err := imgutil.FileURIToPath(raw)
		if err != nil {
			d.logger.Debug("wallpaper backend returned bad URI", "backend", b.Name(), "value", raw, "error", err)
			continue
		}
		path = expandHome(path, d.env.Home)
		if path == "" || !d.exists(path) {
			d.logger.Debug("wallpaper file missing", "backend", b.Name(), "path", path)
			continue
		}

		d.logger.Debug("found wallpaper", "backend", b.Name(), "path", path)
		return path, nil
	}

	if len(tried) == 0 {
		return "", fmt.Errorf("%w: no supported desktop or wallpaper daemon detected", ErrNotFound)
	}
	return "", fmt.Errorf("%w (tried: %s)", ErrNotFound, strings.Join(tried, ", "))
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return home + path[1:]
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
