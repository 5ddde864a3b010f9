package wallpaper

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Hyprpaper reads the active wallpaper from the hyprpaper daemon via hyprctl.
type Hyprpaper struct{}

func (Hyprpaper) Name() string { return "hyprpaper" }

func (Hyprpaper) Available(_ context.Context, env Env) bool {
	return env.GOOS == "linux" && env.running("hyprpaper")
}

// Path parses `hyprctl hyprpaper listactive`, one "monitor = path" per line.
func (Hyprpaper) Path(ctx context.Context, env Env) (string, error) {
	out, err := env.output(ctx, "hyprctl", "hyprpaper", "listactive")
	if err != nil {
		return "", err
	}
	return parseHyprpaperActive(out)
}

func parseHyprpaperActive(out string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		_, path, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		if path = strings.TrimSpace(path); path != "" {
			return path, nil
		}
	}
	return "", fmt.Errorf("no active wallpaper in hyprpaper output")
}

// Swww reads the displayed image from the swww daemon.
type Swww struct{}

func (Swww) Name() string { return "swww" }

func (Swww) Available(_ context.Context, env Env) bool {
	return env.GOOS == "linux" && env.running("swww-daemon")
}

// Path parses `swww query`, e.g.
// "eDP-1: 1920x1080, scale: 1, currently displaying: image: /path/to.jpg".
func (Swww) Path(ctx context.Context, env Env) (string, error) {
	out, err := env.output(ctx, "swww", "query")
	if err != nil {
		return "", err
	}
	return parseSwwwQuery(out)
}

func parseSwwwQuery(out string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		_, path, ok := strings.Cut(scanner.Text(), "image: ")
		if !ok {
			continue
		}
		if path = strings.TrimSpace(path); path != "" {
			return path, nil
		}
	}
	return "", fmt.Errorf("swww is not displaying an image")
}

// Gnome reads the org.gnome.desktop.background settings.
type Gnome struct{}

func (Gnome) Name() string { return "gnome" }

var gnomeDesktops = []string{"gnome", "unity", "budgie", "pantheon", "ubuntu"}

func (Gnome) Available(_ context.Context, env Env) bool {
	if env.GOOS != "linux" || env.Getenv == nil {
		return false
	}
	desktop := strings.ToLower(env.Getenv("XDG_CURRENT_DESKTOP"))
	for _, d := range gnomeDesktops {
		if strings.Contains(desktop, d) {
			return true
		}
	}
	return false
}

// Path honours the dark-style wallpaper when the desktop prefers dark.
func (Gnome) Path(ctx context.Context, env Env) (string, error) {
	key := "picture-uri"
	if scheme, err := env.output(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme"); err == nil &&
		strings.Contains(scheme, "prefer-dark") {
		key = "picture-uri-dark"
	}

	out, err := env.output(ctx, "gsettings", "get", "org.gnome.desktop.background", key)
	if err == nil {
		if uri := unquoteGVariant(out); uri != "" {
			return uri, nil
		}
	}
	if key == "picture-uri" {
		if err != nil {
			return "", err
		}
		return "", fmt.Errorf("gsettings picture-uri is empty")
	}

	out, err = env.output(ctx, "gsettings", "get", "org.gnome.desktop.background", "picture-uri")
	if err != nil {
		return "", err
	}
	if uri := unquoteGVariant(out); uri != "" {
		return uri, nil
	}
	return "", fmt.Errorf("gsettings picture-uri is empty")
}

// unquoteGVariant strips the quoting gsettings puts around string values.
func unquoteGVariant(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@ms ")
	return strings.Trim(s, `'"`)
}

// Feh reads the command feh writes to ~/.fehbg.
type Feh struct{}

func (Feh) Name() string { return "feh" }

func (Feh) Available(_ context.Context, env Env) bool {
	if env.GOOS == "windows" || env.Home == "" || env.ReadFile == nil {
		return false
	}
	_, err := env.ReadFile(filepath.Join(env.Home, ".fehbg"))
	return err == nil
}

func (Feh) Path(_ context.Context, env Env) (string, error) {
	data, err := env.ReadFile(filepath.Join(env.Home, ".fehbg"))
	if err != nil {
		return "", fmt.Errorf("failed to read .fehbg: %w", err)
	}
	return parseFehbg(string(data))
}

// parseFehbg returns the first quoted image on the feh command line.
func parseFehbg(script string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(script))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "feh ") {
			continue
		}
		start := strings.IndexByte(line, '\'')
		if start < 0 {
			continue
		}
		end := strings.IndexByte(line[start+1:], '\'')
		if end < 0 {
			continue
		}
		return line[start+1 : start+1+end], nil
	}
	return "", fmt.Errorf("no image in .fehbg")
}

// Nitrogen reads nitrogen's saved background configuration.
type Nitrogen struct{}

func (Nitrogen) Name() string { return "nitrogen" }

func nitrogenConfig(home string) string {
	return filepath.Join(home, ".config", "nitrogen", "bg-saved.cfg")
}

func (Nitrogen) Available(_ context.Context, env Env) bool {
	if env.GOOS == "windows" || env.Home == "" || env.ReadFile == nil {
		return false
	}
	_, err := env.ReadFile(nitrogenConfig(env.Home))
	return err == nil
}

func (Nitrogen) Path(_ context.Context, env Env) (string, error) {
	data, err := env.ReadFile(nitrogenConfig(env.Home))
	if err != nil {
		return "", fmt.Errorf("failed to read nitrogen config: %w", err)
	}
	return parseNitrogen(string(data))
}

func parseNitrogen(cfg string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(cfg))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if ok && key == "file" && value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf("no file entry in nitrogen config")
}

// MacOS asks System Events for the current desktop picture.
type MacOS struct{}

func (MacOS) Name() string { return "macos" }

func (MacOS) Available(_ context.Context, env Env) bool {
	return env.GOOS == "darwin"
}

func (MacOS) Path(ctx context.Context, env Env) (string, error) {
	out, err := env.output(ctx, "osascript", "-e", `tell application "System Events" to get picture of current desktop`)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(out)
	if path == "" {
		return "", fmt.Errorf("osascript returned no picture")
	}
	return path, nil
}

// Windows reads the WallPaper value from the user's desktop registry key.
type Windows struct{}

func (Windows) Name() string { return "windows" }

func (Windows) Available(_ context.Context, env Env) bool {
	return env.GOOS == "windows"
}

func (Windows) Path(ctx context.Context, env Env) (string, error) {
	out, err := env.output(ctx, "reg", "query", `HKCU\Control Panel\Desktop`, "/v", "WallPaper")
	if err != nil {
		return "", err
	}
	return parseRegQuery(out)
}

// parseRegQuery extracts the value from a line like
// "    WallPaper    REG_SZ    C:\Users\me\Pictures\a.jpg".
func parseRegQuery(out string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		_, value, ok := strings.Cut(scanner.Text(), "REG_SZ")
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf("no WallPaper value in registry output")
}
