package prefs

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "COLORFINDER_CONFIG_DIR"

const appDir = "colorfinder"

// ConfigDir returns the per-user configuration directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, appDir)
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", appDir)
	default:
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, _ := os.UserHomeDir()
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, appDir)
	}
}

// FileName is the preference file inside the configuration directory.
const FileName = "prefs.json"

// DefaultPath returns the preference file path.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), FileName)
}
