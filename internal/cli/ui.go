package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorfinder/internal/acquire"
	"github.com/jmylchreest/colorfinder/internal/tui"
	"github.com/jmylchreest/colorfinder/internal/wallpaper"
)

// logFileName is written in the config dir when the UI runs with --verbose.
const logFileName = "colorfinder.log"

var (
	uiSource    = newSourceFlags()
	uiWallpaper bool
)

// uiCmd represents the ui command
var uiCmd = &cobra.Command{
	Use:   "ui [image]",
	Short: "Start the interactive colour finder",
	Long: `Start the interactive colour finder.

Keys:
  ↑/↓ select    enter copy    f browse files    p file chooser
  w wallpaper   s screen      h toggle '#'      a about
  ? help        q quit

Examples:
  colorfinder ui
  colorfinder ui wallpaper.jpg
  colorfinder ui --wallpaper`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUI,
}

func init() {
	uiSource.registerExtraction(uiCmd)
	uiCmd.Flags().BoolVarP(&uiWallpaper, "wallpaper", "w", false, "start with the wallpaper permission prompt")
}

func runUI(cmd *cobra.Command, args []string) error {
	if uiWallpaper && len(args) > 0 {
		return fmt.Errorf("choose one image source, got image argument and --wallpaper")
	}

	uiLogger, closeLog, err := uiLog()
	if err != nil {
		return err
	}
	defer closeLog()
	// The UI owns the terminal, so everything logs through uiLogger from here.
	logger = uiLogger

	f, err := uiSource.newFinder()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Finder:             f,
		Prefs:              openPrefs(),
		Wallpaper:          wallpaper.NewDetector(wallpaper.WithLogger(uiLogger.Named("wallpaper"))),
		Logger:             uiLogger,
		StartWithWallpaper: uiWallpaper,
	}
	if len(args) == 1 {
		opts.Initial = acquire.File{Path: args[0]}
	}

	return tui.Run(cmd.Context(), opts)
}

// uiLog returns the logger used while the UI owns the terminal: a null logger,
// or with --verbose a debug log file in the config dir.
func uiLog() (hclog.Logger, func(), error) {
	if !globalVerbose {
		return hclog.NewNullLogger(), func() {}, nil
	}

	dir := configDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create config dir: %w", err)
	}
	path := filepath.Join(dir, logFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304 - path under the config dir
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := hclog.New(&hclog.LoggerOptions{
		Name:   "colorfinder",
		Level:  hclog.Debug,
		Output: file,
		Color:  hclog.ColorOff,
	})
	logger.Debug("ui logging to file", "path", path)
	l.Debug("starting ui")
	return l, func() { _ = file.Close() }, nil
}
