// Package cli provides the command-line interface for Color Finder.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorfinder/internal/prefs"
	"github.com/jmylchreest/colorfinder/internal/version"
)

var (
	// Global flags
	globalVerbose   bool
	globalQuiet     bool
	globalNoColor   bool
	globalConfigDir string

	// logger is configured from the global flags before any command runs.
	logger hclog.Logger = hclog.NewNullLogger()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "colorfinder",
		Short: "Find the key colours of an image",
		Long: `Color Finder extracts six key colours from an image: light vibrant, vibrant,
dark vibrant, light muted, muted and dark muted. Each colour is shown as a
#RRGGBB hex code that can be copied to the clipboard.

Images can come from a file, the desktop file chooser, your current
wallpaper (after you allow access) or a screen capture.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: setupGlobals,
	}
)

// Execute runs the root command under a context that is cancelled on
// SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd returns the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, "no-color", false, "disable coloured output")
	rootCmd.PersistentFlags().StringVar(&globalConfigDir, "config-dir", "", "configuration directory (default: $"+prefs.EnvConfigDir+" or the user config dir)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(uiCmd)
}

// setupGlobals applies the persistent flags.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	if globalVerbose && globalQuiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}

	noColor := colourDisabled()
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	logger = newLogger(cmd.ErrOrStderr(), noColor)
	return nil
}

// configDir returns --config-dir, or the default configuration directory.
func configDir() string {
	if globalConfigDir != "" {
		return globalConfigDir
	}
	return prefs.ConfigDir()
}

// openPrefs opens the preference store in configDir.
func openPrefs() *prefs.Store {
	return prefs.OpenDir(globalConfigDir)
}

// colourDisabled reports whether --no-color or NO_COLOR is set.
func colourDisabled() bool {
	if globalNoColor {
		return true
	}
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// logLevel maps the verbosity flags onto an hclog level.
func logLevel() hclog.Level {
	switch {
	case globalVerbose:
		return hclog.Debug
	case globalQuiet:
		return hclog.Error
	default:
		return hclog.Warn
	}
}

func newLogger(w io.Writer, noColor bool) hclog.Logger {
	colour := hclog.AutoColor
	if noColor {
		colour = hclog.ColorOff
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "colorfinder",
		Level:  logLevel(),
		Output: w,
		Color:  colour,
	})
}

var versionJSON bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if versionJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
}
