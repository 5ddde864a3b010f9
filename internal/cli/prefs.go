package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorfinder/internal/prefs"
)

// prefsCmd represents the prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Long: `Show or change the persisted preferences.

Preferences are stored in prefs.json in the configuration directory
(override with --config-dir or $` + prefs.EnvConfigDir + `).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := openPrefs()
		fmt.Fprintf(cmd.OutOrStdout(), "file: %s\n", store.Path())
		return printHashtag(cmd.OutOrStdout(), store)
	},
}

// prefsHashtagCmd represents the prefs hashtag command
var prefsHashtagCmd = &cobra.Command{
	Use:   "hashtag [on|off|toggle]",
	Short: "Show or change whether copied codes keep their '#'",
	Long: `Show or change whether copied hex codes keep their leading '#'.

Examples:
  colorfinder prefs hashtag          # show the current value
  colorfinder prefs hashtag off      # copy "AABBCC" instead of "#AABBCC"
  colorfinder prefs hashtag toggle`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openPrefs()
		if len(args) == 1 {
			if err := setHashtag(store, args[0]); err != nil {
				return err
			}
		}
		return printHashtag(cmd.OutOrStdout(), store)
	},
}

func init() {
	prefsCmd.AddCommand(prefsHashtagCmd)
}

// setHashtag applies an on/off/toggle argument.
func setHashtag(store *prefs.Store, arg string) error {
	switch strings.ToLower(arg) {
	case "on", "true", "yes":
		return store.SetCopyHashtag(true)
	case "off", "false", "no":
		return store.SetCopyHashtag(false)
	case "toggle":
		_, err := store.ToggleCopyHashtag()
		return err
	default:
		return fmt.Errorf("invalid value %q (valid: on, off, toggle)", arg)
	}
}

func printHashtag(w io.Writer, store *prefs.Store) error {
	v, err := store.CopyHashtag()
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	state := "off"
	if v {
		state = "on"
	}
	fmt.Fprintf(w, "%s: %s\n", prefs.KeyCopyHashtag, state)
	return nil
}
