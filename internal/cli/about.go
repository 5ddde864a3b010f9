package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorfinder/internal/about"
	"github.com/jmylchreest/colorfinder/internal/version"
)

var aboutOpen string

// aboutCmd represents the about command
var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show information about Color Finder",
	Long: `Show the About information and links.

Use --open to open one of the links in your browser.

Examples:
  colorfinder about
  colorfinder about --open repository`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if aboutOpen != "" {
			l, err := about.Open(aboutOpen, nil)
			if err != nil {
				return err
			}
			logger.Debug("opened link", "url", l.URL)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), aboutText())
		return nil
	},
}

func init() {
	aboutCmd.Flags().StringVar(&aboutOpen, "open", "", "open a link ("+strings.Join(about.LinkNames(), ", ")+")")
}

func aboutText() string {
	table := NewTable([]string{"#", "NAME", "LINK"})
	for i, l := range about.Links() {
		table.AddRow([]string{strconv.Itoa(i + 1), l.Name, l.URL})
	}
	return fmt.Sprintf("%s %s\n\n%s", about.Title, version.Short(), table.Render())
}
