package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorfinder/internal/binding"
	"github.com/jmylchreest/colorfinder/internal/clipboard"
	"github.com/jmylchreest/colorfinder/internal/palette"
)

var copySource = newSourceFlags()

// copyCmd represents the copy command
var copyCmd = &cobra.Command{
	Use:   "copy <kind> [image]",
	Short: "Copy one colour of an image to the clipboard",
	Long: `Extract the colours of an image and copy the hex code of one kind to the
clipboard. Whether the leading '#' is kept follows the copy_hashtag
preference (see 'colorfinder prefs hashtag').

Kinds: light-vibrant, vibrant, dark-vibrant, light-muted, muted, dark-muted

Examples:
  colorfinder copy vibrant wallpaper.jpg
  colorfinder copy dark-muted --wallpaper --yes`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCopy,
}

func init() {
	copySource.register(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	kind, err := palette.ParseKind(args[0])
	if err != nil {
		return err
	}
	src, err := copySource.source(args[1:])
	if err != nil {
		return err
	}
	f, err := copySource.newFinder()
	if err != nil {
		return err
	}

	res, err := f.Find(cmd.Context(), src)
	if err != nil {
		return err
	}

	b, ok := binding.Find(res.Bindings, kind)
	if !ok {
		return fmt.Errorf("no label for %s", kind)
	}

	result, err := clipboard.NewCopier(openPrefs()).Copy(b)
	if err != nil {
		if errors.Is(err, clipboard.ErrUnbound) {
			return fmt.Errorf("%s has no %s colour", res.Origin, kind.Title())
		}
		return err
	}

	if !globalQuiet {
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	}
	return nil
}
