package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorfinder/internal/acquire"
	"github.com/jmylchreest/colorfinder/internal/finder"
	"github.com/jmylchreest/colorfinder/internal/palette"
	"github.com/jmylchreest/colorfinder/internal/permission"
	"github.com/jmylchreest/colorfinder/internal/plugin"
	"github.com/jmylchreest/colorfinder/internal/wallpaper"
)

// sourceFlags selects where the image comes from and how it is analysed.
// Commands that extract a palette share them.
type sourceFlags struct {
	wallpaper bool
	pick      bool
	screen    int
	yes       bool

	algorithm palette.Algorithm
	colours   int
	provider  string
}

func newSourceFlags() *sourceFlags {
	return &sourceFlags{
		screen:    -1,
		algorithm: palette.DefaultConfig().Algorithm,
		colours:   palette.DefaultMaxColours,
	}
}

// register adds the source and extraction flags to cmd.
func (f *sourceFlags) register(cmd *cobra.Command) {
	f.registerExtraction(cmd)
	cmd.Flags().BoolVarP(&f.wallpaper, "wallpaper", "w", false, "use the current desktop wallpaper")
	cmd.Flags().BoolVar(&f.pick, "pick", false, "choose an image with the desktop file chooser")
	cmd.Flags().IntVar(&f.screen, "screen", -1, "capture display `N` (0 is the primary display)")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "allow wallpaper access without asking")
}

// registerExtraction adds only the palette flags.
func (f *sourceFlags) registerExtraction(cmd *cobra.Command) {
	names := make([]string, 0, len(palette.ValidAlgorithms()))
	for _, a := range palette.ValidAlgorithms() {
		names = append(names, string(a))
	}
	cmd.Flags().VarP(&f.algorithm, "algorithm", "a", "extraction algorithm ("+strings.Join(names, ", ")+")")
	cmd.Flags().IntVarP(&f.colours, "colours", "c", palette.DefaultMaxColours, "number of candidate colours to quantise to (1-256, quantizer algorithms only)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "path to a palette provider plugin")
}

// source builds the image source from the flags and an optional image
// argument. Exactly one source must be chosen.
func (f *sourceFlags) source(args []string) (acquire.Source, error) {
	var chosen []string
	if len(args) > 0 {
		chosen = append(chosen, "image argument")
	}
	if f.wallpaper {
		chosen = append(chosen, "--wallpaper")
	}
	if f.pick {
		chosen = append(chosen, "--pick")
	}
	if f.screen >= 0 {
		chosen = append(chosen, "--screen")
	}

	switch len(chosen) {
	case 0:
		return nil, fmt.Errorf("no image given: pass an image path or use --wallpaper, --pick or --screen")
	case 1:
	default:
		return nil, fmt.Errorf("choose one image source, got %s", strings.Join(chosen, " and "))
	}

	switch {
	case len(args) > 0:
		return acquire.File{Path: args[0]}, nil
	case f.wallpaper:
		return acquire.Wallpaper{
			Asker:  f.asker(),
			Reader: wallpaper.NewDetector(wallpaper.WithLogger(logger.Named("wallpaper"))),
		}, nil
	case f.pick:
		return acquire.Picker{}, nil
	default:
		return acquire.Screen{Display: f.screen}, nil
	}
}

func (f *sourceFlags) asker() permission.Asker {
	if f.yes {
		return permission.Static(permission.Granted)
	}
	return permission.NewPrompt()
}

// paletteProvider returns the provider chosen by the flags: a plugin when
// --provider is set, the built-in provider for --algorithm otherwise.
func (f *sourceFlags) paletteProvider() (palette.Provider, error) {
	if f.provider != "" {
		p, err := plugin.NewProvider(f.provider,
			plugin.WithLogger(logger),
			plugin.WithMaxColours(f.colours),
		)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	cfg := palette.Config{Algorithm: f.algorithm, MaxColours: f.colours}
	return palette.NewProvider(cfg, logger.Named("palette"))
}

// newFinder builds the finder for the chosen provider.
func (f *sourceFlags) newFinder() (*finder.Finder, error) {
	provider, err := f.paletteProvider()
	if err != nil {
		return nil, err
	}
	return &finder.Finder{Provider: provider, Logger: logger}, nil
}
