package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/colorfinder/internal/colour"
	"github.com/jmylchreest/colorfinder/internal/finder"
)

var (
	// Extract command flags
	extractSource      = newSourceFlags()
	extractFormat      string
	extractOutput      string
	extractShowPreview bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [image]",
	Short: "Extract the six key colours of an image",
	Long: `Extract the light vibrant, vibrant, dark vibrant, light muted, muted and
dark muted colours of an image.

The image can be a path, a file:// URI or a directory (a random image is
chosen). Alternatively use the current wallpaper, the desktop file chooser
or a screen capture. Kinds without a suitable colour are left empty.

Supported image formats: JPEG, PNG, GIF, WebP, BMP

Examples:
  # Extract colours from an image
  colorfinder extract wallpaper.jpg

  # Extract colours from the current wallpaper with colour previews
  colorfinder extract --wallpaper --preview

  # Pick an image with the file chooser and print JSON
  colorfinder extract --pick --format json

  # Capture the primary display and save the palette as YAML
  colorfinder extract --screen 0 -f yaml -o palette.yaml

  # Use a palette provider plugin
  colorfinder extract --provider ./colorfinder-provider-average wallpaper.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractSource.register(extractCmd)
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "text", "output format (text, hex, json, yaml)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	src, err := extractSource.source(args)
	if err != nil {
		return err
	}
	f, err := extractSource.newFinder()
	if err != nil {
		return err
	}

	res, err := f.Find(cmd.Context(), src)
	if err != nil {
		return err
	}
	logger.Info("extracted palette", "origin", res.Origin, "kinds", res.Palette.Len())

	output, err := formatResult(res, extractFormat, extractShowPreview)
	if err != nil {
		return err
	}

	if extractOutput != "" {
		logger.Debug("writing output", "path", extractOutput)
		if err := os.WriteFile(extractOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// swatchReport is one kind in structured output. Missing kinds have an
// empty Hex and no RGB.
type swatchReport struct {
	Kind       string      `json:"kind" yaml:"kind"`
	Label      string      `json:"label" yaml:"label"`
	Hex        string      `json:"hex,omitempty" yaml:"hex,omitempty"`
	RGB        *colour.RGB `json:"rgb,omitempty" yaml:"rgb,omitempty"`
	Population int         `json:"population,omitempty" yaml:"population,omitempty"`
	BodyText   string      `json:"body_text,omitempty" yaml:"body_text,omitempty"`
	TitleText  string      `json:"title_text,omitempty" yaml:"title_text,omitempty"`
}

// report is the structured form of a finder result.
type report struct {
	Origin   string         `json:"origin" yaml:"origin"`
	Swatches []swatchReport `json:"swatches" yaml:"swatches"`
}

func newReport(res *finder.Result) report {
	r := report{Origin: res.Origin, Swatches: make([]swatchReport, 0, len(res.Bindings))}
	for _, b := range res.Bindings {
		sr := swatchReport{Kind: b.Label.Kind.String(), Label: b.Label.Kind.Title()}
		if s, ok := res.Palette.Swatch(b.Label.Kind); ok {
			rgb := s.RGB
			sr.Hex = s.Hex()
			sr.RGB = &rgb
			sr.Population = s.Population
			sr.BodyText = s.BodyTextColor().String()
			sr.TitleText = s.TitleTextColor().String()
		}
		r.Swatches = append(r.Swatches, sr)
	}
	return r
}

// formatResult formats the result according to the specified format.
func formatResult(res *finder.Result, format string, showPreview bool) (string, error) {
	switch format {
	case "text", "":
		return formatText(res, showPreview), nil
	case "hex":
		return formatHex(res), nil
	case "json":
		data, err := json.MarshalIndent(newReport(res), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := yaml.Marshal(newReport(res))
		if err != nil {
			return "", fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, hex, json, yaml)", format)
	}
}

// formatText renders one row per kind. Kinds without a colour show "-".
func formatText(res *finder.Result, showPreview bool) string {
	headers := []string{"KIND", "HEX", "POPULATION"}
	if showPreview {
		headers = append([]string{"PREVIEW"}, headers...)
	}
	table := NewTable(headers)

	for _, b := range res.Bindings {
		row := []string{b.Label.Kind.Title(), "-", "-"}
		if s, ok := res.Palette.Swatch(b.Label.Kind); ok {
			row[1] = b.Hex
			row[2] = strconv.Itoa(s.Population)
		}
		if showPreview {
			preview := strings.Repeat(" ", 9)
			if b.Bound {
				preview = colour.PreviewWithText(b.Background, &b.TextColor, " "+b.Hex, 9)
			}
			row = append([]string{preview}, row...)
		}
		table.AddRow(row)
	}

	return res.Origin + "\n\n" + table.Render()
}

// formatHex prints the hex codes of the kinds that have a colour, one per line.
func formatHex(res *finder.Result) string {
	var b strings.Builder
	for _, bd := range res.Bindings {
		if bd.Bound {
			b.WriteString(bd.Hex)
			b.WriteString("\n")
		}
	}
	return b.String()
}
