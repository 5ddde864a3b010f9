package palette

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/generaltso/vibrant"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colorfinder/internal/colour"
)

// VibrantProvider is the default Provider. It hands the image to
// generaltso/vibrant and maps the named swatches it returns onto kinds.
type VibrantProvider struct {
	resizeArea int
	logger     hclog.Logger
}

// NewVibrantProvider creates a VibrantProvider. A nil logger discards output.
func NewVibrantProvider(logger hclog.Logger) *VibrantProvider {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &VibrantProvider{resizeArea: DefaultResizeArea, logger: logger}
}

// Generate implements Provider.
func (p *VibrantProvider) Generate(ctx context.Context, img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	scaled := scaleToArea(img, p.resizeArea)
	vp, err := vibrant.NewPaletteFromImage(scaled)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	named := vp.ExtractAwesome()
	swatches := make([]*Swatch, 0, len(named))
	selected := make(map[Kind]*Swatch, len(named))
	for name, vs := range named {
		if vs == nil {
			continue
		}
		kind, err := ParseKind(name)
		if err != nil {
			p.logger.Debug("ignoring unknown swatch", "name", name)
			continue
		}
		rgb, err := colour.ParseHex(vs.Color.RGBHex())
		if err != nil {
			return nil, fmt.Errorf("invalid %s swatch colour: %w", name, err)
		}
		s := NewSwatch(rgb, int(vs.Population))
		swatches = append(swatches, s)
		selected[kind] = s
	}
	sort.SliceStable(swatches, func(i, j int) bool {
		return swatches[i].Population > swatches[j].Population
	})

	pal := NewPalette(swatches, selected)
	p.logger.Debug("vibrant palette", "kinds", pal.Len())
	logSelection(p.logger, pal)
	return pal, nil
}

// NewProvider returns the built-in Provider for cfg: VibrantProvider for
// AlgorithmVibrant, a Generator over the matching Quantizer otherwise.
func NewProvider(cfg Config, logger hclog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Algorithm == AlgorithmVibrant {
		return NewVibrantProvider(logger), nil
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	g, err := NewGenerator(cfg, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return g, nil
}
