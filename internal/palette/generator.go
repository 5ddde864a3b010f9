package palette

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"

	"github.com/jmylchreest/colorfinder/internal/colour"
)

// ErrEmptyImage is returned when an image has no usable pixels.
var ErrEmptyImage = errors.New("image has no usable pixels")

const (
	// DefaultMaxColours matches the number of colours the quantizer is asked for.
	DefaultMaxColours = 16

	// DefaultResizeArea bounds the pixel area the quantizer sees.
	DefaultResizeArea = 112 * 112
)

// Filter rejects candidate colours before they are scored.
type Filter func(rgb colour.RGB, h, s, l float64) bool

// DefaultFilter drops near-black, near-white and skin-tone colours close to
// the red "I-line", which rarely make useful accent colours.
func DefaultFilter(_ colour.RGB, h, s, l float64) bool {
	isBlack := l <= 0.05
	isWhite := l >= 0.95
	isNearRedILine := h >= 10 && h <= 37 && s <= 0.82
	return !isBlack && !isWhite && !isNearRedILine
}

// Generator is the default Provider: it resizes the image, quantizes it and
// scores the quantized colours against the swatch targets.
type Generator struct {
	quantizer  Quantizer
	maxColours int
	resizeArea int
	filters    []Filter
	targets    []Target
	logger     hclog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithQuantizer replaces the quantizer backend.
func WithQuantizer(q Quantizer) Option {
	return func(g *Generator) { g.quantizer = q }
}

// WithMaxColours sets how many colours the quantizer may return.
func WithMaxColours(n int) Option {
	return func(g *Generator) { g.maxColours = n }
}

// WithResizeArea sets the pixel area images are scaled down to. Zero or
// negative disables resizing.
func WithResizeArea(area int) Option {
	return func(g *Generator) { g.resizeArea = area }
}

// WithFilters replaces the candidate filters. No arguments disables filtering.
func WithFilters(filters ...Filter) Option {
	return func(g *Generator) { g.filters = filters }
}

// WithTargets replaces the swatch targets.
func WithTargets(targets ...Target) Option {
	return func(g *Generator) { g.targets = targets }
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// Config holds the user-facing generator settings.
type Config struct {
	Algorithm  Algorithm
	MaxColours int
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Algorithm:  AlgorithmVibrant,
		MaxColours: DefaultMaxColours,
	}
}

// Validate validates the generator configuration.
func (c Config) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.MaxColours < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.MaxColours)
	}
	if c.MaxColours > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.MaxColours)
	}
	return nil
}

// NewGenerator creates a Generator from a validated config.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	g := &Generator{
		maxColours: cfg.MaxColours,
		resizeArea: DefaultResizeArea,
		filters:    []Filter{DefaultFilter},
		targets:    DefaultTargets(),
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.quantizer == nil {
		q, err := NewQuantizer(cfg.Algorithm, g.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create quantizer: %w", err)
		}
		g.quantizer = q
	}

	return g, nil
}

// Generate implements Provider.
func (g *Generator) Generate(ctx context.Context, img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	scaled := scaleToArea(img, g.resizeArea)
	g.logger.Debug("quantizing image",
		"width", scaled.Bounds().Dx(), "height", scaled.Bounds().Dy(), "max_colours", g.maxColours)

	candidates, err := g.quantizer.Quantize(ctx, scaled, g.maxColours)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	swatches := make([]*Swatch, 0, len(candidates))
	for _, c := range candidates {
		s := NewSwatch(c.RGB, c.Population)
		if g.allowed(s) {
			swatches = append(swatches, s)
		}
	}
	sort.SliceStable(swatches, func(i, j int) bool {
		return swatches[i].Population > swatches[j].Population
	})
	g.logger.Debug("quantized", "candidates", len(candidates), "kept", len(swatches))

	pal := NewPalette(swatches, selectSwatches(swatches, g.targets))
	logSelection(g.logger, pal)
	return pal, nil
}

func logSelection(logger hclog.Logger, pal *Palette) {
	pal.All()(func(k Kind, s *Swatch) bool {
		logger.Trace("selected swatch", "kind", k.String(), "hex", s.Hex(), "population", s.Population)
		return true
	})
}

func (g *Generator) allowed(s *Swatch) bool {
	h, sat, l := s.HSL()
	for _, f := range g.filters {
		if !f(s.RGB, h, sat, l) {
			return false
		}
	}
	return true
}

// selectSwatches scores every swatch for each target in order. Exclusive
// targets claim their winner.
func selectSwatches(swatches []*Swatch, targets []Target) map[Kind]*Swatch {
	maxPopulation := 0
	for _, s := range swatches {
		maxPopulation = max(maxPopulation, s.Population)
	}

	used := make(map[*Swatch]bool)
	selected := make(map[Kind]*Swatch, len(targets))
	for _, t := range targets {
		var best *Swatch
		bestScore := math.Inf(-1)
		for _, s := range swatches {
			if used[s] || !t.accepts(s) {
				continue
			}
			if score := t.score(s, maxPopulation); score > bestScore {
				best, bestScore = s, score
			}
		}
		if best == nil {
			continue
		}
		selected[t.Kind] = best
		if t.Exclusive {
			used[best] = true
		}
	}
	return selected
}

// scaleToArea shrinks img so that its area is at most area, keeping aspect.
func scaleToArea(img image.Image, area int) image.Image {
	b := img.Bounds()
	current := b.Dx() * b.Dy()
	if area <= 0 || current <= area {
		return img
	}

	ratio := math.Sqrt(float64(area) / float64(current))
	w := max(1, int(math.Floor(float64(b.Dx())*ratio)))
	h := max(1, int(math.Floor(float64(b.Dy())*ratio)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
