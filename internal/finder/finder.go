// Package finder runs the acquire, extract and bind flow: it takes an image
// source and returns the palette and the label bindings produced from it.
package finder

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colorfinder/internal/acquire"
	"github.com/jmylchreest/colorfinder/internal/binding"
	"github.com/jmylchreest/colorfinder/internal/palette"
)

// Result is the outcome of one Find.
type Result struct {
	Origin   string
	Palette  *palette.Palette
	Bindings []binding.Binding
}

// Finder wires an image source to a palette provider and a label set.
type Finder struct {
	Provider palette.Provider
	Labels   binding.LabelSet
	Logger   hclog.Logger
}

// Find acquires an image from src, extracts its palette and binds the labels.
func (f *Finder) Find(ctx context.Context, src acquire.Source) (*Result, error) {
	logger := f.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if f.Provider == nil {
		return nil, fmt.Errorf("no palette provider configured")
	}
	labels := f.Labels
	if labels == nil {
		labels = binding.DefaultLabels()
	}

	img, err := src.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("acquired image", "origin", img.Origin, "bounds", img.Image.Bounds().String())

	start := time.Now()
	pal, err := f.Provider.Generate(ctx, img.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette from %s: %w", img.Origin, err)
	}
	logger.Debug("extracted palette", "swatches", pal.Len(), "elapsed", time.Since(start))

	return &Result{
		Origin:   img.Origin,
		Palette:  pal,
		Bindings: binding.Bind(labels, pal),
	}, nil
}
