package palette

import (
	"context"
	"image"
)

// Provider turns an image into a palette of named swatches.
type Provider interface {
	Generate(ctx context.Context, img image.Image) (*Palette, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, img image.Image) (*Palette, error)

// Generate calls f(ctx, img).
func (f ProviderFunc) Generate(ctx context.Context, img image.Image) (*Palette, error) {
	return f(ctx, img)
}

// Palette is the result of a generation: every candidate swatch plus the
// swatch selected for each kind. Kinds without a suitable candidate are absent.
type Palette struct {
	Swatches []*Swatch
	selected map[Kind]*Swatch
}

// NewPalette creates a palette from candidates and a kind selection.
func NewPalette(swatches []*Swatch, selected map[Kind]*Swatch) *Palette {
	sel := make(map[Kind]*Swatch, len(selected))
	for k, s := range selected {
		if s != nil && k.Valid() {
			sel[k] = s
		}
	}
	return &Palette{Swatches: swatches, selected: sel}
}

// Swatch returns the swatch selected for kind.
func (p *Palette) Swatch(kind Kind) (*Swatch, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.selected[kind]
	return s, ok
}

// Kinds returns the kinds that have a swatch, in presentation order.
func (p *Palette) Kinds() []Kind {
	var kinds []Kind
	for _, k := range AllKinds() {
		if _, ok := p.Swatch(k); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Len returns the number of kinds with a swatch.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.selected)
}

// All returns an iterator over the selected swatches in presentation order.
func (p *Palette) All() func(func(Kind, *Swatch) bool) {
	return func(yield func(Kind, *Swatch) bool) {
		for _, k := range AllKinds() {
			s, ok := p.Swatch(k)
			if !ok {
				continue
			}
			if !yield(k, s) {
				return
			}
		}
	}
}
