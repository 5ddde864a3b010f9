// Package binding pairs display labels with palette swatches. Each label is
// tied to a swatch kind, so a missing kind leaves exactly its own label
// untouched instead of shifting the others.
package binding

import (
	"github.com/jmylchreest/colorfinder/internal/colour"
	"github.com/jmylchreest/colorfinder/internal/palette"
)

// Label is a display slot for one swatch kind. Prefix is the label's
// original text, captured once and reused for every binding.
type Label struct {
	Kind   palette.Kind
	Prefix string
}

// LabelSet is an ordered set of labels.
type LabelSet []Label

// DefaultLabels returns the six labels in presentation order.
func DefaultLabels() LabelSet {
	labels := make(LabelSet, 0, len(palette.AllKinds()))
	for _, k := range palette.AllKinds() {
		labels = append(labels, Label{Kind: k, Prefix: k.Title() + ":"})
	}
	return labels
}

// Binding is the display state of one label.
type Binding struct {
	Label Label

	// Bound is false when the palette had no swatch for the label's kind.
	Bound bool

	Hex        string
	Background colour.RGB
	TextColor  colour.RGB

	// Text is "<prefix> <hex>" when bound and just the prefix otherwise.
	Text string
}

// Bind produces one binding per label, looked up by kind.
func Bind(labels LabelSet, pal *palette.Palette) []Binding {
	out := make([]Binding, 0, len(labels))
	for _, l := range labels {
		b := Binding{Label: l, Text: l.Prefix}
		if s, ok := pal.Swatch(l.Kind); ok {
			b.Bound = true
			b.Hex = s.Hex()
			b.Background = s.RGB
			b.TextColor = s.BodyTextRGB()
			b.Text = l.Prefix + " " + b.Hex
		}
		out = append(out, b)
	}
	return out
}

// CopyText returns the clipboard text for the binding, or "" when unbound.
func (b Binding) CopyText(includeMarker bool) string {
	if !b.Bound {
		return ""
	}
	return colour.CopyText(b.Hex, includeMarker)
}

// Find returns the binding for kind.
func Find(bindings []Binding, kind palette.Kind) (Binding, bool) {
	for _, b := range bindings {
		if b.Label.Kind == kind {
			return b, true
		}
	}
	return Binding{}, false
}
