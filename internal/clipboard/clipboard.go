// Package clipboard copies swatch hex codes to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/jmylchreest/colorfinder/internal/binding"
	"github.com/jmylchreest/colorfinder/internal/colour"
)

var clipboardWriteAll = clipboard.WriteAll

// ErrUnbound is returned when copying a label that has no swatch.
var ErrUnbound = errors.New("no colour to copy")

// HashtagPreference reports whether copied codes keep their '#'.
type HashtagPreference interface {
	CopyHashtag() (bool, error)
}

// Result describes a completed copy.
type Result struct {
	Text    string
	Message string
}

// Message returns the confirmation shown after copying text.
func Message(text string) string {
	return fmt.Sprintf("Copied %q to clipboard.", text)
}

// WriteFunc writes text to a clipboard.
type WriteFunc func(text string) error

// Copier writes swatch codes to the clipboard, honouring the hashtag preference.
type Copier struct {
	prefs HashtagPreference
	write WriteFunc
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithWriter replaces the system clipboard writer.
func WithWriter(w WriteFunc) CopierOption {
	return func(c *Copier) { c.write = w }
}

// NewCopier creates a Copier. A nil preference means the '#' is kept.
func NewCopier(prefs HashtagPreference, opts ...CopierOption) *Copier {
	c := &Copier{prefs: prefs}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Copier) includeMarker() bool {
	if c.prefs == nil {
		return true
	}
	v, err := c.prefs.CopyHashtag()
	if err != nil {
		return true
	}
	return v
}

// Copy copies the binding's hex code.
func (c *Copier) Copy(b binding.Binding) (Result, error) {
	if !b.Bound {
		return Result{}, fmt.Errorf("%w: %s", ErrUnbound, b.Label.Kind.Title())
	}
	return c.CopyHex(b.Hex)
}

// CopyHex copies a "#RRGGBB" code, stripping the '#' when the preference is off.
func (c *Copier) CopyHex(hex string) (Result, error) {
	text := colour.CopyText(hex, c.includeMarker())
	write := c.write
	if write == nil {
		write = clipboardWriteAll
	}
	if err := write(text); err != nil {
		return Result{}, fmt.Errorf("failed to write clipboard: %w", err)
	}
	return Result{Text: text, Message: Message(text)}, nil
}
