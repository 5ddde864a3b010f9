// Package about holds the static About content and opens its links.
package about

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"
)

// Title is the application name shown on the About screen.
const Title = "Color Finder"

// Link is a named external link.
type Link struct {
	Name  string
	Label string
	URL   string
}

var links = []Link{
	{Name: "website", Label: "Website", URL: "https://samlav.in"},
	{Name: "repository", Label: "Source code", URL: "https://github.com/Salavin/Color-Finder"},
	{Name: "donate", Label: "Donate", URL: "https://gpay.app.goo.gl/pay-9su9NF43f9N"},
}

// Links returns the About links in display order.
func Links() []Link {
	out := make([]Link, len(links))
	copy(out, links)
	return out
}

// LinkNames returns the names accepted by Lookup.
func LinkNames() []string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Name)
	}
	return names
}

// Lookup finds a link by name.
func Lookup(name string) (Link, error) {
	for _, l := range links {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return Link{}, fmt.Errorf("unknown link %q (valid: %s)", name, strings.Join(LinkNames(), ", "))
}

// Opener opens a URL in the user's browser.
type Opener func(url string) error

// DefaultOpener uses pkg/browser.
var DefaultOpener Opener = browser.OpenURL

// Open opens the named link with opener, or DefaultOpener when nil.
func Open(name string, opener Opener) (Link, error) {
	l, err := Lookup(name)
	if err != nil {
		return Link{}, err
	}
	if opener == nil {
		opener = DefaultOpener
	}
	if err := opener(l.URL); err != nil {
		return l, fmt.Errorf("failed to open %s: %w", l.URL, err)
	}
	return l, nil
}

// ImageToast is the message shown when the About image is activated.
func ImageToast() string {
	return "🐣"
}
