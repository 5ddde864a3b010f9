// Package palette turns an image into named swatches: light vibrant, vibrant,
// dark vibrant, light muted, muted and dark muted.
//
// By default swatch selection is delegated to generaltso/vibrant (see
// VibrantProvider). The other algorithms delegate quantization to a clustering
// library (see Quantizer) and score the quantized colours against the six
// swatch targets. Either way this package derives readable text colours.
package palette

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*Kind)(nil)
	_ pflag.Value = (*Algorithm)(nil)
)

// Kind names one of the six swatch categories.
type Kind int

const (
	LightVibrant Kind = iota
	Vibrant
	DarkVibrant
	LightMuted
	Muted
	DarkMuted
)

// AllKinds returns every kind in presentation order.
func AllKinds() []Kind {
	return []Kind{LightVibrant, Vibrant, DarkVibrant, LightMuted, Muted, DarkMuted}
}

var kindNames = map[Kind]string{
	LightVibrant: "light-vibrant",
	Vibrant:      "vibrant",
	DarkVibrant:  "dark-vibrant",
	LightMuted:   "light-muted",
	Muted:        "muted",
	DarkMuted:    "dark-muted",
}

var kindTitles = map[Kind]string{
	LightVibrant: "Light Vibrant",
	Vibrant:      "Vibrant",
	DarkVibrant:  "Dark Vibrant",
	LightMuted:   "Light Muted",
	Muted:        "Muted",
	DarkMuted:    "Dark Muted",
}

// String returns the kebab-case name used on the command line and in JSON.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns the human-readable name, e.g. "Light Vibrant".
func (k Kind) Title() string {
	if title, ok := kindTitles[k]; ok {
		return title
	}
	return k.String()
}

// Valid reports whether k is one of the six kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind accepts "light-vibrant", "light_vibrant", "lightvibrant" or
// "Light Vibrant" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for k, name := range kindNames {
		if strings.ReplaceAll(name, "-", "") == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown swatch kind %q (valid: %s)", s, strings.Join(kindNameList(), ", "))
}

func kindNameList() []string {
	names := make([]string, 0, len(kindNames))
	for _, k := range AllKinds() {
		names = append(names, k.String())
	}
	return names
}

// Set implements pflag.Value.
func (k *Kind) Set(s string) error {
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *Kind) Type() string {
	return "kind"
}

// MarshalText implements encoding.TextMarshaler so kinds serialise by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid swatch kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	return k.Set(string(text))
}
