package plugin

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}

// GenerateRequest is sent to a provider plugin.
type GenerateRequest struct {
	// Image is the source image encoded as PNG.
	Image []byte `json:"image"`

	// MaxColours bounds how many colours the plugin should consider.
	MaxColours int `json:"max_colours,omitempty"`
}

// Swatch is one selected colour returned by a provider plugin. Kind is a
// swatch kind name such as "light-vibrant" or "dark-muted".
type Swatch struct {
	Kind       string `json:"kind"`
	R          uint8  `json:"r"`
	G          uint8  `json:"g"`
	B          uint8  `json:"b"`
	Population int    `json:"population,omitempty"`
}
