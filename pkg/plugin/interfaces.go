package plugin

import (
	"context"
)

// ProviderPlugin is the interface that palette provider plugins must implement.
type ProviderPlugin interface {
	// Generate returns the swatches found in the request image.
	Generate(ctx context.Context, req GenerateRequest) ([]Swatch, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
