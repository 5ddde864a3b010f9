// Package plugin provides the public API for colorfinder palette provider
// plugins. External plugins should import this package instead of internal
// packages.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this colorfinder version can work with.
	MinCompatibleVersion = "0.1.0"

	// ProviderPluginName is the name the provider is dispensed under.
	ProviderPluginName = "provider"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0, // Major version from ProtocolVersion
	MagicCookieKey:   "COLORFINDER_PLUGIN",
	MagicCookieValue: "colorfinder_palette_provider",
}

// PluginMap returns the plugin set served and dispensed for impl.
func PluginMap(impl ProviderPlugin) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		ProviderPluginName: &ProviderPluginRPC{Impl: impl},
	}
}
