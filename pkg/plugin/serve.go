package plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-plugin"
)

// InfoFlag makes a plugin binary print its metadata as JSON and exit.
const InfoFlag = "--plugin-info"

// WriteInfo encodes the plugin metadata as indented JSON.
func WriteInfo(w io.Writer, impl ProviderPlugin) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(impl.GetMetadata())
}

// Serve runs impl as a provider plugin. It answers --plugin-info itself and
// otherwise hands control to go-plugin.
func Serve(impl ProviderPlugin) {
	if len(os.Args) > 1 && os.Args[1] == InfoFlag {
		if err := WriteInfo(os.Stdout, impl); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
