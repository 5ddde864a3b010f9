package plugin

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/colorfinder/internal/colour"
	"github.com/jmylchreest/colorfinder/internal/palette"
	"github.com/jmylchreest/colorfinder/internal/security"
	pluginapi "github.com/jmylchreest/colorfinder/pkg/plugin"
)

// Client is the host side of a provider plugin connection.
type Client interface {
	GetMetadata() (pluginapi.PluginInfo, error)
	Generate(ctx context.Context, req pluginapi.GenerateRequest) ([]pluginapi.Swatch, error)
}

// DialFunc starts a plugin and returns a client plus a function that stops it.
type DialFunc func(ctx context.Context) (Client, func(), error)

// Provider implements palette.Provider by delegating to an external plugin
// binary. A fresh plugin process is started for every Generate call.
type Provider struct {
	path       string
	maxColours int
	logger     hclog.Logger
	dial       DialFunc
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger. The plugin's own output is logged under "plugin".
func WithLogger(logger hclog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// WithMaxColours sets the colour budget passed to the plugin.
func WithMaxColours(n int) Option {
	return func(p *Provider) { p.maxColours = n }
}

// WithDialer replaces how the plugin is started.
func WithDialer(dial DialFunc) Option {
	return func(p *Provider) { p.dial = dial }
}

// NewProvider creates a provider for the plugin binary at path.
func NewProvider(path string, opts ...Option) (*Provider, error) {
	p := &Provider{
		path:       path,
		maxColours: palette.DefaultMaxColours,
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.dial == nil {
		if err := security.ValidatePluginBinary(path); err != nil {
			return nil, err
		}
		p.dial = p.dialGoPlugin
	}
	return p, nil
}

func (p *Provider) dialGoPlugin(_ context.Context) (Client, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginapi.Handshake,
		Plugins:          pluginapi.PluginMap(nil),
		Cmd:              exec.Command(p.path), // #nosec G204 - user-selected plugin binary
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           p.logger.Named("plugin"),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(pluginapi.ProviderPluginName)
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	provider, ok := raw.(*pluginapi.ProviderPluginRPCClient)
	if !ok {
		client.Kill()
		return nil, nil, fmt.Errorf("unexpected plugin client type %T", raw)
	}
	return provider, client.Kill, nil
}

// Generate implements palette.Provider.
func (p *Provider) Generate(ctx context.Context, img image.Image) (*palette.Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for plugin: %w", err)
	}

	client, stop, err := p.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start plugin %s: %w", p.path, err)
	}
	defer stop()

	info, err := client.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin metadata: %w", err)
	}
	if ok, err := IsCompatible(info.ProtocolVersion); !ok {
		return nil, fmt.Errorf("plugin %s is not compatible: %w", info.Name, err)
	}
	p.logger.Debug("running provider plugin", "name", info.Name, "version", info.Version)

	swatches, err := client.Generate(ctx, pluginapi.GenerateRequest{
		Image:      buf.Bytes(),
		MaxColours: p.maxColours,
	})
	if err != nil {
		return nil, fmt.Errorf("plugin %s failed: %w", info.Name, err)
	}

	return p.toPalette(swatches), nil
}

// toPalette maps plugin swatches onto kinds. Unknown kinds are skipped and
// the first swatch for a kind wins.
func (p *Provider) toPalette(in []pluginapi.Swatch) *palette.Palette {
	all := make([]*palette.Swatch, 0, len(in))
	selected := make(map[palette.Kind]*palette.Swatch, len(in))
	for _, sw := range in {
		kind, err := palette.ParseKind(sw.Kind)
		if err != nil {
			p.logger.Warn("plugin returned unknown swatch kind", "kind", sw.Kind)
			continue
		}
		if _, dup := selected[kind]; dup {
			p.logger.Warn("plugin returned duplicate swatch kind", "kind", sw.Kind)
			continue
		}
		s := palette.NewSwatch(colour.RGB{R: sw.R, G: sw.G, B: sw.B}, max(sw.Population, 1))
		all = append(all, s)
		selected[kind] = s
	}
	return palette.NewPalette(all, selected)
}
