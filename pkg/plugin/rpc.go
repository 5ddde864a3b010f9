package plugin

import (
	"context"
	"encoding/json"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ProviderPluginRPC implements the go-plugin Plugin interface for provider plugins.
type ProviderPluginRPC struct {
	plugin.Plugin
	Impl ProviderPlugin
}

// Server returns an RPC server for this plugin.
func (p *ProviderPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ProviderPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ProviderPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ProviderPluginRPCClient{client: c}, nil
}

// ProviderPluginRPCServer is the RPC server implementation for provider plugins.
type ProviderPluginRPCServer struct {
	Impl ProviderPlugin
}

// Generate implements the RPC method for palette generation.
func (s *ProviderPluginRPCServer) Generate(req GenerateRequest, resp *[]byte) error {
	swatches, err := s.Impl.Generate(context.Background(), req)
	if err != nil {
		return err
	}

	data, err := json.Marshal(swatches)
	if err != nil {
		return err
	}

	*resp = data
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ProviderPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// ProviderPluginRPCClient is the RPC client implementation for provider plugins.
type ProviderPluginRPCClient struct {
	client *rpc.Client
}

// NewProviderPluginRPCClient wraps an RPC client connected to a provider server.
func NewProviderPluginRPCClient(c *rpc.Client) *ProviderPluginRPCClient {
	return &ProviderPluginRPCClient{client: c}
}

// Generate calls the remote Generate method. The call is abandoned when ctx
// is done; the caller is expected to kill the plugin process.
func (c *ProviderPluginRPCClient) Generate(ctx context.Context, req GenerateRequest) ([]Swatch, error) {
	var respBytes []byte
	call := c.client.Go("Plugin.Generate", req, &respBytes, make(chan *rpc.Call, 1))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.Done:
	}
	if call.Error != nil {
		return nil, &RPCError{Message: call.Error.Error()}
	}

	var swatches []Swatch
	if err := json.Unmarshal(respBytes, &swatches); err != nil {
		return nil, err
	}
	return swatches, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *ProviderPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
