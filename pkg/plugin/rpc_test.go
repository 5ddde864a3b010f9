package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/rpc"
	"testing"
	"time"
)

// Mock implementations for testing.
type mockProviderPlugin struct {
	swatches    []Swatch
	metadata    PluginInfo
	generateErr error
	gotReq      GenerateRequest
	block       chan struct{}
}

func (m *mockProviderPlugin) Generate(_ context.Context, req GenerateRequest) ([]Swatch, error) {
	m.gotReq = req
	if m.block != nil {
		<-m.block
	}
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.swatches, nil
}

func (m *mockProviderPlugin) GetMetadata() PluginInfo {
	return m.metadata
}

func newMock() *mockProviderPlugin {
	return &mockProviderPlugin{
		swatches: []Swatch{
			{Kind: "vibrant", R: 255, G: 0, B: 0, Population: 10},
			{Kind: "dark-muted", R: 20, G: 30, B: 40, Population: 3},
		},
		metadata: PluginInfo{
			Name:            "test-provider",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
			Description:     "Test provider plugin",
		},
	}
}

// connect serves impl over an in-memory connection, the way go-plugin's
// net/rpc transport registers it.
func connect(t *testing.T, impl ProviderPlugin) *ProviderPluginRPCClient {
	t.Helper()

	raw, err := (&ProviderPluginRPC{Impl: impl}).Server(nil)
	if err != nil {
		t.Fatalf("Server() error = %v", err)
	}
	server := rpc.NewServer()
	if err := server.RegisterName("Plugin", raw); err != nil {
		t.Fatalf("RegisterName() error = %v", err)
	}

	serverConn, clientConn := net.Pipe()
	go server.ServeConn(serverConn)

	c := rpc.NewClient(clientConn)
	t.Cleanup(func() { c.Close() })

	client, err := (&ProviderPluginRPC{}).Client(nil, c)
	if err != nil {
		t.Fatalf("Client() error = %v", err)
	}
	return client.(*ProviderPluginRPCClient)
}

// TestProviderPluginRPC tests the provider plugin RPC wrapper.
func TestProviderPluginRPC(t *testing.T) {
	mock := newMock()
	p := &ProviderPluginRPC{Impl: mock}

	server, err := p.Server(nil)
	if err != nil {
		t.Fatalf("Server() error = %v", err)
	}
	rpcServer, ok := server.(*ProviderPluginRPCServer)
	if !ok {
		t.Fatal("Server() returned wrong type")
	}
	if rpcServer.Impl != mock {
		t.Fatal("Server() impl not set correctly")
	}

	client, err := p.Client(nil, nil)
	if err != nil || client == nil {
		t.Fatalf("Client() = %v, %v", client, err)
	}
}

// TestProviderPluginRoundTrip calls the plugin through net/rpc.
func TestProviderPluginRoundTrip(t *testing.T) {
	mock := newMock()
	client := connect(t, mock)

	info, err := client.GetMetadata()
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if info.Name != "test-provider" || info.ProtocolVersion != ProtocolVersion {
		t.Errorf("GetMetadata() = %+v", info)
	}

	swatches, err := client.Generate(context.Background(), GenerateRequest{Image: []byte{1, 2, 3}, MaxColours: 12})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(swatches) != 2 || swatches[0].Kind != "vibrant" || swatches[1].B != 40 {
		t.Errorf("Generate() = %+v", swatches)
	}
	if !bytes.Equal(mock.gotReq.Image, []byte{1, 2, 3}) || mock.gotReq.MaxColours != 12 {
		t.Errorf("plugin received %+v", mock.gotReq)
	}
}

// TestProviderPluginErrors tests error propagation.
func TestProviderPluginErrors(t *testing.T) {
	mock := newMock()
	mock.generateErr = errors.New("cannot decode image")
	client := connect(t, mock)

	_, err := client.Generate(context.Background(), GenerateRequest{})
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected RPCError, got %v", err)
	}
	if rpcErr.Message != "cannot decode image" {
		t.Errorf("RPCError message = %q", rpcErr.Message)
	}
}

// TestProviderPluginContext tests that a cancelled context abandons the call.
func TestProviderPluginContext(t *testing.T) {
	mock := newMock()
	mock.block = make(chan struct{})
	defer close(mock.block)
	client := connect(t, mock)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Generate(ctx, GenerateRequest{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

// TestWriteInfo tests the --plugin-info output.
func TestWriteInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInfo(&buf, newMock()); err != nil {
		t.Fatalf("WriteInfo() error = %v", err)
	}

	var info PluginInfo
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info.Name != "test-provider" {
		t.Errorf("info = %+v", info)
	}
}

// TestPluginMap tests the plugin set.
func TestPluginMap(t *testing.T) {
	m := PluginMap(newMock())
	if _, ok := m[ProviderPluginName]; !ok {
		t.Errorf("PluginMap missing %q", ProviderPluginName)
	}
	if Handshake.MagicCookieKey != "COLORFINDER_PLUGIN" {
		t.Errorf("unexpected magic cookie key %q", Handshake.MagicCookieKey)
	}
}
