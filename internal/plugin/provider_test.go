package plugin

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/jmylchreest/colorfinder/internal/colour"
	"github.com/jmylchreest/colorfinder/internal/palette"
	pluginapi "github.com/jmylchreest/colorfinder/pkg/plugin"
)

type fakeClient struct {
	info     pluginapi.PluginInfo
	swatches []pluginapi.Swatch
	err      error
	gotReq   pluginapi.GenerateRequest
}

func (f *fakeClient) GetMetadata() (pluginapi.PluginInfo, error) {
	return f.info, nil
}

func (f *fakeClient) Generate(_ context.Context, req pluginapi.GenerateRequest) ([]pluginapi.Swatch, error) {
	f.gotReq = req
	return f.swatches, f.err
}

func dialer(c Client, stopped *int) DialFunc {
	return func(context.Context) (Client, func(), error) {
		return c, func() { *stopped++ }, nil
	}
}

func TestProviderGenerate(t *testing.T) {
	client := &fakeClient{
		info: pluginapi.PluginInfo{Name: "fake", ProtocolVersion: pluginapi.ProtocolVersion},
		swatches: []pluginapi.Swatch{
			{Kind: "vibrant", R: 0xFF, G: 0x00, B: 0x00, Population: 5},
			{Kind: "Dark Muted", R: 0x30, G: 0x38, B: 0x40},
			{Kind: "neon", R: 1, G: 2, B: 3},
			{Kind: "vibrant", R: 0x00, G: 0xFF, B: 0x00},
		},
	}
	stopped := 0
	p, err := NewProvider("unused", WithDialer(dialer(client, &stopped)), WithMaxColours(24))
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	pal, err := p.Generate(context.Background(), image.NewRGBA(image.Rect(0, 0, 3, 2)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if stopped != 1 {
		t.Errorf("plugin stopped %d times, want 1", stopped)
	}
	if client.gotReq.MaxColours != 24 {
		t.Errorf("MaxColours = %d, want 24", client.gotReq.MaxColours)
	}

	decoded, err := png.Decode(bytes.NewReader(client.gotReq.Image))
	if err != nil {
		t.Fatalf("plugin did not receive a PNG: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}

	if pal.Len() != 2 {
		t.Fatalf("palette has %d kinds, want 2: %v", pal.Len(), pal.Kinds())
	}
	v, _ := pal.Swatch(palette.Vibrant)
	if v.RGB != (colour.RGB{R: 0xFF}) {
		t.Errorf("vibrant = %s, first swatch should win", v.Hex())
	}
	dm, _ := pal.Swatch(palette.DarkMuted)
	if dm.Hex() != "#303840" || dm.Population != 1 {
		t.Errorf("dark muted = %s (population %d)", dm.Hex(), dm.Population)
	}
}

func TestProviderIncompatible(t *testing.T) {
	client := &fakeClient{info: pluginapi.PluginInfo{Name: "old", ProtocolVersion: "9.0.0"}}
	stopped := 0
	p, err := NewProvider("unused", WithDialer(dialer(client, &stopped)))
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	_, err = p.Generate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil || !strings.Contains(err.Error(), "incompatible major version") {
		t.Errorf("expected incompatibility error, got %v", err)
	}
	if stopped != 1 {
		t.Errorf("plugin should be stopped after a failed check")
	}
}

func TestProviderErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("plugin error", func(t *testing.T) {
		client := &fakeClient{
			info: pluginapi.PluginInfo{Name: "fake", ProtocolVersion: pluginapi.ProtocolVersion},
			err:  boom,
		}
		stopped := 0
		p, _ := NewProvider("unused", WithDialer(dialer(client, &stopped)))
		if _, err := p.Generate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, boom) {
			t.Errorf("expected wrapped plugin error, got %v", err)
		}
	})

	t.Run("dial error", func(t *testing.T) {
		p, _ := NewProvider("unused", WithDialer(func(context.Context) (Client, func(), error) {
			return nil, nil, boom
		}))
		if _, err := p.Generate(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, boom) {
			t.Errorf("expected wrapped dial error, got %v", err)
		}
	})

	t.Run("nil image", func(t *testing.T) {
		p, _ := NewProvider("unused", WithDialer(dialer(&fakeClient{}, new(int))))
		if _, err := p.Generate(context.Background(), nil); err == nil {
			t.Error("expected error for nil image")
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		if _, err := NewProvider("/nonexistent/provider"); err == nil {
			t.Error("expected error for missing plugin binary")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := NewProvider(t.TempDir()); err == nil {
			t.Error("expected error for directory")
		}
	})
}
