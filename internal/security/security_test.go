package security

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestValidatePluginBinary(t *testing.T) {
	dir := t.TempDir()

	exe := filepath.Join(dir, "provider")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plain, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"executable", exe, false},
		{"empty", "", true},
		{"missing", filepath.Join(dir, "missing"), true},
		{"directory", dir, true},
		{"not executable", plain, runtime.GOOS != "windows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePluginBinary(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePluginBinary(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSafeUint8(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := SafeUint8(tt.in); got != tt.want {
			t.Errorf("SafeUint8(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := SafeUint8FromUint32(65535 >> 8); got != 255 {
		t.Errorf("SafeUint8FromUint32(255) = %d", got)
	}
	if got := SafeUint8FromUint32(1 << 20); got != 255 {
		t.Errorf("SafeUint8FromUint32 should clamp, got %d", got)
	}
}

func TestLimitedReader(t *testing.T) {
	data, err := io.ReadAll(NewLimitedReader(strings.NewReader("hello"), 10))
	if err != nil || string(data) != "hello" {
		t.Errorf("read under limit = %q, %v", data, err)
	}

	_, err = io.ReadAll(NewLimitedReader(strings.NewReader("hello world"), 5))
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("expected ErrSizeLimit, got %v", err)
	}
}

func TestValidateImageDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
		wantTooLarge  bool
	}{
		{name: "small", width: 640, height: 480},
		{name: "at limit", width: 10_000, height: 10_000},
		{name: "zero width", width: 0, height: 10, wantErr: true},
		{name: "negative height", width: 10, height: -1, wantErr: true},
		{name: "over limit", width: 10_001, height: 10_000, wantErr: true, wantTooLarge: true},
		{name: "huge declared png", width: 60_000, height: 60_000, wantErr: true, wantTooLarge: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateImageDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if tt.wantTooLarge && !errors.Is(err, ErrImageTooLarge) {
				t.Errorf("expected ErrImageTooLarge, got %v", err)
			}
		})
	}
}
