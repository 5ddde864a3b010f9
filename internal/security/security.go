// Package security holds the input guards shared by the image loader and the
// plugin host.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// MaxImageBytes bounds how much of an image file is read.
const MaxImageBytes int64 = 256 << 20

// MaxImagePixels bounds the decoded area of an image. At four bytes per
// pixel this is about 400 MB.
const MaxImagePixels int64 = 100_000_000

var (
	// ErrSizeLimit is returned by LimitedReader once its budget is spent.
	ErrSizeLimit = errors.New("size limit exceeded")

	// ErrImageTooLarge is returned for images whose declared area exceeds
	// MaxImagePixels.
	ErrImageTooLarge = errors.New("image dimensions exceed limit")
)

// ValidateImageDimensions checks declared image dimensions before decoding.
// A compressed file can declare far more pixels than its size suggests.
func ValidateImageDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if int64(width)*int64(height) > MaxImagePixels {
		return fmt.Errorf("%w: %dx%d (maximum %d pixels)", ErrImageTooLarge, width, height, MaxImagePixels)
	}
	return nil
}

// ValidatePluginBinary checks that path names an executable regular file.
func ValidatePluginBinary(path string) error {
	if path == "" {
		return fmt.Errorf("empty plugin path")
	}

	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("plugin not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("plugin path is a directory: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("plugin is not a regular file: %s", path)
	}
	// Windows has no execute bit.
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("plugin is not executable: %s", path)
	}
	return nil
}

// SafeUint8 safely converts an integer to uint8 with bounds checking.
// Values outside 0-255 are clamped to the valid range.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// SafeUint8FromUint32 safely converts uint32 to uint8 with bounds checking.
func SafeUint8FromUint32(val uint32) uint8 {
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader wraps an io.Reader and fails once more than the allowed
// number of bytes has been requested.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
