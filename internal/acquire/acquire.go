// Package acquire obtains the image a palette is extracted from: a file, a
// file picked through the desktop portal, the current wallpaper, or a screen
// capture.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/rymdport/portal/filechooser"

	imgutil "github.com/jmylchreest/colorfinder/internal/image"
	"github.com/jmylchreest/colorfinder/internal/permission"
)

// ErrCancelled is returned when the user dismisses a picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

// Image is an acquired image and a description of where it came from.
type Image struct {
	Image  image.Image
	Origin string
}

// Source produces an image.
type Source interface {
	Acquire(ctx context.Context) (*Image, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (*Image, error)

// Acquire calls f(ctx).
func (f SourceFunc) Acquire(ctx context.Context) (*Image, error) {
	return f(ctx)
}

func loaderOrDefault(l imgutil.Loader) imgutil.Loader {
	if l == nil {
		return imgutil.NewFileLoader()
	}
	return l
}

// File loads an image from a path, file:// URI or directory (one random image).
type File struct {
	Path   string
	Loader imgutil.Loader
}

// Acquire implements Source.
func (f File) Acquire(ctx context.Context) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := imgutil.ResolveImagePath(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image path: %w", err)
	}
	img, err := loaderOrDefault(f.Loader).Load(path)
	if err != nil {
		return nil, err
	}
	return &Image{Image: img, Origin: path}, nil
}

// OpenFunc shows a file chooser and returns the chosen URIs.
type OpenFunc func(title string, mimeTypes []string) ([]string, error)

// Picker lets the user choose an image through the XDG desktop portal.
type Picker struct {
	Title  string
	Open   OpenFunc
	Loader imgutil.Loader
}

// PortalOpen shows the portal file chooser filtered to image MIME types.
func PortalOpen(title string, mimeTypes []string) ([]string, error) {
	rules := make([]filechooser.Rule, 0, len(mimeTypes))
	for _, mt := range mimeTypes {
		rules = append(rules, filechooser.Rule{Type: filechooser.MIMEType, Pattern: mt})
	}
	filter := &filechooser.Filter{Name: "Images", Rules: rules}

	return filechooser.OpenFile("", title, &filechooser.OpenFileOptions{
		NotModal:      false, // modal dialog
		Filters:       []*filechooser.Filter{filter},
		CurrentFilter: filter,
	})
}

// Acquire implements Source.
func (p Picker) Acquire(ctx context.Context) (*Image, error) {
	open := p.Open
	if open == nil {
		open = PortalOpen
	}
	title := p.Title
	if title == "" {
		title = "Choose an image"
	}

	uris, err := open(title, imgutil.SupportedMIMETypes())
	if err != nil {
		return nil, fmt.Errorf("failed to open file chooser: %w", err)
	}
	if len(uris) == 0 || uris[0] == "" {
		return nil, ErrCancelled
	}

	return File{Path: uris[0], Loader: p.Loader}.Acquire(ctx)
}

// PathReader returns the path of the current wallpaper.
type PathReader interface {
	Path(ctx context.Context) (string, error)
}

// Wallpaper loads the current wallpaper after asking for permission. The
// reader is never consulted unless access is granted.
type Wallpaper struct {
	Asker  permission.Asker
	Reader PathReader
	Loader imgutil.Loader
}

// Acquire implements Source.
func (w Wallpaper) Acquire(ctx context.Context) (*Image, error) {
	if err := permission.Require(ctx, w.Asker, permission.WallpaperRequest()); err != nil {
		return nil, err
	}
	if w.Reader == nil {
		return nil, fmt.Errorf("no wallpaper reader configured")
	}

	path, err := w.Reader.Path(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to locate wallpaper: %w", err)
	}
	img, err := loaderOrDefault(w.Loader).Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallpaper: %w", err)
	}
	return &Image{Image: img, Origin: path}, nil
}

// CaptureFunc captures one display.
type CaptureFunc func(display int) (image.Image, error)

// Screen captures a display.
type Screen struct {
	Display int
	Capture CaptureFunc
}

// CaptureDisplay captures the given display with kbinani/screenshot.
func CaptureDisplay(display int) (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	if display < 0 || display >= n {
		return nil, fmt.Errorf("display %d out of range (0-%d)", display, n-1)
	}
	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(display))
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, nil
}

// Acquire implements Source.
func (s Screen) Acquire(ctx context.Context) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	capture := s.Capture
	if capture == nil {
		capture = CaptureDisplay
	}
	img, err := capture(s.Display)
	if err != nil {
		return nil, err
	}
	return &Image{Image: img, Origin: fmt.Sprintf("display %d", s.Display)}, nil
}
