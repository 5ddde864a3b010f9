// Package permission models access requests as an explicit request and
// decision. Callers ask before touching a protected resource and get a typed
// error describing the advisory to show when access is refused.
package permission

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Decision is the outcome of a permission request.
type Decision int

const (
	// Denied means access was refused.
	Denied Decision = iota
	// Granted means access was allowed.
	Granted
)

func (d Decision) String() string {
	if d == Granted {
		return "granted"
	}
	return "denied"
}

// Request describes a resource the application wants to read.
type Request struct {
	Resource  string
	Title     string
	Rationale string
}

// Asker obtains a decision for a request.
type Asker interface {
	Ask(ctx context.Context, req Request) (Decision, error)
}

// AskerFunc adapts a function to the Asker interface.
type AskerFunc func(ctx context.Context, req Request) (Decision, error)

// Ask calls f(ctx, req).
func (f AskerFunc) Ask(ctx context.Context, req Request) (Decision, error) {
	return f(ctx, req)
}

// Static always answers with the same decision.
type Static Decision

// Ask implements Asker.
func (s Static) Ask(context.Context, Request) (Decision, error) {
	return Decision(s), nil
}

const (
	// DeniedTitle is the heading of the advisory shown after a denial.
	DeniedTitle = "Permission Required"

	// wallpaperDeniedMessage explains how to recover from a denied wallpaper request.
	wallpaperDeniedMessage = "In order to access the wallpaper, the app needs permission to access the device media. " +
		"Please go to settings and grant access to media."
)

// ResourceWallpaper identifies the desktop wallpaper.
const ResourceWallpaper = "wallpaper"

// WallpaperRequest returns the request made before reading the wallpaper.
func WallpaperRequest() Request {
	return Request{
		Resource:  ResourceWallpaper,
		Title:     "Allow access to your wallpaper?",
		Rationale: "Color Finder reads your current wallpaper image to extract its colours.",
	}
}

// DeniedError is returned by Require when access was refused. Title and
// Message form the advisory dialog; it has a single acknowledge action.
type DeniedError struct {
	Resource string
	Title    string
	Message  string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("permission denied for %s: %s", e.Resource, e.Message)
}

// IsDenied reports whether err is, or wraps, a DeniedError.
func IsDenied(err error) bool {
	var denied *DeniedError
	return errors.As(err, &denied)
}

// Advisory builds the DeniedError shown for a refused request.
func Advisory(req Request) *DeniedError {
	msg := wallpaperDeniedMessage
	if req.Resource != ResourceWallpaper {
		msg = fmt.Sprintf("In order to access the %s, the app needs your permission. Please grant access and try again.", req.Resource)
	}
	return &DeniedError{Resource: req.Resource, Title: DeniedTitle, Message: msg}
}

// Require asks once and returns nil only when access is granted. There is no
// retry: a denial yields a DeniedError.
func Require(ctx context.Context, asker Asker, req Request) error {
	if asker == nil {
		return Advisory(req)
	}
	decision, err := asker.Ask(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to request %s permission: %w", req.Resource, err)
	}
	if decision != Granted {
		return Advisory(req)
	}
	return nil
}

// Prompt asks on a terminal with a y/N question. Non-interactive input is
// treated as a denial.
type Prompt struct {
	In  io.Reader
	Out io.Writer

	// IsTerminal reports whether In is interactive. Defaults to checking In
	// with x/term when it is an *os.File; any other reader is not interactive.
	IsTerminal func() bool
}

// NewPrompt creates a prompt on stdin and stderr.
func NewPrompt() *Prompt {
	return &Prompt{In: os.Stdin, Out: os.Stderr}
}

func (p *Prompt) interactive() bool {
	if p.IsTerminal != nil {
		return p.IsTerminal()
	}
	f, ok := p.In.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// deadliner is implemented by readers whose blocked reads can be interrupted.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

// Ask implements Asker.
//
// The answer is read on a separate goroutine so ctx can cancel the wait. On
// cancellation a read deadline interrupts that goroutine when In supports
// one. A terminal stdin usually does not, and the goroutine then stays
// blocked until the next line or EOF.
func (p *Prompt) Ask(ctx context.Context, req Request) (Decision, error) {
	if !p.interactive() {
		return Denied, nil
	}

	fmt.Fprintf(p.Out, "%s\n%s [y/N]: ", req.Title, req.Rationale)

	answers := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if err != nil && line == "" {
			errs <- err
			return
		}
		answers <- line
	}()

	select {
	case <-ctx.Done():
		if d, ok := p.In.(deadliner); ok {
			_ = d.SetReadDeadline(time.Now())
		}
		return Denied, ctx.Err()
	case err := <-errs:
		if errors.Is(err, io.EOF) {
			return Denied, nil
		}
		return Denied, fmt.Errorf("failed to read answer: %w", err)
	case line := <-answers:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return Granted, nil
		default:
			return Denied, nil
		}
	}
}
