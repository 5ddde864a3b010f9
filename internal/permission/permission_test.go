package permission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRequire(t *testing.T) {
	req := WallpaperRequest()

	if err := Require(context.Background(), Static(Granted), req); err != nil {
		t.Errorf("Require with granted decision returned %v", err)
	}

	err := Require(context.Background(), Static(Denied), req)
	if !IsDenied(err) {
		t.Fatalf("Require with denied decision returned %v, want DeniedError", err)
	}
	var denied *DeniedError
	if !errors.As(err, &denied) {
		t.Fatal("errors.As failed")
	}
	if denied.Title != "Permission Required" {
		t.Errorf("Title = %q", denied.Title)
	}
	want := "In order to access the wallpaper, the app needs permission to access the device media. " +
		"Please go to settings and grant access to media."
	if denied.Message != want {
		t.Errorf("Message = %q, want %q", denied.Message, want)
	}

	if err := Require(context.Background(), nil, req); !IsDenied(err) {
		t.Errorf("Require with nil asker returned %v, want DeniedError", err)
	}
}

func TestRequireAskerError(t *testing.T) {
	boom := errors.New("boom")
	asker := AskerFunc(func(context.Context, Request) (Decision, error) {
		return Granted, boom
	})

	err := Require(context.Background(), asker, WallpaperRequest())
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped asker error, got %v", err)
	}
	if IsDenied(err) {
		t.Error("asker failure should not be reported as a denial")
	}
}

func TestRequireAsksOnce(t *testing.T) {
	calls := 0
	asker := AskerFunc(func(_ context.Context, req Request) (Decision, error) {
		calls++
		if req.Resource != ResourceWallpaper {
			t.Errorf("unexpected resource %q", req.Resource)
		}
		return Denied, nil
	})

	_ = Require(context.Background(), asker, WallpaperRequest())
	if calls != 1 {
		t.Errorf("asker called %d times, want 1", calls)
	}
}

func TestAdvisoryOtherResource(t *testing.T) {
	adv := Advisory(Request{Resource: "screen"})
	if !strings.Contains(adv.Message, "screen") {
		t.Errorf("advisory for screen = %q", adv.Message)
	}
	if wrapped := fmt.Errorf("outer: %w", adv); !IsDenied(wrapped) {
		t.Error("IsDenied should see through wrapping")
	}
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		want        Decision
	}{
		{name: "yes", input: "y\n", interactive: true, want: Granted},
		{name: "yes word", input: "YES\n", interactive: true, want: Granted},
		{name: "no", input: "n\n", interactive: true, want: Denied},
		{name: "empty answer", input: "\n", interactive: true, want: Denied},
		{name: "eof", input: "", interactive: true, want: Denied},
		{name: "no trailing newline", input: "y", interactive: true, want: Granted},
		{name: "not a terminal", input: "y\n", interactive: false, want: Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &Prompt{
				In:         strings.NewReader(tt.input),
				Out:        &out,
				IsTerminal: func() bool { return tt.interactive },
			}
			got, err := p.Ask(context.Background(), WallpaperRequest())
			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Ask() = %v, want %v", got, tt.want)
			}
			if tt.interactive && !strings.Contains(out.String(), "[y/N]") {
				t.Errorf("prompt not written, got %q", out.String())
			}
		})
	}
}

func TestPromptDefaultTerminalCheck(t *testing.T) {
	// A plain reader is never interactive, whatever stdin is.
	p := &Prompt{In: strings.NewReader("y\n"), Out: io.Discard}
	if got, err := p.Ask(context.Background(), WallpaperRequest()); err != nil || got != Denied {
		t.Errorf("Ask() on a plain reader = %v, %v, want denied", got, err)
	}

	// A pipe is a file but not a terminal.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer r.Close()
	defer w.Close()
	if _, err := w.WriteString("y\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	p = &Prompt{In: r, Out: io.Discard}
	if got, err := p.Ask(context.Background(), WallpaperRequest()); err != nil || got != Denied {
		t.Errorf("Ask() on a pipe = %v, %v, want denied", got, err)
	}
}

// trackedReader records when its blocked read gives up.
type trackedReader struct {
	*os.File
	once     sync.Once
	finished chan struct{}
}

func (r *trackedReader) Read(b []byte) (int, error) {
	n, err := r.File.Read(b)
	if err != nil {
		r.once.Do(func() { close(r.finished) })
	}
	return n, err
}

func TestPromptCancelInterruptsRead(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pipe read deadlines are not supported on windows")
	}
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	defer r.Close()
	defer w.Close()

	in := &trackedReader{File: r, finished: make(chan struct{})}
	p := &Prompt{In: in, Out: io.Discard, IsTerminal: func() bool { return true }}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	got, err := p.Ask(ctx, WallpaperRequest())
	if !errors.Is(err, context.Canceled) || got != Denied {
		t.Fatalf("Ask() = %v, %v, want denied and context.Canceled", got, err)
	}

	select {
	case <-in.finished:
	case <-time.After(2 * time.Second):
		t.Error("reader goroutine still blocked after cancellation")
	}
}

func TestDecisionString(t *testing.T) {
	if Granted.String() != "granted" || Denied.String() != "denied" {
		t.Errorf("unexpected decision strings %q %q", Granted, Denied)
	}
}
