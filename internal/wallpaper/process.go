package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/mitchellh/go-ps"
)

// ProcessRunner defines an interface for running external commands.
type ProcessRunner interface {
	// Run executes a command and returns its stdout and stderr.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// RealProcessRunner implements ProcessRunner using os/exec.
type RealProcessRunner struct{}

// NewRealProcessRunner creates a new real process runner.
func NewRealProcessRunner() *RealProcessRunner {
	return &RealProcessRunner{}
}

// Run executes a real external process.
func (r *RealProcessRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 - fixed wallpaper tool invocations

	stdout, err := cmd.Output()
	if err != nil {
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			return stdout, exitErr.Stderr, err
		}
		return stdout, nil, err
	}

	return stdout, nil, nil
}

// ProcessFinder reports whether a process with the given executable name is running.
type ProcessFinder interface {
	Running(name string) (bool, error)
}

// ProcessFinderFunc adapts a function to the ProcessFinder interface.
type ProcessFinderFunc func(name string) (bool, error)

// Running calls f(name).
func (f ProcessFinderFunc) Running(name string) (bool, error) {
	return f(name)
}

// PSFinder looks processes up in the system process table.
type PSFinder struct{}

// Running implements ProcessFinder.
func (PSFinder) Running(name string) (bool, error) {
	processes, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("failed to get process list: %w", err)
	}

	for _, p := range processes {
		if p.Executable() == name {
			return true, nil
		}
	}
	return false, nil
}
