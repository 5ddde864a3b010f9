package wallpaper

import (
	"context"
	"errors"
	"strings"
)

// MockProcessRunner is a mock implementation of ProcessRunner for testing.
type MockProcessRunner struct {
	// Outputs maps "name arg1 arg2" to the stdout returned for that command.
	Outputs map[string]string

	// RunFunc overrides Outputs when set.
	RunFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

	// Calls records every command line passed to Run.
	Calls []string
}

// Run executes the mock behavior.
func (m *MockProcessRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	m.Calls = append(m.Calls, line)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	if out, ok := m.Outputs[line]; ok {
		return []byte(out), nil, nil
	}
	return nil, []byte("command not found"), errors.New("exec: " + name + ": executable file not found")
}

// NewMockProcessRunner creates a mock runner answering the given command lines.
func NewMockProcessRunner(outputs map[string]string) *MockProcessRunner {
	return &MockProcessRunner{Outputs: outputs}
}

// StaticProcesses is a ProcessFinder over a fixed set of executable names.
type StaticProcesses []string

// Running implements ProcessFinder.
func (s StaticProcesses) Running(name string) (bool, error) {
	for _, p := range s {
		if p == name {
			return true, nil
		}
	}
	return false, nil
}
