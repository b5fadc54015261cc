package virsh

import (
	"context"
	"errors"

	"github.com/strimblaster/unraid-inventory/internal/sshexec"
)

// mockExecutor is a mock implementation of the sshexec.Executor
// interface for testing.
type mockExecutor struct {
	// Configurable behavior
	executeFunc func(ctx context.Context, command string) (string, string, error)

	// Call tracking
	executeCalls []string
}

func newMockExecutor() *mockExecutor {
	m := &mockExecutor{}

	// Default: every command succeeds with empty output
	m.executeFunc = func(ctx context.Context, command string) (string, string, error) {
		return "", "", nil
	}

	return m
}

func (m *mockExecutor) Execute(ctx context.Context, command string) (string, string, error) {
	m.executeCalls = append(m.executeCalls, command)
	return m.executeFunc(ctx, command)
}

// failingExecutor returns a mock whose every command fails with a
// CommandError carrying the given stderr.
func failingExecutor(stderr string) *mockExecutor {
	m := newMockExecutor()
	m.executeFunc = func(_ context.Context, command string) (string, string, error) {
		return "", stderr, &sshexec.CommandError{
			Command: command,
			Stderr:  stderr,
			Err:     errors.New("exit status 1"),
		}
	}
	return m
}
