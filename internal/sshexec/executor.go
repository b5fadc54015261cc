// Package sshexec provides remote command execution on the hypervisor
// host over SSH.
//
// The package exposes a small Executor interface so that the discovery
// pipeline can be tested without a live host, and a Client
// implementation backed by golang.org/x/crypto/ssh. One authenticated
// connection is established per run; commands are executed one at a
// time, each on its own session.
package sshexec

import (
	"context"
	"fmt"
)

// Executor runs a shell command on the hypervisor host and captures
// its output.
//
// In production this is satisfied by *Client. In tests it is satisfied
// by mock implementations.
type Executor interface {
	// Execute runs command on the remote host and returns captured
	// stdout and stderr. A non-zero exit status is reported as a
	// *CommandError; stdout and stderr are still returned as captured.
	Execute(ctx context.Context, command string) (stdout, stderr string, err error)
}

// ConnectionError indicates the SSH session to the hypervisor host
// could not be established: unreachable host, failed authentication,
// or protocol negotiation failure. It is fatal for the whole run.
//
// The error message includes the host and user but never the password.
type ConnectionError struct {
	Host string
	User string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s as %s: %v", e.Host, e.User, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// CommandError indicates a remote command ran but returned failure.
// Whether this is fatal depends on the caller.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("remote command %q failed: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("remote command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
