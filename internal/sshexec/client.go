package sshexec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultTimeout is the dial timeout used when none is configured.
const DefaultTimeout = 10 * time.Second

// Options configures a Client connection.
type Options struct {
	// Host is the hypervisor address, with or without a port.
	// Port 22 is assumed when absent.
	Host string
	// User and Password authenticate the SSH session.
	User     string
	Password string
	// Timeout bounds connection establishment. Zero means
	// DefaultTimeout.
	Timeout time.Duration
}

// Client executes commands over a single authenticated SSH connection.
// It must be closed via Close() when the run ends.
type Client struct {
	conn *ssh.Client
	host string
}

// Connect dials the hypervisor host and authenticates. A failure here
// is reported as a *ConnectionError and is fatal for the run.
//
// Host keys are not verified; the tool targets a trusted homelab
// hypervisor, matching the original AutoAddPolicy behavior.
func Connect(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	config := &ssh.ClientConfig{
		User: opts.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(opts.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	addr := opts.Host
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "22")
	}

	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, &ConnectionError{Host: opts.Host, User: opts.User, Err: err}
	}

	return &Client{conn: conn, host: opts.Host}, nil
}

// ConnectWithContext dials with context support for cancellation.
func ConnectWithContext(ctx context.Context, opts Options) (*Client, error) {
	type result struct {
		client *Client
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		c, err := Connect(opts)
		resultCh <- result{client: c, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &ConnectionError{Host: opts.Host, User: opts.User, Err: ctx.Err()}
	case res := <-resultCh:
		return res.client, res.err
	}
}

// Execute runs command on the remote host. Each command gets its own
// session on the shared connection; commands are never run
// concurrently by the discovery pipeline.
func (c *Client) Execute(ctx context.Context, command string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", &CommandError{Command: command, Err: err}
	}

	session, err := c.conn.NewSession()
	if err != nil {
		return "", "", &CommandError{Command: command, Err: err}
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil && !errors.Is(closeErr, io.EOF) {
			log.Printf("Warning: failed to close SSH session: %v", closeErr)
		}
	}()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	if err := session.Run(command); err != nil {
		return stdoutBuf.String(), stderrBuf.String(), &CommandError{
			Command: command,
			Stderr:  stderrBuf.String(),
			Err:     err,
		}
	}

	return stdoutBuf.String(), stderrBuf.String(), nil
}

// Close closes the SSH connection. It is safe to call Close on a nil
// client.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Host returns the configured hypervisor address.
func (c *Client) Host() string { return c.host }
