// Package config loads and validates the inventory source
// configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/strimblaster/unraid-inventory/internal/naming"
)

const (
	// SourceSSH discovers VMs by running virsh over an SSH connection
	// to the hypervisor host. This is the default.
	SourceSSH = "ssh"
	// SourceSocket discovers VMs over the local libvirt UNIX socket,
	// for runs on the hypervisor itself.
	SourceSocket = "socket"
)

const (
	// DefaultNamePattern passes all VMs.
	DefaultNamePattern = `.*`
	// DefaultInterfacePattern selects ethernet-style interface names
	// (enp1s0, ens3, eth-style "en" prefixes).
	DefaultInterfacePattern = `en\w+`
)

// passwordEnv is consulted when unraid_password is absent from the
// file, so the secret can stay out of version-controlled configs.
const passwordEnv = "UNRAID_PASSWORD"

// Config represents the complete inventory source configuration.
type Config struct {
	// Source selects the discovery transport: "ssh" (default) or
	// "socket".
	Source string `yaml:"source,omitempty"`

	// Host is the Unraid hostname or IP address, with optional :port.
	Host string `yaml:"unraid_host"`
	// User and Password authenticate the SSH session. Password falls
	// back to the UNRAID_PASSWORD environment variable.
	User     string `yaml:"unraid_user"`
	Password string `yaml:"unraid_password,omitempty"`

	// SocketPath is the libvirt socket for source "socket". Empty
	// means the daemon default.
	SocketPath string `yaml:"socket_path,omitempty"`

	// NamePattern filters VMs by raw name, anchored at the start
	// (prefix match). Default: all VMs.
	NamePattern string `yaml:"vm_name_pattern,omitempty"`
	// InterfacePattern selects which guest interface's IPv4 address
	// wins, anchored at the start. Default: "en\w+".
	InterfacePattern string `yaml:"vm_interface_pattern,omitempty"`

	// AnsibleUser, when set, is attached to every produced host as
	// its connection user.
	AnsibleUser string `yaml:"ansible_user,omitempty"`

	// TimeoutSeconds bounds connection establishment. Zero means the
	// transport default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// MissingParameterError indicates a required configuration parameter
// is absent. It aborts the run before any connection attempt.
type MissingParameterError struct {
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Parameter)
}

// Normalize sanitizes user input to consistent formats.
// This is called automatically by LoadFromFile before validation.
func (c *Config) Normalize() {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source == "" {
		c.Source = SourceSSH
	}

	c.Host = strings.TrimSpace(c.Host)
	c.User = strings.TrimSpace(c.User)

	if c.Password == "" {
		c.Password = os.Getenv(passwordEnv)
	}

	if c.NamePattern == "" {
		c.NamePattern = DefaultNamePattern
	}
	if c.InterfacePattern == "" {
		c.InterfacePattern = DefaultInterfacePattern
	}
}

// Validate checks the configuration for errors. Missing required
// parameters are reported as MissingParameterError so callers can
// abort before connecting.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSSH:
		if c.Host == "" {
			return &MissingParameterError{Parameter: "unraid_host"}
		}
		if c.User == "" {
			return &MissingParameterError{Parameter: "unraid_user"}
		}
		if c.Password == "" {
			return &MissingParameterError{Parameter: "unraid_password"}
		}
	case SourceSocket:
		// The local socket needs no credentials.
	default:
		return fmt.Errorf("source must be %q or %q, got %q", SourceSSH, SourceSocket, c.Source)
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be >= 0, got %d", c.TimeoutSeconds)
	}

	// Compile both patterns so bad regexes fail at load time, not in
	// the middle of a run.
	if _, err := naming.CompileMatch(c.NamePattern); err != nil {
		return fmt.Errorf("vm_name_pattern: %w", err)
	}
	if _, err := naming.CompileMatch(c.InterfacePattern); err != nil {
		return fmt.Errorf("vm_interface_pattern: %w", err)
	}

	return nil
}

// NameMatcher returns the compiled VM-name filter.
func (c *Config) NameMatcher() (naming.Matcher, error) {
	return naming.CompileMatch(c.NamePattern)
}

// InterfaceMatcher returns the compiled interface-name filter.
func (c *Config) InterfaceMatcher() (naming.Matcher, error) {
	return naming.CompileMatch(c.InterfacePattern)
}

// Timeout returns the configured connection timeout, zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadFromFile loads an inventory configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
