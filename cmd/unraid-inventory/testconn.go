package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strimblaster/unraid-inventory/internal/config"
	"github.com/strimblaster/unraid-inventory/internal/libvirt"
	"github.com/strimblaster/unraid-inventory/internal/sshexec"
)

var testConnCmd = &cobra.Command{
	Use:   "test-conn",
	Short: "Test the hypervisor connection",
	Long:  `Test connectivity to the configured hypervisor and display version information.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if cfg.Source == config.SourceSocket {
			return testSocketConn(ctx, cfg)
		}
		return testSSHConn(ctx, cfg)
	},
}

func testSSHConn(ctx context.Context, cfg *config.Config) error {
	fmt.Printf("Testing SSH connection to %s as %s...\n", cfg.Host, cfg.User)

	client, err := sshexec.ConnectWithContext(ctx, sshexec.Options{
		Host:     cfg.Host,
		User:     cfg.User,
		Password: cfg.Password,
		Timeout:  cfg.Timeout(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close SSH connection: %v\n", closeErr)
		}
	}()

	fmt.Println("✓ Connected to hypervisor host")

	hostname, _, err := client.Execute(ctx, "hostname")
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	fmt.Printf("✓ Hypervisor hostname: %s\n", strings.TrimSpace(hostname))

	version, _, err := client.Execute(ctx, "virsh version --daemon")
	if err != nil {
		return fmt.Errorf("virsh is not usable on the host: %w", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(version), "\n") {
		fmt.Printf("✓ %s\n", strings.TrimSpace(line))
	}

	fmt.Println("\nConnection test successful!")
	return nil
}

func testSocketConn(ctx context.Context, cfg *config.Config) error {
	fmt.Println("Testing libvirt socket connection...")

	client, err := libvirt.ConnectWithContext(ctx, cfg.SocketPath, cfg.Timeout())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close libvirt connection: %v\n", closeErr)
		}
	}()

	fmt.Println("✓ Connected to libvirt daemon")

	if err := client.Ping(); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	version, err := client.Libvirt().ConnectGetLibVersion()
	if err != nil {
		return fmt.Errorf("failed to get libvirt version: %w", err)
	}

	// libvirt returns the version as an integer like 8006000 for 8.6.0
	major := version / 1000000
	minor := (version % 1000000) / 1000
	patch := version % 1000
	fmt.Printf("✓ Libvirt version: %d.%d.%d\n", major, minor, patch)

	hostname, err := client.Libvirt().ConnectGetHostname()
	if err != nil {
		return fmt.Errorf("failed to get hostname: %w", err)
	}
	fmt.Printf("✓ Hypervisor hostname: %s\n", hostname)

	fmt.Println("\nConnection test successful!")
	return nil
}
