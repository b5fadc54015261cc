package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strimblaster/unraid-inventory/internal/config"
	"github.com/strimblaster/unraid-inventory/internal/inventory"
	"github.com/strimblaster/unraid-inventory/internal/libvirt"
	"github.com/strimblaster/unraid-inventory/internal/sshexec"
	"github.com/strimblaster/unraid-inventory/internal/virsh"
)

var (
	version = "dev"
	commit  = "unknown"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "unraid-inventory",
	Short: "Unraid VM inventory discovery tool",
	Long: `unraid-inventory discovers the VMs hosted on an Unraid machine and
produces an Ansible inventory from them.

It connects to the hypervisor over SSH, lists all defined VMs, asks
each VM's QEMU guest agent for its network addresses, and emits one
"unraid" group with an ansible_host entry per reachable VM.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		"unraid_vm_inventory.yml", "path to the inventory configuration file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(ansibleCmd)
	rootCmd.AddCommand(testConnCmd)
}

// discover loads the configuration, opens the configured source, runs
// one discovery pass, and closes the source again. All commands go
// through here so the session lifecycle is identical everywhere.
func discover(ctx context.Context, cfg *config.Config, quiet bool) (*inventory.Inventory, error) {
	nameMatch, err := cfg.NameMatcher()
	if err != nil {
		return nil, err
	}
	ifaceMatch, err := cfg.InterfaceMatcher()
	if err != nil {
		return nil, err
	}

	opts := inventory.DiscoverOptions{
		NameMatch:   nameMatch,
		AnsibleUser: cfg.AnsibleUser,
	}

	switch cfg.Source {
	case config.SourceSocket:
		client, err := libvirt.ConnectWithContext(ctx, cfg.SocketPath, cfg.Timeout())
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close libvirt connection: %v\n", closeErr)
			}
		}()

		return inventory.Discover(ctx, libvirt.NewSource(client, ifaceMatch), opts)

	default: // config.SourceSSH, enforced by Validate
		if !quiet {
			fmt.Printf("Connecting to %s as %s\n", cfg.Host, cfg.User)
		}
		client, err := sshexec.ConnectWithContext(ctx, sshexec.Options{
			Host:     cfg.Host,
			User:     cfg.User,
			Password: cfg.Password,
			Timeout:  cfg.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close SSH connection: %v\n", closeErr)
			}
		}()

		return inventory.Discover(ctx, virsh.NewSource(client, ifaceMatch), opts)
	}
}
