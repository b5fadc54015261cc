package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strimblaster/unraid-inventory/internal/config"
)

var (
	ansibleListFlag bool
	ansibleHost     string
)

func init() {
	ansibleCmd.Flags().StringVar(&ansibleHost, "host", "",
		"print connection variables for one host")
	ansibleCmd.Flags().BoolVar(&ansibleListFlag, "list", false,
		"print the full inventory")
}

var ansibleCmd = &cobra.Command{
	Use:   "ansible",
	Short: "Speak the Ansible dynamic-inventory protocol",
	Long: `Run as an Ansible dynamic-inventory source.

Ansible invokes inventory scripts with --list for the full inventory
and --host <name> for a single host's variables. Point a thin wrapper
script at this command:

  #!/bin/sh
  exec unraid-inventory ansible -c /etc/unraid_vm_inventory.yml "$@"

Only the inventory JSON goes to stdout; diagnostics go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}

		ctx := context.Background()
		inv, err := discover(ctx, cfg, true)
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		var doc any
		switch {
		case ansibleHost != "":
			// Unknown hosts get an empty object, per the protocol.
			vars, ok := inv.AnsibleHostVars(ansibleHost)
			if ok {
				doc = vars
			} else {
				doc = struct{}{}
			}
		default:
			// --list, also the behavior when invoked bare.
			doc = inv.AnsibleList()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode inventory: %w", err)
		}
		return nil
	},
}
