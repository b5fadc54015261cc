package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strimblaster/unraid-inventory/internal/config"
	"github.com/strimblaster/unraid-inventory/internal/output"
)

var (
	outputFormat string
	noHeaders    bool
)

func init() {
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (table, yaml, json)")
	listCmd.Flags().BoolVar(&noHeaders, "no-headers", false,
		"omit headers in table output")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Discover VMs and print the inventory",
	Long: `Run one discovery pass against the configured hypervisor and print
the resulting inventory.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   Inventory model as YAML
  -o json   Ansible dynamic-inventory JSON document`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.ValidateFormat(outputFormat); err != nil {
			return err
		}

		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}

		ctx := context.Background()
		inv, err := discover(ctx, cfg, false)
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(outputFormat),
			NoHeaders: noHeaders,
		})
		if err != nil {
			return err
		}

		result, err := formatter.FormatInventory(inv)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}
