// Package output provides formatters for displaying the discovered
// inventory in various formats (table, YAML, JSON).
package output

import (
	"fmt"

	"github.com/strimblaster/unraid-inventory/internal/inventory"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a human-readable table format.
	FormatTable Format = "table"
	// FormatYAML is a YAML rendering of the inventory model.
	FormatYAML Format = "yaml"
	// FormatJSON is the Ansible dynamic-inventory JSON document.
	FormatJSON Format = "json"
)

// Formatter formats a discovered inventory for output.
type Formatter interface {
	// FormatInventory formats the inventory. A nil inventory is a
	// legitimate empty result, not an error.
	FormatInventory(inv *inventory.Inventory) (string, error)
}

// Options contains options for formatting output.
type Options struct {
	// Format specifies the output format.
	Format Format
	// NoHeaders omits headers in table format.
	NoHeaders bool
}

// NewFormatter creates a new Formatter based on the specified format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}
