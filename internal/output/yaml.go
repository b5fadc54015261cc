package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/strimblaster/unraid-inventory/internal/inventory"
)

// YAMLFormatter formats the inventory as YAML.
type YAMLFormatter struct{}

// FormatInventory formats the inventory model as YAML. An empty
// inventory renders as an empty document.
func (f *YAMLFormatter) FormatInventory(inv *inventory.Inventory) (string, error) {
	if inv.HostCount() == 0 {
		return "", nil
	}

	data, err := yaml.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("failed to marshal inventory to YAML: %w", err)
	}

	return string(data), nil
}
