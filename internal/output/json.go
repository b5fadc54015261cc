package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/strimblaster/unraid-inventory/internal/inventory"
)

// JSONFormatter formats the inventory as the Ansible dynamic-inventory
// JSON document (the same shape --list emits), so the output can be
// fed to ansible-playbook directly.
type JSONFormatter struct{}

// FormatInventory formats the inventory as indented JSON.
func (f *JSONFormatter) FormatInventory(inv *inventory.Inventory) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(inv.AnsibleList()); err != nil {
		return "", fmt.Errorf("failed to marshal inventory to JSON: %w", err)
	}

	return buf.String(), nil
}
