package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/strimblaster/unraid-inventory/internal/inventory"
)

// TableFormatter formats the inventory as a human-readable table.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatInventory formats the inventory as a table, one row per host.
func (f *TableFormatter) FormatInventory(inv *inventory.Inventory) (string, error) {
	if inv.HostCount() == 0 {
		return "No hosts found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "HOST\tADDRESS\tUSER\tGROUP")
	}

	for _, group := range inv.Groups {
		for _, host := range group.Hosts {
			user := host.User
			if user == "" {
				user = "-"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				host.Name, host.Address, user, group.Name)
		}
	}

	_ = w.Flush()
	return buf.String(), nil
}
