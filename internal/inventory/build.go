package inventory

import (
	"github.com/strimblaster/unraid-inventory/internal/naming"
)

// Record is one discovered VM: its raw hypervisor name and resolved
// address, in discovery order.
type Record struct {
	RawName string
	Address string
}

// Build assembles the discovered records into the inventory.
//
// Raw names are normalized with naming.NormalizeHostname. When two raw
// names normalize to the same identifier the later record overwrites
// the earlier one's variables (last write wins); the host keeps its
// original position. When ansibleUser is non-empty every host carries
// it as the connection user.
//
// With no records there is no inventory at all: the group is only
// created when at least one host will be added.
func Build(records []Record, ansibleUser string) *Inventory {
	if len(records) == 0 {
		return nil
	}

	hosts := make([]Host, 0, len(records))
	index := make(map[string]int, len(records))

	for _, rec := range records {
		name := naming.NormalizeHostname(rec.RawName)
		host := Host{Name: name, Address: rec.Address, User: ansibleUser}

		if i, seen := index[name]; seen {
			hosts[i] = host
			continue
		}
		index[name] = len(hosts)
		hosts = append(hosts, host)
	}

	return &Inventory{
		Groups: []Group{{Name: GroupUnraid, Hosts: hosts}},
	}
}
