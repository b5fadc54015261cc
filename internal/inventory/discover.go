package inventory

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/strimblaster/unraid-inventory/internal/naming"
)

// Source enumerates VM instances on a hypervisor and resolves their
// addresses. The virsh-over-SSH source is the default; a local libvirt
// socket source exists for runs on the hypervisor itself.
type Source interface {
	// ListVMs returns the raw names of all defined VMs, including
	// inactive ones, in the hypervisor's reporting order.
	ListVMs(ctx context.Context) ([]string, error)

	// ResolveAddress returns the VM's selected IPv4 address, or
	// ok=false when the VM reported no usable address. An error means
	// the query itself failed and aborts the run.
	ResolveAddress(ctx context.Context, vm string) (address string, ok bool, err error)
}

// DiscoverOptions configures one discovery run.
type DiscoverOptions struct {
	// NameMatch filters VMs by raw name. Nil means match all.
	NameMatch naming.Matcher
	// AnsibleUser, when non-empty, is attached to every produced host
	// as the connection user.
	AnsibleUser string
}

// Discover runs the full pipeline: enumerate, filter, resolve one
// address per VM, and build the inventory. VMs without a resolvable
// address are skipped with a diagnostic. A nil inventory (no error)
// means no VM matched or none had an address.
func Discover(ctx context.Context, src Source, opts DiscoverOptions) (*Inventory, error) {
	match := opts.NameMatch
	if match == nil {
		match = naming.MatchAll
	}

	// Short run identifier to correlate diagnostics from one run.
	run := uuid.NewString()[:8]

	names, err := src.ListVMs(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery run %s: %w", run, err)
	}
	log.Printf("run %s: found %d VMs", run, len(names))

	var candidates []string
	for _, name := range names {
		if match(name) {
			candidates = append(candidates, name)
		}
	}
	log.Printf("run %s: %d VMs match the name filter", run, len(candidates))

	if len(candidates) == 0 {
		log.Printf("run %s: no VMs to inventory", run)
		return nil, nil
	}

	var records []Record
	for _, name := range candidates {
		addr, ok, err := src.ResolveAddress(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("discovery run %s: %w", run, err)
		}
		if !ok {
			log.Printf("run %s: no address found for VM %q, skipping (is the QEMU guest agent installed?)", run, name)
			continue
		}
		log.Printf("run %s: VM %q has address %s", run, name, addr)
		records = append(records, Record{RawName: name, Address: addr})
	}

	inv := Build(records, opts.AnsibleUser)
	log.Printf("run %s: added %d hosts to inventory", run, inv.HostCount())
	return inv, nil
}
