// Package inventory builds the Ansible inventory from discovered VMs.
//
// The package owns the run orchestration: it drives a Source
// (enumerate VMs, resolve one address per VM), applies the VM-name
// filter, normalizes names, and assembles the resulting hosts into the
// single "unraid" group.
//
// Everything is constructed fresh per run and discarded at run end;
// nothing is cached between invocations.
//
// Error Handling:
//
// Enumeration failures and address-query command failures abort the
// run. A VM whose address query succeeds but yields no usable address
// is logged and skipped, and the run continues with the remaining VMs.
package inventory
