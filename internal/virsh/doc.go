// Package virsh drives the hypervisor's virsh CLI over a remote
// command executor to enumerate VMs and resolve their guest-agent
// reported addresses.
//
// Two commands are issued per run: one "virsh list --all --name" for
// enumeration, then one "virsh domifaddr <vm> --source agent" per VM.
// The package only parses command output; session management belongs
// to internal/sshexec.
//
// Error semantics differ by stage. A failed enumeration command is
// always fatal (EnumerationError). A failed address query command is
// also fatal (AddressQueryError). A successful address query whose
// output contains no usable line is not an error at all: the VM simply
// has no resolvable address and is skipped by the caller.
package virsh
