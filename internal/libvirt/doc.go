// Package libvirt provides the local-socket discovery source.
//
// This package wraps github.com/digitalocean/go-libvirt to talk to the
// libvirt daemon directly over its UNIX socket, for runs executed on
// the hypervisor itself where no SSH hop is needed. It implements the
// same enumeration and address-selection semantics as the virsh-over-
// SSH source: all domains including inactive ones, guest-agent
// reported addresses, first IPv4 on a matching interface wins.
//
// The Client type manages the connection (connect, disconnect, ping);
// Source adapts it to the discovery pipeline. Source also inspects the
// domain XML (via libvirt.org/go/libvirtxml) to tell "no guest agent
// channel configured" apart from "agent not responding" in its
// diagnostics.
package libvirt
