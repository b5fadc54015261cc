package virsh

import (
	"context"

	"github.com/strimblaster/unraid-inventory/internal/naming"
	"github.com/strimblaster/unraid-inventory/internal/sshexec"
)

// Source adapts the virsh commands to the discovery pipeline's Source
// interface. It holds the executor and the interface-name matcher for
// address selection.
type Source struct {
	exec  sshexec.Executor
	iface naming.Matcher
}

// NewSource creates a virsh-backed discovery source. ifaceMatch
// selects which interface's IPv4 address wins; nil means match all
// interfaces.
func NewSource(exec sshexec.Executor, ifaceMatch naming.Matcher) *Source {
	if ifaceMatch == nil {
		ifaceMatch = naming.MatchAll
	}
	return &Source{exec: exec, iface: ifaceMatch}
}

// ListVMs returns the raw names of all defined domains.
func (s *Source) ListVMs(ctx context.Context) ([]string, error) {
	return ListDomains(ctx, s.exec)
}

// ResolveAddress returns vm's first matching IPv4 address.
func (s *Source) ResolveAddress(ctx context.Context, vm string) (string, bool, error) {
	return ResolveAddress(ctx, s.exec, vm, s.iface)
}
