package libvirt

import (
	"context"
	"fmt"
	"log"

	"github.com/digitalocean/go-libvirt"
	"libvirt.org/go/libvirtxml"

	"github.com/strimblaster/unraid-inventory/internal/naming"
)

// qemuAgentChannel is the virtio channel name the QEMU guest agent
// attaches to.
const qemuAgentChannel = "org.qemu.guest_agent.0"

// libvirtAPI defines the libvirt operations the source needs.
// This wraps operations from *libvirt.Libvirt to allow for testing.
//
// In production, this is satisfied by *libvirt.Libvirt directly.
// In tests, this is satisfied by mock implementations.
type libvirtAPI interface {
	// ConnectListAllDomains lists domains (active and inactive)
	ConnectListAllDomains(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error)

	// DomainLookupByName looks up a domain by name
	DomainLookupByName(name string) (libvirt.Domain, error)

	// DomainInterfaceAddresses queries a domain's interface addresses
	DomainInterfaceAddresses(dom libvirt.Domain, source uint32, flags uint32) ([]libvirt.DomainInterface, error)

	// DomainGetXMLDesc returns the domain's XML description
	DomainGetXMLDesc(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error)
}

// Source adapts a local libvirt connection to the discovery pipeline's
// Source interface, mirroring the virsh source's selection semantics.
type Source struct {
	api   libvirtAPI
	iface naming.Matcher
}

// NewSource creates a socket-backed discovery source from a connected
// Client. ifaceMatch selects which interface's IPv4 address wins; nil
// means match all interfaces.
func NewSource(client *Client, ifaceMatch naming.Matcher) *Source {
	return newSourceWithAPI(client.Libvirt(), ifaceMatch)
}

// newSourceWithAPI allows tests to inject a mock libvirt API.
func newSourceWithAPI(api libvirtAPI, ifaceMatch naming.Matcher) *Source {
	if ifaceMatch == nil {
		ifaceMatch = naming.MatchAll
	}
	return &Source{api: api, iface: ifaceMatch}
}

// ListVMs returns the raw names of all defined domains, including
// inactive ones.
func (s *Source) ListVMs(_ context.Context) ([]string, error) {
	// NeedResults: 1 populates the domains slice; flags 0 means all
	// domains, active and inactive.
	domains, _, err := s.api.ConnectListAllDomains(1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	names := make([]string, 0, len(domains))
	for _, dom := range domains {
		names = append(names, dom.Name)
	}
	return names, nil
}

// ResolveAddress queries the guest agent for vm's interfaces and
// selects the first IPv4 address on a matching interface. A query
// failure against a domain without a guest-agent channel is reported
// as absent rather than an error, with a diagnostic naming the cause.
func (s *Source) ResolveAddress(_ context.Context, vm string) (string, bool, error) {
	dom, err := s.api.DomainLookupByName(vm)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up domain %q: %w", vm, err)
	}

	ifaces, err := s.api.DomainInterfaceAddresses(dom, uint32(libvirt.DomainInterfaceAddressesSrcAgent), 0)
	if err != nil {
		if !s.hasAgentChannel(dom) {
			log.Printf("domain %q has no %s channel configured", vm, qemuAgentChannel)
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query addresses for domain %q: %w", vm, err)
	}

	for _, iface := range ifaces {
		if !s.iface(iface.Name) {
			continue
		}
		for _, addr := range iface.Addrs {
			if addr.Type != int32(libvirt.IPAddrTypeIpv4) {
				continue
			}
			return addr.Addr, true, nil
		}
	}
	return "", false, nil
}

// hasAgentChannel reports whether the domain XML defines the QEMU
// guest agent virtio channel. Used only to sharpen diagnostics; any
// parse problem counts as "unknown" and returns true so the original
// error surfaces.
func (s *Source) hasAgentChannel(dom libvirt.Domain) bool {
	xml, err := s.api.DomainGetXMLDesc(dom, 0)
	if err != nil {
		return true
	}

	var desc libvirtxml.Domain
	if err := desc.Unmarshal(xml); err != nil {
		return true
	}
	if desc.Devices == nil {
		return false
	}
	for _, ch := range desc.Devices.Channels {
		if ch.Target != nil && ch.Target.VirtIO != nil && ch.Target.VirtIO.Name == qemuAgentChannel {
			return true
		}
	}
	return false
}
