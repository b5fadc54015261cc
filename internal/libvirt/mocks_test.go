package libvirt

import (
	"fmt"

	"github.com/digitalocean/go-libvirt"
)

// mockLibvirtAPI is a mock implementation of the libvirtAPI interface
// for testing.
type mockLibvirtAPI struct {
	// Configurable behavior
	connectListAllDomainsFunc    func(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error)
	domainLookupByNameFunc       func(name string) (libvirt.Domain, error)
	domainInterfaceAddressesFunc func(dom libvirt.Domain, source uint32, flags uint32) ([]libvirt.DomainInterface, error)
	domainGetXMLDescFunc         func(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error)

	// Call tracking
	interfaceAddressesCalls []libvirt.Domain
}

func newMockLibvirtAPI() *mockLibvirtAPI {
	m := &mockLibvirtAPI{}

	// Default: no domains defined
	m.connectListAllDomainsFunc = func(int32, libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
		return nil, 0, nil
	}

	// Default: lookup succeeds for any name
	m.domainLookupByNameFunc = func(name string) (libvirt.Domain, error) {
		return libvirt.Domain{Name: name}, nil
	}

	// Default: no interfaces reported
	m.domainInterfaceAddressesFunc = func(libvirt.Domain, uint32, uint32) ([]libvirt.DomainInterface, error) {
		return nil, nil
	}

	// Default: minimal domain XML with an agent channel
	m.domainGetXMLDescFunc = func(dom libvirt.Domain, _ libvirt.DomainXMLFlags) (string, error) {
		return fmt.Sprintf(`<domain type="kvm">
  <name>%s</name>
  <devices>
    <channel type="unix">
      <target type="virtio" name="org.qemu.guest_agent.0"/>
    </channel>
  </devices>
</domain>`, dom.Name), nil
	}

	return m
}

func (m *mockLibvirtAPI) ConnectListAllDomains(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
	return m.connectListAllDomainsFunc(needResults, flags)
}

func (m *mockLibvirtAPI) DomainLookupByName(name string) (libvirt.Domain, error) {
	return m.domainLookupByNameFunc(name)
}

func (m *mockLibvirtAPI) DomainInterfaceAddresses(dom libvirt.Domain, source uint32, flags uint32) ([]libvirt.DomainInterface, error) {
	m.interfaceAddressesCalls = append(m.interfaceAddressesCalls, dom)
	return m.domainInterfaceAddressesFunc(dom, source, flags)
}

func (m *mockLibvirtAPI) DomainGetXMLDesc(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error) {
	return m.domainGetXMLDescFunc(dom, flags)
}
