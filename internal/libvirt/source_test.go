package libvirt

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/digitalocean/go-libvirt"

	"github.com/strimblaster/unraid-inventory/internal/naming"
)

func enMatch(t *testing.T) naming.Matcher {
	t.Helper()
	m, err := naming.CompileMatch(`en\w+`)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSourceListVMs(t *testing.T) {
	api := newMockLibvirtAPI()
	api.connectListAllDomainsFunc = func(int32, libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
		return []libvirt.Domain{
			{Name: "web-server"},
			{Name: "Windows 11"},
		}, 2, nil
	}

	src := newSourceWithAPI(api, nil)
	got, err := src.ListVMs(context.Background())
	if err != nil {
		t.Fatalf("ListVMs() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"web-server", "Windows 11"}) {
		t.Errorf("ListVMs() = %v", got)
	}
}

func TestSourceListVMs_Error(t *testing.T) {
	api := newMockLibvirtAPI()
	listErr := errors.New("connection reset")
	api.connectListAllDomainsFunc = func(int32, libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
		return nil, 0, listErr
	}

	src := newSourceWithAPI(api, nil)
	if _, err := src.ListVMs(context.Background()); !errors.Is(err, listErr) {
		t.Fatalf("ListVMs() error = %v, want wrapped %v", err, listErr)
	}
}

func TestSourceResolveAddress(t *testing.T) {
	tests := []struct {
		name   string
		ifaces []libvirt.DomainInterface
		want   string
		wantOK bool
	}{
		{
			name: "ethernet ipv4 wins over loopback and ipv6",
			ifaces: []libvirt.DomainInterface{
				{
					Name: "lo",
					Addrs: []libvirt.DomainIPAddr{
						{Type: int32(libvirt.IPAddrTypeIpv4), Addr: "127.0.0.1", Prefix: 8},
					},
				},
				{
					Name: "enp1s0",
					Addrs: []libvirt.DomainIPAddr{
						{Type: int32(libvirt.IPAddrTypeIpv6), Addr: "fe80::5054:ff:fef0:f9df", Prefix: 64},
						{Type: int32(libvirt.IPAddrTypeIpv4), Addr: "192.168.1.86", Prefix: 24},
					},
				},
			},
			want:   "192.168.1.86",
			wantOK: true,
		},
		{
			name: "first matching interface wins",
			ifaces: []libvirt.DomainInterface{
				{Name: "enp1s0", Addrs: []libvirt.DomainIPAddr{{Type: int32(libvirt.IPAddrTypeIpv4), Addr: "10.0.0.5"}}},
				{Name: "enp2s0", Addrs: []libvirt.DomainIPAddr{{Type: int32(libvirt.IPAddrTypeIpv4), Addr: "10.0.1.5"}}},
			},
			want:   "10.0.0.5",
			wantOK: true,
		},
		{
			name: "ipv6 only",
			ifaces: []libvirt.DomainInterface{
				{Name: "enp1s0", Addrs: []libvirt.DomainIPAddr{{Type: int32(libvirt.IPAddrTypeIpv6), Addr: "fe80::1"}}},
			},
			wantOK: false,
		},
		{
			name:   "no interfaces reported",
			ifaces: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newMockLibvirtAPI()
			api.domainInterfaceAddressesFunc = func(libvirt.Domain, uint32, uint32) ([]libvirt.DomainInterface, error) {
				return tt.ifaces, nil
			}

			src := newSourceWithAPI(api, enMatch(t))
			got, ok, err := src.ResolveAddress(context.Background(), "web-server")
			if err != nil {
				t.Fatalf("ResolveAddress() error = %v", err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveAddress() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// The agent query is issued with the guest-agent source.
func TestSourceResolveAddress_UsesAgentSource(t *testing.T) {
	api := newMockLibvirtAPI()
	var gotSource uint32
	api.domainInterfaceAddressesFunc = func(_ libvirt.Domain, source uint32, _ uint32) ([]libvirt.DomainInterface, error) {
		gotSource = source
		return nil, nil
	}

	src := newSourceWithAPI(api, nil)
	if _, _, err := src.ResolveAddress(context.Background(), "vm"); err != nil {
		t.Fatalf("ResolveAddress() error = %v", err)
	}
	if gotSource != uint32(libvirt.DomainInterfaceAddressesSrcAgent) {
		t.Errorf("source = %d, want agent source %d", gotSource, uint32(libvirt.DomainInterfaceAddressesSrcAgent))
	}
}

// A query failure against a domain that has an agent channel surfaces
// as an error.
func TestSourceResolveAddress_QueryFailure(t *testing.T) {
	api := newMockLibvirtAPI()
	queryErr := errors.New("guest agent is not responding")
	api.domainInterfaceAddressesFunc = func(libvirt.Domain, uint32, uint32) ([]libvirt.DomainInterface, error) {
		return nil, queryErr
	}

	src := newSourceWithAPI(api, nil)
	if _, _, err := src.ResolveAddress(context.Background(), "vm"); !errors.Is(err, queryErr) {
		t.Fatalf("ResolveAddress() error = %v, want wrapped %v", err, queryErr)
	}
}

// Without an agent channel in the domain XML the same failure means
// the VM simply cannot report an address; it is skipped, not fatal.
func TestSourceResolveAddress_NoAgentChannel(t *testing.T) {
	api := newMockLibvirtAPI()
	api.domainInterfaceAddressesFunc = func(libvirt.Domain, uint32, uint32) ([]libvirt.DomainInterface, error) {
		return nil, errors.New("argument unsupported: QEMU guest agent is not configured")
	}
	api.domainGetXMLDescFunc = func(dom libvirt.Domain, _ libvirt.DomainXMLFlags) (string, error) {
		return `<domain type="kvm"><name>vm</name><devices/></domain>`, nil
	}

	src := newSourceWithAPI(api, nil)
	addr, ok, err := src.ResolveAddress(context.Background(), "vm")
	if err != nil {
		t.Fatalf("ResolveAddress() error = %v, want nil for agent-less domain", err)
	}
	if ok || addr != "" {
		t.Errorf("ResolveAddress() = %q, %v, want absent", addr, ok)
	}
}

func TestSourceResolveAddress_LookupFailure(t *testing.T) {
	api := newMockLibvirtAPI()
	lookupErr := errors.New("domain not found")
	api.domainLookupByNameFunc = func(string) (libvirt.Domain, error) {
		return libvirt.Domain{}, lookupErr
	}

	src := newSourceWithAPI(api, nil)
	if _, _, err := src.ResolveAddress(context.Background(), "ghost"); !errors.Is(err, lookupErr) {
		t.Fatalf("ResolveAddress() error = %v, want wrapped %v", err, lookupErr)
	}
}
