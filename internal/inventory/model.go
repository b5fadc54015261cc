package inventory

// GroupUnraid is the name of the single group all discovered hosts
// belong to.
const GroupUnraid = "unraid"

// Host is one inventory entry: a normalized identifier plus the
// connection variables Ansible needs to reach it.
type Host struct {
	// Name is the normalized identifier, unique within the group.
	Name string `json:"name" yaml:"name"`
	// Address is the VM's resolved IPv4 address (ansible_host).
	Address string `json:"address" yaml:"address"`
	// User is the optional connection user (ansible_user).
	User string `json:"user,omitempty" yaml:"user,omitempty"`
}

// Group is a named collection of hosts.
type Group struct {
	Name  string `json:"name" yaml:"name"`
	Hosts []Host `json:"hosts" yaml:"hosts"`
}

// Inventory is the produced host inventory for one discovery run.
type Inventory struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// HostCount returns the total number of hosts across all groups.
func (inv *Inventory) HostCount() int {
	if inv == nil {
		return 0
	}
	n := 0
	for _, g := range inv.Groups {
		n += len(g.Hosts)
	}
	return n
}

// HostVars are the per-host connection variables in Ansible's naming.
type HostVars struct {
	AnsibleHost string `json:"ansible_host"`
	AnsibleUser string `json:"ansible_user,omitempty"`
}

// AnsibleList renders the inventory in the shape the Ansible
// dynamic-inventory protocol expects from --list: each group with its
// host names, an "all" group listing children, and a _meta section
// carrying the hostvars.
func (inv *Inventory) AnsibleList() map[string]any {
	hostvars := map[string]HostVars{}
	out := map[string]any{}

	children := []string{"ungrouped"}
	if inv != nil {
		for _, g := range inv.Groups {
			names := make([]string, 0, len(g.Hosts))
			for _, h := range g.Hosts {
				names = append(names, h.Name)
				hostvars[h.Name] = HostVars{AnsibleHost: h.Address, AnsibleUser: h.User}
			}
			out[g.Name] = map[string]any{"hosts": names}
			children = append(children, g.Name)
		}
	}

	out["all"] = map[string]any{"children": children}
	out["_meta"] = map[string]any{"hostvars": hostvars}
	return out
}

// AnsibleHostVars returns the connection variables for one host, as
// the dynamic-inventory protocol expects from --host.
func (inv *Inventory) AnsibleHostVars(name string) (HostVars, bool) {
	if inv == nil {
		return HostVars{}, false
	}
	for _, g := range inv.Groups {
		for _, h := range g.Hosts {
			if h.Name == name {
				return HostVars{AnsibleHost: h.Address, AnsibleUser: h.User}, true
			}
		}
	}
	return HostVars{}, false
}
