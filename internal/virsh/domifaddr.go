package virsh

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/strimblaster/unraid-inventory/internal/naming"
	"github.com/strimblaster/unraid-inventory/internal/sshexec"
)

// AddressQueryError indicates the per-VM "domifaddr" command itself
// failed to execute. This is distinct from a command that ran but
// reported no usable address, and it aborts the whole run.
type AddressQueryError struct {
	VM     string
	Stderr string
	Err    error
}

func (e *AddressQueryError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("failed to query address for VM %q: %v: %s", e.VM, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("failed to query address for VM %q: %v", e.VM, e.Err)
}

func (e *AddressQueryError) Unwrap() error { return e.Err }

// ResolveAddress queries the guest agent for vm's interface addresses
// and selects one IPv4 address. It returns the address with any
// /prefix-length suffix stripped, and false when no interface matched.
//
// The VM name is single-quoted in the command, as names may contain
// spaces.
func ResolveAddress(ctx context.Context, exec sshexec.Executor, vm string, match naming.Matcher) (string, bool, error) {
	command := fmt.Sprintf("virsh domifaddr '%s' --source agent", vm)
	stdout, _, err := exec.Execute(ctx, command)
	if err != nil {
		var cmdErr *sshexec.CommandError
		if errors.As(err, &cmdErr) {
			return "", false, &AddressQueryError{VM: vm, Stderr: cmdErr.Stderr, Err: err}
		}
		return "", false, &AddressQueryError{VM: vm, Err: err}
	}

	addr, ok := selectAddress(stdout, match)
	return addr, ok, nil
}

// selectAddress picks the first IPv4 address whose interface name
// matches. The input is the tabular domifaddr output:
//
//	 Name       MAC address          Protocol     Address
//	-------------------------------------------------------------------------------
//	 lo         00:00:00:00:00:00    ipv4         127.0.0.1/8
//	 -          -                    ipv6         ::1/128
//	 enp1s0     52:54:00:00:f0:f9    ipv4         192.168.1.86/24
//	 -          -                    ipv6         fe80::5054:ff:fef0:f9df/64
//
// Lines scan top to bottom and the first match wins; there is no
// best-match scoring. The header and dashed separator never tokenize
// into an ipv4 protocol field, so they are skipped by the same
// predicate that skips ipv6 rows. Lines with too few fields are
// skipped, not errors.
func selectAddress(output string, match naming.Matcher) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if fields[2] != "ipv4" {
			continue
		}
		if !match(fields[0]) {
			continue
		}
		addr := fields[len(fields)-1]
		if i := strings.IndexByte(addr, '/'); i >= 0 {
			addr = addr[:i]
		}
		return addr, true
	}
	return "", false
}
