package virsh

import (
	"context"
	"fmt"
	"strings"

	"github.com/strimblaster/unraid-inventory/internal/sshexec"
)

// listCommand enumerates every defined domain by name, including
// inactive ones.
const listCommand = "virsh list --all --name"

// EnumerationError indicates the "list VMs" command itself failed.
// Enumeration is a precondition for everything else, so this is fatal
// for the run.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("failed to list VMs: %v", e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// ListDomains returns the raw names of all domains defined on the
// host, in the order virsh reports them. Empty lines are discarded.
// An empty result is legitimate, not an error.
func ListDomains(ctx context.Context, exec sshexec.Executor) ([]string, error) {
	stdout, _, err := exec.Execute(ctx, listCommand)
	if err != nil {
		return nil, &EnumerationError{Err: err}
	}

	var names []string
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}
