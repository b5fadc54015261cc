// Package naming provides the naming conventions for inventory hosts.
// This includes normalizing raw libvirt domain names into identifiers
// that are safe to use as Ansible host names, and compiling the
// prefix-anchored match patterns used to filter VMs and interfaces.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWord         = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
	spacesAndDashes = strings.NewReplacer(" ", "_", "-", "_")
)

// NormalizeHostname converts a raw VM name into a canonical inventory
// identifier.
//
// Example: "My VM-1" → "my_vm_1"
//
// The transform is deterministic and idempotent: spaces and hyphens
// become underscores, the result is lowercased, anything outside
// [a-z0-9_] is removed, and runs of underscores collapse to one.
// No uniqueness is enforced; two raw names may normalize to the same
// identifier.
func NormalizeHostname(raw string) string {
	name := spacesAndDashes.Replace(raw)
	name = strings.ToLower(name)
	name = nonWord.ReplaceAllString(name, "")
	name = underscoreRuns.ReplaceAllString(name, "_")
	return name
}

// Matcher reports whether a name passes a filter. Both VM-name and
// interface-name filtering are expressed through this type so that
// alternative matching strategies can be injected.
type Matcher func(name string) bool

// CompileMatch compiles a pattern into a Matcher with prefix-match
// semantics: the pattern is anchored at the start of the candidate
// string but does not need to consume all of it.
//
// Example: CompileMatch(`en\w+`) matches "enp1s0" but not "veth0".
func CompileMatch(pattern string) (Matcher, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re.MatchString, nil
}

// MatchAll accepts every name. It is the default VM-name filter.
func MatchAll(string) bool { return true }
