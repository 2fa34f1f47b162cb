package roles

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	// DefaultMaxPaths bounds path enumeration. Enumeration is the product of
	// branching at every ancestor level, which explodes on densely
	// cross-granted hierarchies.
	DefaultMaxPaths = 10000
	DefaultMaxDepth = 64

	// PathSeparator joins role names in an ancestry chain, root first.
	PathSeparator = "->"
)

// PathLimits soft-caps ancestry enumeration. Hitting a cap truncates the
// result deterministically instead of crashing.
type PathLimits struct {
	MaxPaths int
	MaxDepth int
}

func DefaultPathLimits() PathLimits {
	return PathLimits{MaxPaths: DefaultMaxPaths, MaxDepth: DefaultMaxDepth}
}

// AncestryPaths enumerates every simple path from the named role up to each
// root, as chains root->...->role.
//
// A role without parents yields a single single-element path. A cycle in the
// input is reported as an error rather than recursing forever.
func (m Map) AncestryPaths(name string, limits PathLimits) (paths []string, truncated bool, err error) {
	role, ok := m[name]
	if !ok {
		return nil, false, fmt.Errorf("unknown role: %s", name)
	}
	walking := mapset.NewThreadUnsafeSet[string]()
	chains, truncated, err := m.walkAncestors(role, walking, limits, 1)
	if err != nil {
		return nil, false, err
	}
	for _, chain := range chains {
		paths = append(paths, strings.Join(chain, PathSeparator))
	}
	return paths, truncated, nil
}

// walkAncestors returns chains ending at role, root first. walking holds the
// names on the current descent to detect cycles.
func (m Map) walkAncestors(role *Role, walking mapset.Set[string], limits PathLimits, depth int) (chains [][]string, truncated bool, err error) {
	if !walking.Add(role.Name) {
		return nil, false, fmt.Errorf("role membership cycle through %s", role.Name)
	}
	defer walking.Remove(role.Name)

	if role.IsRoot() {
		return [][]string{{role.Name}}, false, nil
	}
	if limits.MaxDepth > 0 && depth >= limits.MaxDepth {
		return nil, true, nil
	}

	for _, parentName := range role.Parents {
		parent, ok := m[parentName]
		if !ok {
			continue
		}
		parentChains, t, err := m.walkAncestors(parent, walking, limits, depth+1)
		if err != nil {
			return nil, false, err
		}
		truncated = truncated || t
		for _, chain := range parentChains {
			full := make([]string, 0, len(chain)+1)
			full = append(full, chain...)
			full = append(full, role.Name)
			chains = append(chains, full)
			if limits.MaxPaths > 0 && len(chains) >= limits.MaxPaths {
				return chains, true, nil
			}
		}
	}
	return chains, truncated, nil
}

// RollsUp tells whether ancestor is reachable from the named role by walking
// parents. A role does not roll up to itself.
func (m Map) RollsUp(name, ancestor string) bool {
	seen := mapset.NewThreadUnsafeSet[string]()
	return m.rollsUp(name, ancestor, seen)
}

func (m Map) rollsUp(name, ancestor string, seen mapset.Set[string]) bool {
	role, ok := m[name]
	if !ok {
		return false
	}
	for _, parent := range role.Parents {
		if parent == ancestor {
			return true
		}
		if !seen.Add(parent) {
			// Already explored from another branch, or cycling.
			continue
		}
		if m.rollsUp(parent, ancestor, seen) {
			return true
		}
	}
	return false
}
