package roles

import (
	"strings"
)

// HierarchyEdge is one parent->child relation surfaced for reporting.
//
// Recomputed per query, never persisted.
type HierarchyEdge struct {
	ChildName         string
	ParentName        string
	AncestryPaths     string // Newline-joined chains.
	ImportantAncestor string // Nearest governance-relevant ancestor.
}

// HierarchyEdges lists every edge of the graph with the child's ancestry,
// sorted by child then parent insertion order.
func (m Map) HierarchyEdges(limits PathLimits) (edges []HierarchyEdge, err error) {
	for _, name := range m.SortedNames() {
		role := m[name]
		if role.IsRoot() {
			continue
		}
		paths, _, err := m.AncestryPaths(name, limits)
		if err != nil {
			return nil, err
		}
		joined := strings.Join(paths, "\n")
		important := m.ImportantAncestor(role, paths)
		for _, parent := range role.Parents {
			edges = append(edges, HierarchyEdge{
				ChildName:         role.Name,
				ParentName:        parent,
				AncestryPaths:     joined,
				ImportantAncestor: important,
			})
		}
	}
	return edges, nil
}

// ImportantAncestor derives the nearest governance-relevant ancestor of a
// role from its ancestry paths.
//
// When no path reaches ACCOUNTADMIN, the role hangs off a disconnected root:
// report whichever root the first path reached. Functional and access roles
// report the nearest non-functional, non-access ancestor along the first
// listed parent chain. Everything else defaults to ACCOUNTADMIN.
func (m Map) ImportantAncestor(role *Role, paths []string) string {
	underAccountAdmin := false
	for _, path := range paths {
		if strings.HasPrefix(path, AccountAdmin+PathSeparator) || path == AccountAdmin {
			underAccountAdmin = true
			break
		}
	}
	if !underAccountAdmin && len(paths) > 0 {
		root, _, _ := strings.Cut(paths[0], PathSeparator)
		return root
	}

	switch role.Type {
	case Functional, Access:
		return m.firstChainAncestor(role)
	}
	return AccountAdmin
}

func (m Map) firstChainAncestor(role *Role) string {
	seen := map[string]bool{role.Name: true}
	current := role
	for !current.IsRoot() {
		parent, ok := m[current.Parents[0]]
		if !ok || seen[parent.Name] {
			break
		}
		seen[parent.Name] = true
		if parent.Type != Functional && parent.Type != Access {
			return parent.Name
		}
		current = parent
	}
	return AccountAdmin
}
