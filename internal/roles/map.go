package roles

import (
	"log/slog"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Map holds all known roles by name.
type Map map[string]*Role

func NewMap() Map {
	return make(Map)
}

// Ensure returns the named role, creating it on first sight.
func (m Map) Ensure(name string) *Role {
	role, ok := m[name]
	if !ok {
		role = New(name)
		m[name] = role
	}
	return role
}

// SortedNames returns role names in lexical order, for stable reporting.
func (m Map) SortedNames() []string {
	names := maps.Keys(m)
	slices.Sort(names)
	return names
}

// EnsureFromGrants creates roles referenced by ROLE grants but absent from
// the role list. SHOW ROLES may race with grant captures; the graph still
// wants a node for every name the grants mention.
func (m Map) EnsureFromGrants(gs []grants.Grant) {
	for _, g := range gs {
		if g.ObjectType != "ROLE" {
			continue
		}
		m.Ensure(g.ObjectName)
		if g.Privilege == "USAGE" && g.GrantedTo != "" {
			m.Ensure(g.GrantedTo)
		}
	}
}

// BuildGraph populates parent/child edges and user assignments from
// normalized grants.
//
// An edge parent->child is added for each USAGE on ROLE grant: the grantee
// contains the granted role. Both endpoints must be known roles; grants
// referencing unknown principals are skipped, the graph is best effort over
// known roles only.
func (m Map) BuildGraph(gs []grants.Grant) {
	for _, g := range gs {
		if g.Privilege != "USAGE" {
			continue
		}
		switch g.ObjectType {
		case "ROLE":
			child, ok := m[g.ObjectName]
			if !ok {
				continue
			}
			parent, ok := m[g.GrantedTo]
			if !ok {
				slog.Debug("Skipping edge to unknown role.", "grant", g.String())
				continue
			}
			parent.AddChild(child.Name)
			child.AddParent(parent.Name)
		case "USER":
			role, ok := m[g.ObjectName]
			if !ok {
				continue
			}
			role.AddUser(g.GrantedTo)
		}
	}
}
