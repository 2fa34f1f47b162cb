package roles

import (
	"slices"
	"time"
)

// Type is the governance posture of a role.
type Type string

const (
	Unknown                    Type = "Unknown"
	BuiltIn                    Type = "BuiltIn"
	SCIM                       Type = "SCIM"
	RoleManagement             Type = "RoleManagement"
	Functional                 Type = "Functional"
	Access                     Type = "Access"
	NotUnderAccountAdmin       Type = "NotUnderAccountAdmin"
	FunctionalNotUnderSysadmin Type = "FunctionalNotUnderSysadmin"
	AccessNotUnderSysadmin     Type = "AccessNotUnderSysadmin"
)

// Role is a principal node in the inheritance graph.
//
// Parents and Children keep insertion order. The first listed parent is
// significant for important-ancestor derivation.
type Role struct {
	Name          string
	Owner         string
	Comment       string
	Type          Type
	CreatedAt     time.Time
	Parents       []string
	Children      []string
	AssignedUsers []string
}

func New(name string) *Role {
	return &Role{Name: name, Type: Unknown}
}

func (r *Role) String() string {
	return r.Name
}

func (r *Role) AddParent(name string) {
	if !slices.Contains(r.Parents, name) {
		r.Parents = append(r.Parents, name)
	}
}

func (r *Role) AddChild(name string) {
	if !slices.Contains(r.Children, name) {
		r.Children = append(r.Children, name)
	}
}

func (r *Role) AddUser(name string) {
	if !slices.Contains(r.AssignedUsers, name) {
		r.AssignedUsers = append(r.AssignedUsers, name)
	}
}

// IsRoot tells whether the role has no parent.
func (r *Role) IsRoot() bool {
	return len(r.Parents) == 0
}
