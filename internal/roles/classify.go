package roles

import (
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	mapset "github.com/deckarep/golang-set/v2"
)

const AccountAdmin = "ACCOUNTADMIN"

// BuiltInNames are the roles every Snowflake account ships with.
var BuiltInNames = mapset.NewSet(
	AccountAdmin,
	"SECURITYADMIN",
	"USERADMIN",
	"SYSADMIN",
	"PUBLIC",
)

// ProvisionerNames are the well known SCIM integration roles.
var ProvisionerNames = mapset.NewSet(
	"OKTA_PROVISIONER",
	"AAD_PROVISIONER",
	"GENERIC_SCIM_PROVISIONER",
)

// dataPrivilegeExclusions are privileges on SCHEMA/TABLE/VIEW that do not
// qualify a role as an access role.
var dataPrivilegeExclusions = mapset.NewSet(
	"USAGE",
	"OWNERSHIP",
	"MONITOR",
	"REFERENCES",
	"REBUILD",
)

var dataObjectTypes = mapset.NewSet("SCHEMA", "TABLE", "VIEW")

// Classifier assigns a governance Type to every role of a Map.
//
// Rollup results are memoized for the duration of one classification pass;
// they are invalid as soon as edges change.
type Classifier struct {
	roles Map
	// Role name -> privileges retained on data objects.
	dataPrivileges map[string]mapset.Set[string]
	// Extra role names to classify as SCIM, from configuration.
	provisioners mapset.Set[string]
	rollups      map[[2]string]bool
}

func NewClassifier(m Map, gs []grants.Grant, extraProvisioners ...string) *Classifier {
	c := &Classifier{
		roles:          m,
		dataPrivileges: make(map[string]mapset.Set[string]),
		provisioners:   ProvisionerNames.Union(mapset.NewSet(extraProvisioners...)),
		rollups:        make(map[[2]string]bool),
	}
	for _, g := range gs {
		if !dataObjectTypes.Contains(g.ObjectType) {
			continue
		}
		if dataPrivilegeExclusions.Contains(g.Privilege) {
			continue
		}
		privs, ok := c.dataPrivileges[g.GrantedTo]
		if !ok {
			privs = mapset.NewThreadUnsafeSet[string]()
			c.dataPrivileges[g.GrantedTo] = privs
		}
		privs.Add(g.Privilege)
	}
	return c
}

// Classify types every role in place.
func (c *Classifier) Classify() {
	for _, name := range c.roles.SortedNames() {
		role := c.roles[name]
		role.Type = c.classify(role)
	}
}

// classify applies rules with strict precedence, first match wins, then the
// post-classification corrections.
func (c *Classifier) classify(role *Role) Type {
	if BuiltInNames.Contains(role.Name) {
		return BuiltIn
	}
	if c.provisioners.Contains(role.Name) {
		return SCIM
	}
	// Rollup targets must be resolvable before relying on hierarchy rules.
	for _, name := range []string{AccountAdmin, "SECURITYADMIN", "USERADMIN", "SYSADMIN"} {
		if _, ok := c.roles[name]; !ok {
			return Unknown
		}
	}

	out := Unknown
	underSysadmin := c.rollsUp(role.Name, "SYSADMIN")
	switch {
	case (c.rollsUp(role.Name, "USERADMIN") || c.rollsUp(role.Name, "SECURITYADMIN")) && !underSysadmin:
		out = RoleManagement
	case c.hasDataPrivileges(role.Name):
		out = Access
	case len(role.Children) > 0:
		out = Functional
	}

	// Corrections, each checked independently against the base result.
	corrected := out
	if !c.rollsUp(role.Name, AccountAdmin) {
		corrected = NotUnderAccountAdmin
	}
	if out == Functional && !underSysadmin {
		corrected = FunctionalNotUnderSysadmin
	}
	if out == Access && !underSysadmin {
		corrected = AccessNotUnderSysadmin
	}
	return corrected
}

func (c *Classifier) hasDataPrivileges(name string) bool {
	privs, ok := c.dataPrivileges[name]
	return ok && privs.Cardinality() > 0
}

func (c *Classifier) rollsUp(name, ancestor string) bool {
	key := [2]string{name, ancestor}
	if cached, ok := c.rollups[key]; ok {
		return cached
	}
	found := c.roles.RollsUp(name, ancestor)
	c.rollups[key] = found
	return found
}
