package roles_test

import (
	"testing"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/roles"
	"github.com/stretchr/testify/require"
)

// adminMap builds a map holding the four admin roles under ACCOUNTADMIN.
func adminMap(extra ...string) roles.Map {
	m := roles.NewMap()
	for _, name := range []string{"ACCOUNTADMIN", "SECURITYADMIN", "USERADMIN", "SYSADMIN", "PUBLIC"} {
		m.Ensure(name)
	}
	for _, name := range extra {
		m.Ensure(name)
	}
	m.BuildGraph([]grants.Grant{
		usage("ROLE", "SYSADMIN", "ACCOUNTADMIN"),
		usage("ROLE", "SECURITYADMIN", "ACCOUNTADMIN"),
		usage("ROLE", "USERADMIN", "SECURITYADMIN"),
	})
	return m
}

func select_(objectType, object, to string) grants.Grant {
	return grants.Grant{
		Privilege:  "SELECT",
		ObjectType: objectType,
		ObjectName: object,
		GrantedTo:  to,
	}
}

func TestClassifyBuiltInPrecedence(t *testing.T) {
	r := require.New(t)

	m := adminMap()
	// Grants never demote a built-in role.
	gs := []grants.Grant{select_("TABLE", "DB.S.T", "ACCOUNTADMIN")}
	roles.NewClassifier(m, gs).Classify()

	r.Equal(roles.BuiltIn, m["ACCOUNTADMIN"].Type)
	r.Equal(roles.BuiltIn, m["PUBLIC"].Type)
}

func TestClassifySCIM(t *testing.T) {
	r := require.New(t)

	m := adminMap("OKTA_PROVISIONER", "CUSTOM_PROVISIONER")
	roles.NewClassifier(m, nil, "CUSTOM_PROVISIONER").Classify()

	r.Equal(roles.SCIM, m["OKTA_PROVISIONER"].Type)
	r.Equal(roles.SCIM, m["CUSTOM_PROVISIONER"].Type)
}

func TestClassifyUnknownWithoutAdmins(t *testing.T) {
	r := require.New(t)

	m := roles.NewMap()
	m.Ensure("ORPHAN")
	roles.NewClassifier(m, nil).Classify()

	r.Equal(roles.Unknown, m["ORPHAN"].Type)
}

func TestClassifyRoleManagement(t *testing.T) {
	r := require.New(t)

	m := adminMap("USER_MGMT")
	m.BuildGraph([]grants.Grant{usage("ROLE", "USER_MGMT", "USERADMIN")})
	// SELECT on a table does not matter, RoleManagement wins first.
	gs := []grants.Grant{select_("TABLE", "DB.S.T", "USER_MGMT")}
	roles.NewClassifier(m, gs).Classify()

	r.Equal(roles.RoleManagement, m["USER_MGMT"].Type)
}

func TestClassifyAccess(t *testing.T) {
	r := require.New(t)

	m := adminMap("RO_ROLE", "NOISE_ROLE")
	m.BuildGraph([]grants.Grant{
		usage("ROLE", "RO_ROLE", "SYSADMIN"),
		usage("ROLE", "NOISE_ROLE", "SYSADMIN"),
	})
	gs := []grants.Grant{
		select_("TABLE", "DB.S.T", "RO_ROLE"),
		// Excluded privileges do not make an access role.
		{Privilege: "OWNERSHIP", ObjectType: "TABLE", ObjectName: "DB.S.T", GrantedTo: "NOISE_ROLE"},
		{Privilege: "MONITOR", ObjectType: "SCHEMA", ObjectName: "DB.S", GrantedTo: "NOISE_ROLE"},
	}
	roles.NewClassifier(m, gs).Classify()

	r.Equal(roles.Access, m["RO_ROLE"].Type)
	r.NotEqual(roles.Access, m["NOISE_ROLE"].Type)
}

func TestClassifyFunctional(t *testing.T) {
	r := require.New(t)

	m := adminMap("FUNC", "SUB")
	m.BuildGraph([]grants.Grant{
		usage("ROLE", "FUNC", "SYSADMIN"),
		usage("ROLE", "SUB", "FUNC"),
		usage("ROLE", "SUB", "SYSADMIN"),
	})
	roles.NewClassifier(m, nil).Classify()

	r.Equal(roles.Functional, m["FUNC"].Type)
}

func TestClassifyCorrections(t *testing.T) {
	r := require.New(t)

	// STRAY is not under ACCOUNTADMIN at all.
	m := adminMap("STRAY", "STRAY_PARENT")
	m.BuildGraph([]grants.Grant{usage("ROLE", "STRAY", "STRAY_PARENT")})
	roles.NewClassifier(m, nil).Classify()
	r.Equal(roles.NotUnderAccountAdmin, m["STRAY"].Type)

	// FUNC hangs off ACCOUNTADMIN directly, bypassing SYSADMIN.
	m = adminMap("FUNC", "SUB")
	m.BuildGraph([]grants.Grant{
		usage("ROLE", "FUNC", "ACCOUNTADMIN"),
		usage("ROLE", "SUB", "FUNC"),
	})
	roles.NewClassifier(m, nil).Classify()
	r.Equal(roles.FunctionalNotUnderSysadmin, m["FUNC"].Type)

	// Same for an access role.
	m = adminMap("RO_ROLE")
	m.BuildGraph([]grants.Grant{usage("ROLE", "RO_ROLE", "ACCOUNTADMIN")})
	gs := []grants.Grant{select_("VIEW", "DB.S.V", "RO_ROLE")}
	roles.NewClassifier(m, gs).Classify()
	r.Equal(roles.AccessNotUnderSysadmin, m["RO_ROLE"].Type)
}
