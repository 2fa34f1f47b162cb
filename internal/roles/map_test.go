package roles_test

import (
	"testing"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/roles"
	"github.com/stretchr/testify/require"
)

func usage(objectType, object, to string) grants.Grant {
	return grants.Grant{
		Privilege:  "USAGE",
		ObjectType: objectType,
		ObjectName: object,
		GrantedTo:  to,
	}
}

func TestBuildGraph(t *testing.T) {
	r := require.New(t)

	m := roles.NewMap()
	m.Ensure("ACCOUNTADMIN")
	m.Ensure("SYSADMIN")
	m.Ensure("ANALYST")

	m.BuildGraph([]grants.Grant{
		usage("ROLE", "SYSADMIN", "ACCOUNTADMIN"),
		usage("ROLE", "ANALYST", "SYSADMIN"),
		// Unknown endpoints are skipped, best effort.
		usage("ROLE", "GHOST", "SYSADMIN"),
		usage("ROLE", "ANALYST", "GHOST"),
		// Same edge twice.
		usage("ROLE", "ANALYST", "SYSADMIN"),
		usage("USER", "ANALYST", "alice"),
	})

	r.Equal([]string{"SYSADMIN"}, m["ANALYST"].Parents)
	r.Equal([]string{"ANALYST"}, m["SYSADMIN"].Children)
	r.Equal([]string{"ACCOUNTADMIN"}, m["SYSADMIN"].Parents)
	r.True(m["ACCOUNTADMIN"].IsRoot())
	r.Equal([]string{"alice"}, m["ANALYST"].AssignedUsers)
}

func TestRollsUp(t *testing.T) {
	r := require.New(t)

	m := roles.NewMap()
	for _, name := range []string{"ROOT", "MID", "LEAF", "LONER"} {
		m.Ensure(name)
	}
	m.BuildGraph([]grants.Grant{
		usage("ROLE", "MID", "ROOT"),
		usage("ROLE", "LEAF", "MID"),
	})

	r.True(m.RollsUp("LEAF", "ROOT"))
	r.True(m.RollsUp("LEAF", "MID"))
	r.False(m.RollsUp("ROOT", "LEAF"))
	r.False(m.RollsUp("LONER", "ROOT"))
	// No self containment.
	r.False(m.RollsUp("ROOT", "ROOT"))
}
