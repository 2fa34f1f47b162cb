package inspect_test

import (
	"strings"
	"testing"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/inspect"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	r := require.New(t)

	in := strings.NewReader(strings.TrimSpace(`
created_on,privilege,granted_on,name,grantee_name,granted_by,grant_option
2024-01-01 00:00:00.000 -0800,USAGE,DATABASE,DB0,ROLE_A,SYSADMIN,false
2024-01-01 00:00:00.000 -0800,SELECT,TABLE,DB0.S.T,ROLE_A,ROLE_B,true
`))
	rows, err := inspect.ReadRows(in)
	r.NoError(err)
	r.Len(rows, 2)
	r.Equal("USAGE", rows[0]["privilege"])
	r.Equal("true", rows[1]["grant_option"])
}

func TestReadRowsEmpty(t *testing.T) {
	r := require.New(t)

	rows, err := inspect.ReadRows(strings.NewReader(""))
	r.NoError(err)
	r.Empty(rows)
}

func TestNormalizeShowGrants(t *testing.T) {
	r := require.New(t)

	set := grants.NewSet()
	err := inspect.NormalizeShowGrants([]map[string]string{
		{
			"created_on":   "2024-01-01 00:00:00.000 -0800",
			"privilege":    "SELECT",
			"granted_on":   "TABLE",
			"name":         "DB.S.T",
			"grantee_name": "ROLE_A",
			"granted_by":   "ROLE_B",
			"grant_option": "false",
		},
		// Identical fact from another source view.
		{
			"created_on":   "2024-01-01 00:00:00.000 -0800",
			"privilege":    "SELECT",
			"granted_on":   "TABLE",
			"name":         "DB.S.T",
			"grantee_name": "ROLE_A",
			"granted_by":   "ROLE_B",
			"grant_option": "false",
		},
	}, set)
	r.NoError(err)
	r.Equal(1, set.Len())
}

func TestNormalizeShowGrantsPartialFailure(t *testing.T) {
	r := require.New(t)

	set := grants.NewSet()
	err := inspect.NormalizeShowGrants([]map[string]string{
		{"created_on": "pouet", "privilege": "SELECT", "granted_on": "TABLE", "name": "T", "grantee_name": "ROLE_A"},
		{"created_on": "2024-01-01 00:00:00.000 -0800", "privilege": "USAGE", "granted_on": "DATABASE", "name": "DB0", "grantee_name": "ROLE_A"},
	}, set)
	// The batch continues past the malformed row and reports it.
	r.ErrorContains(err, "malformed")
	r.Equal(1, set.Len())
}

func TestNormalizeAccountUsageGrants(t *testing.T) {
	r := require.New(t)

	set := grants.NewSet()
	err := inspect.NormalizeAccountUsageGrants([]map[string]string{
		{
			"CREATED_ON":    "2024-01-01 00:00:00.000 -0800",
			"PRIVILEGE":     "SELECT",
			"GRANTED_ON":    "MATERIALIZED VIEW",
			"NAME":          "MV",
			"TABLE_CATALOG": "DB",
			"TABLE_SCHEMA":  "S",
			"GRANTEE_NAME":  "ROLE_A",
			"GRANT_OPTION":  "false",
		},
		{
			"CREATED_ON":   "2024-01-01 00:00:00.000 -0800",
			"PRIVILEGE":    "SELECT",
			"GRANTED_ON":   "TABLE",
			"NAME":         "GONE",
			"GRANTEE_NAME": "ROLE_A",
			"DELETED_ON":   "2024-06-01 00:00:00.000 -0800",
		},
	}, set)
	r.NoError(err)
	r.Equal(1, set.Len())
	r.Equal("MATERIALIZED_VIEW", set.Slice()[0].ObjectType)
}

func TestBuildRoleMap(t *testing.T) {
	r := require.New(t)

	m, err := inspect.BuildRoleMap([]map[string]string{
		{"created_on": "2024-01-01 00:00:00.000 -0800", "name": "ANALYST", "owner": "SYSADMIN", "comment": "read only"},
		{"created_on": "2024-01-01 00:00:00.000 -0800", "name": "GONE", "DELETED_ON": "2024-06-01 00:00:00.000 -0800"},
	})
	r.NoError(err)
	r.Len(m, 1)
	r.Equal("SYSADMIN", m["ANALYST"].Owner)
	r.Equal("read only", m["ANALYST"].Comment)
	r.Equal(2024, m["ANALYST"].CreatedAt.Year())
}
