package diff_test

import (
	"testing"
	"time"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/diff"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/stretchr/testify/require"
)

func grant(privilege, objectType, object, to, by string, option bool, createdAt time.Time) grants.Grant {
	g := grants.Grant{
		Privilege:       privilege,
		ObjectType:      objectType,
		GrantedTo:       to,
		GrantedBy:       by,
		WithGrantOption: option,
		CreatedAt:       createdAt,
	}
	g.SetObjectName(object)
	return g
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCompareEmptySide(t *testing.T) {
	r := require.New(t)

	g := grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0)
	_, err := diff.Compare(nil, []grants.Grant{g})
	r.ErrorIs(err, diff.ErrEmptySide)
	_, err = diff.Compare([]grants.Grant{g}, nil)
	r.ErrorIs(err, diff.ErrEmptySide)
}

func TestCompareGrantOption(t *testing.T) {
	r := require.New(t)

	left := []grants.Grant{grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0)}
	right := []grants.Grant{grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", true, t0)}
	out, err := diff.Compare(left, right)
	r.NoError(err)
	r.Len(out, 1)
	r.Equal(diff.Different, out[0].Kind)
	r.Equal([]string{"WithGrantOption"}, out[0].Fields)
	r.False(out[0].Left.WithGrantOption)
	r.True(out[0].Right.WithGrantOption)
}

func TestCompareMissingExtra(t *testing.T) {
	r := require.New(t)

	common := grant("USAGE", "DATABASE", "DB0", "ROLE_A", "SYSADMIN", false, t0)
	onlyLeft := grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0)
	onlyRight := grant("INSERT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0)
	changed := grant("MODIFY", "DATABASE", "DB0", "ROLE_A", "SYSADMIN", false, t0)
	changedRight := changed
	changedRight.WithGrantOption = true

	out, err := diff.Compare(
		[]grants.Grant{common, onlyLeft, changed},
		[]grants.Grant{common, changedRight, onlyRight},
	)
	r.NoError(err)
	// |left\right| + |right\left| + |matched-but-different|
	r.Len(out, 3)
	r.Equal(diff.Missing, out[0].Kind)
	r.Equal("SELECT", out[0].Grant().Privilege)
	r.Nil(out[0].Right)
	r.Equal(diff.Different, out[1].Kind)
	r.Equal(diff.Extra, out[2].Kind)
	r.Equal("INSERT", out[2].Grant().Privilege)
	r.Nil(out[2].Left)
}

func TestCompareSymmetricKeys(t *testing.T) {
	r := require.New(t)

	left := []grants.Grant{
		grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0),
		grant("USAGE", "DATABASE", "DB0", "ROLE_A", "SYSADMIN", false, t0),
	}
	right := []grants.Grant{
		grant("USAGE", "DATABASE", "DB0", "ROLE_A", "SYSADMIN", true, t0),
		grant("INSERT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0),
	}

	forward, err := diff.Compare(left, right)
	r.NoError(err)
	backward, err := diff.Compare(right, left)
	r.NoError(err)

	keys := func(ds []diff.Difference) (out []string) {
		for _, d := range ds {
			out = append(out, d.Grant().Key())
		}
		return
	}
	r.ElementsMatch(keys(forward), keys(backward))
}

func TestCompareCreatedAtTolerance(t *testing.T) {
	r := require.New(t)

	left := []grants.Grant{grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0)}
	near := []grants.Grant{grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0.Add(400*time.Millisecond))}
	out, err := diff.Compare(left, near)
	r.NoError(err)
	r.Empty(out)

	far := []grants.Grant{grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, t0.Add(2*time.Second))}
	out, err = diff.Compare(left, far)
	r.NoError(err)
	r.Len(out, 1)
	r.Equal([]string{"CreatedOn"}, out[0].Fields)

	// A zero timestamp on either side disables the comparison.
	zero := []grants.Grant{grant("SELECT", "TABLE", "DB.S.T", "ROLE_A", "ROLE_B", false, time.Time{})}
	out, err = diff.Compare(left, zero)
	r.NoError(err)
	r.Empty(out)
}
