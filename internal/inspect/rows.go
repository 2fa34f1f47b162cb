package inspect

import (
	"fmt"
	"log/slog"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/errorlist"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/roles"
	"github.com/mitchellh/mapstructure"
)

// RoleRow is the SHOW ROLES row shape, interactive or historical.
type RoleRow struct {
	CreatedOn string `mapstructure:"created_on"`
	Name      string `mapstructure:"name"`
	Owner     string `mapstructure:"owner"`
	Comment   string `mapstructure:"comment"`
	DeletedOn string `mapstructure:"DELETED_ON"`
}

func decodeRow[T any](row map[string]string) (out T, err error) {
	err = mapstructure.Decode(row, &out)
	return
}

// NormalizeShowGrants turns interactive SHOW GRANTS rows into canonical
// grants, appended to set. Malformed rows are logged, skipped and
// aggregated; parsing continues with the rest of the batch.
func NormalizeShowGrants(rows []map[string]string, set *grants.Set) error {
	errs := errorlist.New("malformed grant rows")
	for i, row := range rows {
		raw, err := decodeRow[grants.ShowGrantRow](row)
		var g grants.Grant
		if err == nil {
			g, err = grants.FromShowGrant(raw)
		}
		if err != nil {
			slog.Warn("Skipping malformed grant row.", "row", i, "err", err)
			if !errs.Append(fmt.Errorf("row %d: %w", i, err)) {
				return errs
			}
			continue
		}
		set.Add(g)
	}
	if errs.Len() > 0 {
		return errs
	}
	return nil
}

// NormalizeAccountUsageGrants turns historical export rows into canonical
// grants. Soft-deleted rows are excluded.
func NormalizeAccountUsageGrants(rows []map[string]string, set *grants.Set) error {
	errs := errorlist.New("malformed account usage rows")
	for i, row := range rows {
		raw, err := decodeRow[grants.AccountUsageGrantRow](row)
		var g grants.Grant
		var skip bool
		if err == nil {
			g, skip, err = grants.FromAccountUsage(raw)
		}
		if err != nil {
			slog.Warn("Skipping malformed account usage row.", "row", i, "err", err)
			if !errs.Append(fmt.Errorf("row %d: %w", i, err)) {
				return errs
			}
			continue
		}
		if skip {
			continue
		}
		set.Add(g)
	}
	if errs.Len() > 0 {
		return errs
	}
	return nil
}

// NormalizeMemberships turns SHOW GRANTS OF ROLE rows into USAGE grants.
func NormalizeMemberships(rows []map[string]string, set *grants.Set) error {
	errs := errorlist.New("malformed membership rows")
	for i, row := range rows {
		raw, err := decodeRow[grants.RoleMembershipRow](row)
		var g grants.Grant
		var skip bool
		if err == nil {
			g, skip, err = grants.FromRoleMembership(raw)
		}
		if err != nil {
			slog.Warn("Skipping malformed membership row.", "row", i, "err", err)
			if !errs.Append(fmt.Errorf("row %d: %w", i, err)) {
				return errs
			}
			continue
		}
		if skip {
			continue
		}
		set.Add(g)
	}
	if errs.Len() > 0 {
		return errs
	}
	return nil
}

// BuildRoleMap turns SHOW ROLES rows into a role map, one Role per distinct
// name, soft-deleted entries excluded.
func BuildRoleMap(rows []map[string]string) (roles.Map, error) {
	m := roles.NewMap()
	errs := errorlist.New("malformed role rows")
	for i, row := range rows {
		raw, err := decodeRow[RoleRow](row)
		if err != nil || raw.Name == "" {
			if err == nil {
				err = fmt.Errorf("missing name")
			}
			slog.Warn("Skipping malformed role row.", "row", i, "err", err)
			if !errs.Append(fmt.Errorf("row %d: %w", i, err)) {
				return m, errs
			}
			continue
		}
		if raw.DeletedOn != "" {
			continue
		}
		role := m.Ensure(raw.Name)
		role.Owner = raw.Owner
		role.Comment = raw.Comment
		role.CreatedAt, err = grants.ParseTime(raw.CreatedOn)
		if err != nil {
			slog.Warn("Ignoring bad role timestamp.", "role", raw.Name, "err", err)
		}
	}
	if errs.Len() > 0 {
		return m, errs
	}
	return m, nil
}
