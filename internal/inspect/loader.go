package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/roles"
)

// Well-known file names inside a capture folder. One folder is one snapshot
// of one account.
const (
	RolesFile        = "roles.csv"
	GrantsOnFile     = "grants_on.csv"
	GrantsToFile     = "grants_to.csv"
	GrantsOfFile     = "grants_of.csv"
	AccountUsageFile = "account_usage_grants.csv"
)

// LoadFolder materializes a snapshot from CSV exports.
//
// Missing files are tolerated; the union of whatever grant files are present
// is deduplicated through the returned set. Malformed rows were already
// logged row by row, the batch keeps going.
func LoadFolder(dir string) (*grants.Set, roles.Map, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, err
	}

	roleMap := roles.NewMap()
	if rows, ok := readOptional(filepath.Join(dir, RolesFile)); ok {
		m, err := BuildRoleMap(rows)
		if err != nil {
			slog.Warn("Some role rows were skipped.", "folder", dir, "err", err)
		}
		roleMap = m
	}

	set := grants.NewSet()
	loaders := []struct {
		file      string
		normalize func([]map[string]string, *grants.Set) error
	}{
		{GrantsOnFile, NormalizeShowGrants},
		{GrantsToFile, NormalizeShowGrants},
		{GrantsOfFile, NormalizeMemberships},
		{AccountUsageFile, NormalizeAccountUsageGrants},
	}
	found := false
	for _, loader := range loaders {
		rows, ok := readOptional(filepath.Join(dir, loader.file))
		if !ok {
			continue
		}
		found = true
		if err := loader.normalize(rows, set); err != nil {
			slog.Warn("Some grant rows were skipped.", "file", loader.file, "err", err)
		}
	}
	if !found {
		return nil, nil, fmt.Errorf("%s: no grant file found", dir)
	}
	return set, roleMap, nil
}

func readOptional(path string) ([]map[string]string, bool) {
	rows, err := ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Skipping unreadable file.", "path", path, "err", err)
		}
		return nil, false
	}
	return rows, true
}

// FetchAccount materializes a snapshot live through snowsql.
func FetchAccount(ctx context.Context, c Client) (*grants.Set, roles.Map, error) {
	rows, err := c.QueryRows(ctx, "SHOW ROLES;")
	if err != nil {
		return nil, nil, fmt.Errorf("roles: %w", err)
	}
	roleMap, err := BuildRoleMap(rows)
	if err != nil {
		slog.Warn("Some role rows were skipped.", "err", err)
	}

	set := grants.NewSet()
	rows, err = c.QueryRows(ctx, "SHOW GRANTS ON ACCOUNT;")
	if err != nil {
		return nil, nil, fmt.Errorf("account grants: %w", err)
	}
	if err := NormalizeShowGrants(rows, set); err != nil {
		slog.Warn("Some account grant rows were skipped.", "err", err)
	}

	for _, name := range roleMap.SortedNames() {
		identifier := name
		if grants.HasSpecialCharacters(name) {
			identifier = `"` + name + `"`
		}
		queries := []struct {
			sql       string
			normalize func([]map[string]string, *grants.Set) error
		}{
			{fmt.Sprintf("SHOW GRANTS ON ROLE %s;", identifier), NormalizeShowGrants},
			{fmt.Sprintf("SHOW GRANTS TO ROLE %s;", identifier), NormalizeShowGrants},
			{fmt.Sprintf("SHOW GRANTS OF ROLE %s;", identifier), NormalizeMemberships},
		}
		for _, q := range queries {
			rows, err = c.QueryRows(ctx, q.sql)
			if err != nil {
				return nil, nil, fmt.Errorf("role %s: %w", name, err)
			}
			if err := q.normalize(rows, set); err != nil {
				slog.Warn("Some grant rows were skipped.", "role", name, "err", err)
			}
		}
	}
	return set, roleMap, nil
}
