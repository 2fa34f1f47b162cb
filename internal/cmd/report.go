package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/config"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/inspect"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/lists"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/perf"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/pivot"
	rpt "github.com/Snowflake-Labs/sfgrantreport-sub000/internal/report"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/roles"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// queryWatch accumulates time spent in snowsql, reported at end of run.
var queryWatch perf.StopWatch

// report runs the full analysis of one snapshot: normalize, graph, classify,
// pivot, emit.
func report(ctx context.Context, conf config.Config) error {
	set, roleMap, err := loadSnapshot(ctx, conf)
	if err != nil {
		return err
	}
	slog.Info("Snapshot materialized.", "grants", set.Len(), "roles", len(roleMap))

	blacklist := lists.Blacklist(conf.ExcludeRoles)
	if err := blacklist.Check(); err != nil {
		return fmt.Errorf("exclude-roles: %w", err)
	}
	all := excludeRoles(blacklist, set.Slice(), roleMap)

	limits := roles.PathLimits{MaxPaths: conf.MaxPaths, MaxDepth: conf.MaxDepth}
	roleMap.EnsureFromGrants(all)
	roleMap.BuildGraph(all)
	roles.NewClassifier(roleMap, all, conf.ScimRoles...).Classify()

	err = os.MkdirAll(conf.OutputFolder, 0o755)
	if err != nil {
		return err
	}

	// The role reports and the pivots are both pure readers of the
	// normalized snapshot, they can run side by side.
	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		return writeRoleReports(conf, roleMap, limits)
	})
	group.Go(func() error {
		return writePivots(conf, all)
	})
	group.Go(func() error {
		return writeFile(outPath(conf, "grants"), func(f *os.File) error {
			return rpt.WriteGrants(f, all)
		})
	})
	err = group.Wait()
	if err != nil {
		return err
	}

	if conf.DotBinary != "" {
		dot := rpt.RoleGraphDOT(roleMap)
		target := rpt.OutputPath(conf.OutputFolder, account(conf), "role-hierarchy", "png")
		err = rpt.RenderDOT(ctx, conf.DotBinary, dot, "png", target)
		if err != nil {
			return err
		}
		slog.Info("Wrote hierarchy diagram.", "path", target)
	}
	return nil
}

// excludeRoles drops blacklisted roles and every grant referencing them,
// before any graph or pivot work sees them.
func excludeRoles(bl lists.Blacklist, all []grants.Grant, roleMap roles.Map) []grants.Grant {
	if len(bl) == 0 {
		return all
	}
	for _, name := range roleMap.SortedNames() {
		if pattern := bl.MatchString(name); pattern != "" {
			slog.Debug("Excluding role.", "role", name, "pattern", pattern)
			delete(roleMap, name)
		}
	}
	out := make([]grants.Grant, 0, len(all))
	for _, g := range all {
		if bl.MatchString(g.GrantedTo) != "" {
			continue
		}
		if g.ObjectType == "ROLE" && bl.MatchString(g.ObjectName) != "" {
			continue
		}
		out = append(out, g)
	}
	return out
}

func loadSnapshot(ctx context.Context, conf config.Config) (*grants.Set, roles.Map, error) {
	if conf.InputFolder != "" {
		return inspect.LoadFolder(conf.InputFolder)
	}
	if conf.Connection == "" {
		return nil, nil, fmt.Errorf("one of --connection or --input-folder is required")
	}
	client := inspect.Client{Binary: conf.SnowSQL, Connection: conf.Connection, Watch: &queryWatch}
	return inspect.FetchAccount(ctx, client)
}

func writeRoleReports(conf config.Config, roleMap roles.Map, limits roles.PathLimits) error {
	err := writeFile(outPath(conf, "roles"), func(f *os.File) error {
		return rpt.WriteRoles(f, roleMap, limits)
	})
	if err != nil {
		return err
	}
	edges, err := roleMap.HierarchyEdges(limits)
	if err != nil {
		return err
	}
	return writeFile(outPath(conf, "role-hierarchy"), func(f *os.File) error {
		return rpt.WriteHierarchyEdges(f, edges)
	})
}

func writePivots(conf config.Config, all []grants.Grant) error {
	byType := make(map[string][]grants.Grant)
	for _, g := range all {
		byType[g.ObjectType] = append(byType[g.ObjectType], g)
	}
	types := maps.Keys(byType)
	slices.Sort(types)
	for _, objectType := range types {
		table := pivot.Pivot(objectType, byType[objectType])
		err := writeFile(outPath(conf, "grants-"+objectType), func(f *os.File) error {
			return rpt.WritePivot(f, table)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func account(conf config.Config) string {
	if conf.Account != "" {
		return conf.Account
	}
	if conf.Connection != "" {
		return conf.Connection
	}
	return "account"
}

func outPath(conf config.Config, kind string) string {
	return rpt.OutputPath(conf.OutputFolder, account(conf), kind, "csv")
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	err = f.Close()
	if err != nil {
		return err
	}
	slog.Info("Wrote report.", "path", path)
	return nil
}
