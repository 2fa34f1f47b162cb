package pivot

import (
	"log/slog"
	"strings"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// MaxPrivilegeColumns caps the width of a pivoted table. Privileges beyond
// the cap are dropped with a warning, not silently resized.
const MaxPrivilegeColumns = 20

// Row is one (ObjectType, ObjectName, GrantedTo) combination. Cells align
// with the batch Columns: "", "X", or "X+" for grant option.
type Row struct {
	ObjectType string
	ObjectName string
	GrantedTo  string
	DBName     string
	SchemaName string
	EntityName string
	Cells      []string
}

// Table is the wide form of all grants on one object type.
type Table struct {
	ObjectType string
	Columns    []string // Assigned once per batch, stable across rows.
	Rows       []Row
	Dropped    []string // Privileges beyond MaxPrivilegeColumns.
}

// containerTypes get both OWNERSHIP and USAGE promoted to the first columns.
// Leaf types only promote OWNERSHIP. ACCOUNT keeps plain alphabetical order.
var containerTypes = mapset.NewSet(
	"DATABASE",
	"SCHEMA",
	"WAREHOUSE",
	"ROLE",
	"DATABASE_ROLE",
	"INTEGRATION",
	"RESOURCE_MONITOR",
)

// Pivot converts all grants of one object type into a wide table keyed by
// (object, principal).
func Pivot(objectType string, gs []grants.Grant) Table {
	t := Table{ObjectType: objectType}
	gs = slices.Clone(gs)
	slices.SortStableFunc(gs, func(a, b grants.Grant) int {
		if c := strings.Compare(a.ObjectType, b.ObjectType); c != 0 {
			return c
		}
		if c := strings.Compare(a.ObjectName, b.ObjectName); c != 0 {
			return c
		}
		return strings.Compare(a.GrantedTo, b.GrantedTo)
	})

	t.Columns, t.Dropped = assignColumns(objectType, gs)
	if len(t.Dropped) > 0 {
		slog.Warn("Too many distinct privileges for object type, dropping excess columns.",
			"objecttype", objectType,
			"max", MaxPrivilegeColumns,
			"dropped", t.Dropped,
		)
	}
	index := make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		index[name] = i
	}

	var row *Row
	for _, g := range gs {
		if row == nil || row.ObjectType != g.ObjectType || row.ObjectName != g.ObjectName || row.GrantedTo != g.GrantedTo {
			t.Rows = append(t.Rows, Row{
				ObjectType: g.ObjectType,
				ObjectName: g.ObjectName,
				GrantedTo:  g.GrantedTo,
				DBName:     g.DBName,
				SchemaName: g.SchemaName,
				EntityName: g.EntityName,
				Cells:      make([]string, len(t.Columns)),
			})
			row = &t.Rows[len(t.Rows)-1]
		}
		col, ok := index[g.Privilege]
		if !ok {
			continue // Dropped by the capacity limit.
		}
		if g.WithGrantOption {
			row.Cells[col] = "X+"
		} else {
			row.Cells[col] = "X"
		}
	}
	return t
}

// assignColumns orders distinct privileges alphabetically, then promotes the
// security-relevant ones to the front according to the object type.
func assignColumns(objectType string, gs []grants.Grant) (columns, dropped []string) {
	distinct := mapset.NewThreadUnsafeSet[string]()
	for _, g := range gs {
		distinct.Add(g.Privilege)
	}
	columns = distinct.ToSlice()
	slices.Sort(columns)

	switch {
	case objectType == "ACCOUNT":
		// No promotion.
	case containerTypes.Contains(objectType):
		columns = promote(columns, "OWNERSHIP", "USAGE")
	default:
		columns = promote(columns, "OWNERSHIP")
	}

	if len(columns) > MaxPrivilegeColumns {
		dropped = columns[MaxPrivilegeColumns:]
		columns = columns[:MaxPrivilegeColumns]
	}
	return
}

// promote moves names to the front, in order, preserving the relative order
// of the remaining columns.
func promote(columns []string, names ...string) []string {
	out := make([]string, 0, len(columns))
	for _, name := range names {
		if slices.Contains(columns, name) {
			out = append(out, name)
		}
	}
	for _, col := range columns {
		if !slices.Contains(out, col) {
			out = append(out, col)
		}
	}
	return out
}
