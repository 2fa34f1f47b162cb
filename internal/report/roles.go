package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/roles"
)

var roleHeader = []string{
	"Name", "Owner", "Type", "IsInherited",
	"NumAssignedUsers", "NumChildRoles", "NumParentRoles",
	"AssignedUsers", "ChildRoles", "ParentRoles",
	"AncestryPaths", "NumAncestryPaths",
	"Comment", "IsObjectIdentifierSpecialCharacters",
	"CreatedOn", "CreatedOnUTC",
}

// WriteRoles emits the canonical role table, sorted by name.
func WriteRoles(out io.Writer, m roles.Map, limits roles.PathLimits) error {
	w := csv.NewWriter(out)
	if err := w.Write(roleHeader); err != nil {
		return err
	}
	for _, name := range m.SortedNames() {
		role := m[name]
		paths, _, err := m.AncestryPaths(name, limits)
		if err != nil {
			return err
		}
		record := []string{
			role.Name, role.Owner, string(role.Type),
			strconv.FormatBool(len(role.Parents) > 0),
			strconv.Itoa(len(role.AssignedUsers)),
			strconv.Itoa(len(role.Children)),
			strconv.Itoa(len(role.Parents)),
			strings.Join(role.AssignedUsers, ","),
			strings.Join(role.Children, ","),
			strings.Join(role.Parents, ","),
			strings.Join(paths, "\n"),
			strconv.Itoa(len(paths)),
			role.Comment,
			strconv.FormatBool(grants.HasSpecialCharacters(role.Name)),
			formatTime(role.CreatedAt), formatTimeUTC(role.CreatedAt),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

var edgeHeader = []string{
	"ChildName", "ParentName", "AncestryPaths", "ImportantAncestor",
}

// WriteHierarchyEdges emits one row per parent->child relation.
func WriteHierarchyEdges(out io.Writer, edges []roles.HierarchyEdge) error {
	w := csv.NewWriter(out)
	if err := w.Write(edgeHeader); err != nil {
		return err
	}
	for _, edge := range edges {
		record := []string{
			edge.ChildName, edge.ParentName, edge.AncestryPaths, edge.ImportantAncestor,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
