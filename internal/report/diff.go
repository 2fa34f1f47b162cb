package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/diff"
)

var diffHeader = []string{
	"Privilege", "ObjectType", "ObjectName", "GrantedTo", "UniqueIdentifier",
	"DBName", "SchemaName", "EntityName",
	"ReportLeft", "ReportRight",
	"Difference", "DifferenceDetails",
	"GrantedByLeft", "GrantedByRight",
	"WithGrantOptionLeft", "WithGrantOptionRight",
	"CreatedOnUTCLeft", "CreatedOnUTCRight",
}

// WriteDifferences emits comparison outcomes in engine order. leftLabel and
// rightLabel name the compared snapshots, typically their source folders.
func WriteDifferences(out io.Writer, differences []diff.Difference, leftLabel, rightLabel string) error {
	w := csv.NewWriter(out)
	if err := w.Write(diffHeader); err != nil {
		return err
	}
	for _, d := range differences {
		g := d.Grant()
		record := []string{
			g.Privilege, g.ObjectType, g.ObjectName, g.GrantedTo, g.Key(),
			g.DBName, g.SchemaName, g.EntityName,
			presence(d.Left != nil, leftLabel),
			presence(d.Right != nil, rightLabel),
			string(d.Kind),
			strings.Join(d.Fields, ", "),
			sideGrantedBy(d, true), sideGrantedBy(d, false),
			sideGrantOption(d, true), sideGrantOption(d, false),
			sideCreatedAt(d, true), sideCreatedAt(d, false),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func presence(present bool, label string) string {
	if present {
		return label
	}
	return ""
}

func sideGrantedBy(d diff.Difference, left bool) string {
	g := d.Right
	if left {
		g = d.Left
	}
	if g == nil {
		return ""
	}
	return g.GrantedBy
}

func sideGrantOption(d diff.Difference, left bool) string {
	g := d.Right
	if left {
		g = d.Left
	}
	if g == nil {
		return ""
	}
	return strconv.FormatBool(g.WithGrantOption)
}

func sideCreatedAt(d diff.Difference, left bool) string {
	g := d.Right
	if left {
		g = d.Left
	}
	if g == nil {
		return ""
	}
	return formatTimeUTC(g.CreatedAt)
}
