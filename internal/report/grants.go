// Package report emits the canonical tabular outputs. Hosts pick the
// destination; writers only know io.Writer.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
)

var grantHeader = []string{
	"Privilege", "ObjectType", "ObjectName", "GrantedTo",
	"DBName", "SchemaName", "EntityName",
	"GrantedBy", "WithGrantOption", "CreatedOn", "CreatedOnUTC",
}

// WriteGrants emits canonical grants as CSV, in input order.
func WriteGrants(out io.Writer, gs []grants.Grant) error {
	w := csv.NewWriter(out)
	if err := w.Write(grantHeader); err != nil {
		return err
	}
	for _, g := range gs {
		record := []string{
			g.Privilege, g.ObjectType, g.ObjectName, g.GrantedTo,
			g.DBName, g.SchemaName, g.EntityName,
			g.GrantedBy, strconv.FormatBool(g.WithGrantOption),
			formatTime(g.CreatedAt), formatTimeUTC(g.CreatedAt),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatTime renders a round-trippable ISO-8601 timestamp, empty when zero.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func formatTimeUTC(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
