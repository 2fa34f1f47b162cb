package report

import (
	"encoding/csv"
	"io"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/pivot"
)

// WritePivot emits one wide table. Privilege column headers are the
// per-batch assigned names.
func WritePivot(out io.Writer, table pivot.Table) error {
	w := csv.NewWriter(out)
	header := append([]string{
		"ObjectType", "ObjectName", "GrantedTo",
		"DBName", "SchemaName", "EntityName",
	}, table.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := append([]string{
			row.ObjectType, row.ObjectName, row.GrantedTo,
			row.DBName, row.SchemaName, row.EntityName,
		}, row.Cells...)
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
