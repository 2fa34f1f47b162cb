// Package inspect materializes raw grant and role records from snowsql
// output or from previously exported CSV files.
//
// The engine itself never performs I/O; everything here feeds it in-memory
// record collections.
package inspect

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadRows reads a headered CSV stream into one map per row, keyed by column
// name. Rows shorter than the header are tolerated, extra cells are not.
func ReadRows(in io.Reader) (rows []map[string]string, err error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	for lineno := 2; ; lineno++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("line %d: %d cells for %d columns", lineno, len(record), len(header))
		}
		row := make(map[string]string, len(header))
		for i, value := range record {
			row[header[i]] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func ReadFile(path string) ([]map[string]string, error) {
	fo, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fo.Close()
	rows, err := ReadRows(fo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
