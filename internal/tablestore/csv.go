package tablestore

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV decodes a legacy dataset export into a table snapshot at version 0.
// The first line is the header; cells missing from short rows stay absent
// rather than becoming empty values.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	t := Table{Columns: records[0]}
	for _, rec := range records[1:] {
		row := make(Row, len(t.Columns))
		for i, cell := range rec {
			if i >= len(t.Columns) {
				break
			}
			row[t.Columns[i]] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteCSV encodes the table in header order. Absent cells are written empty.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	line := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			line[i] = row[col]
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
