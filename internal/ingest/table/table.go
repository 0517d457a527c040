package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Purpose says which kind of table an extraction is after.
type Purpose string

const (
	PerGame Purpose = "per_game"
	Roster  Purpose = "roster"
)

// Table is a generic tabular value: an ordered header row plus data rows of
// raw string cells. It is what the extractor hands to the normalizer and what
// intermediate CSV artifacts serialize.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of a column by case-insensitive name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column exists (case-insensitive).
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at (row, column name), or "" when the column is
// missing or the row is ragged.
func (t *Table) Cell(row []string, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Append adds rows from other, aligning on other's own column order. Both
// tables must share the same columns; combined artifacts are built this way.
func (t *Table) Append(other *Table) error {
	if len(t.Columns) != len(other.Columns) {
		return fmt.Errorf("column count mismatch: %d vs %d", len(t.Columns), len(other.Columns))
	}
	for i := range t.Columns {
		if !strings.EqualFold(t.Columns[i], other.Columns[i]) {
			return fmt.Errorf("column mismatch at %d: %q vs %q", i, t.Columns[i], other.Columns[i])
		}
	}
	t.Rows = append(t.Rows, other.Rows...)
	return nil
}

// Project returns a new table with exactly the given columns in the given
// order. Columns absent from the source come out empty, so tables from pages
// with drifting schemas still share one artifact shape.
func (t *Table) Project(columns []string) *Table {
	indices := make([]int, len(columns))
	for i, col := range columns {
		indices[i] = t.ColumnIndex(col)
	}

	out := &Table{Columns: append([]string(nil), columns...)}
	for _, row := range t.Rows {
		projected := make([]string, len(columns))
		for i, idx := range indices {
			if idx >= 0 && idx < len(row) {
				projected[i] = row[idx]
			}
		}
		out.Rows = append(out.Rows, projected)
	}
	return out
}

// WriteCSV writes the table to path with a header row, creating parent
// directories as needed.
func (t *Table) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating artifact dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	return f.Close()
}

// ReadCSV loads a table previously written with WriteCSV.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty artifact, no header row", path)
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}
