// Package tables provides the tabular data model for the SDU directory
// pipeline: loosely typed cells, immutable table snapshots, header
// normalization, heuristic key-column discovery, row filtering, substring
// search, and CSV export.
//
// Tables are snapshots of loaded spreadsheet data. Every transformation
// returns a new table; nothing mutates a table in place after it is built.
package tables

import "strings"

// Row maps a column name to its cell value.
type Row map[string]Cell

// Table is an ordered sequence of rows with a fixed column order.
// Column names are user-supplied spreadsheet headers, normalized once at
// load time; no schema is guaranteed.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds a row to the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.Rows = append(out.Rows, dup)
	}
	return out
}

// Cell returns the cell at the given row for the given column. Missing
// cells read as empty.
func (t *Table) Cell(row int, column string) Cell {
	if t == nil || row < 0 || row >= len(t.Rows) {
		return Empty()
	}
	if c, ok := t.Rows[row][column]; ok {
		return c
	}
	return Empty()
}

// NormalizeName canonicalizes a raw display name into a comparison key:
// string-coerce, trim, uppercase. Two rows are the same employee iff their
// keys are equal; this is the only join predicate in the system. An absent
// cell coerces to the empty string, which the row filter removes.
func NormalizeName(c Cell) string {
	return strings.ToUpper(strings.TrimSpace(c.Text()))
}
