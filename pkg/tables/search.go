package tables

import "strings"

// Search filters rows by case-insensitive substring match: a row survives
// if any of its cells, string-coerced, contains the term. Row order and
// columns are preserved. The empty term matches every row.
func (t *Table) Search(term string) *Table {
	if t == nil {
		return nil
	}
	needle := strings.ToLower(term)
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if strings.Contains(strings.ToLower(row[col].Text()), needle) {
				out.Rows = append(out.Rows, row)
				break
			}
		}
	}
	return out
}
