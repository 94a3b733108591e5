package tables

import (
	"bytes"
	"encoding/csv"
)

// utf8BOM makes locale-sensitive spreadsheet tools decode the export as
// UTF-8 so accented characters render correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ToCSV serializes the table as comma-separated values, header row first,
// prefixed with a UTF-8 byte-order mark.
func (t *Table) ToCSV() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col].Text()
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
