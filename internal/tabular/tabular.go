// Package tabular loads spreadsheet byte formats (XLSX workbooks and CSV
// exports) into tables. Header normalization happens once here, at load
// time, so downstream matching always sees canonical column names.
// Fully-empty rows are dropped; cell-level irregularities are coerced to
// loosely typed cells, never raised as errors.
package tabular

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/tables"
)

// xlsxMagic is the ZIP container signature every XLSX workbook starts with.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// IsXLSX reports whether the bytes begin with the XLSX container magic.
func IsXLSX(data []byte) bool {
	return bytes.HasPrefix(data, xlsxMagic)
}

// Load reads tabular bytes into a table, dispatching on the container
// format. headerRow selects which physical row (0-based) holds the headers.
func Load(data []byte, headerRow int) (*tables.Table, error) {
	if IsXLSX(data) {
		return LoadXLSX(data, headerRow)
	}
	return LoadCSV(data, headerRow)
}

// build assembles a table from raw string records: headers are normalized
// and de-duplicated, cells are loosely typed, and fully-empty rows are
// dropped.
func build(format, file string, raw [][]string, headerRow int) (*tables.Table, error) {
	if headerRow < 0 || headerRow >= len(raw) {
		return nil, errors.NewParseError(format, file,
			fmt.Sprintf("header row %d out of range (%d rows)", headerRow, len(raw)), nil)
	}
	headers := normalizeHeaders(raw[headerRow])
	t := tables.New(headers...)
	for _, rec := range raw[headerRow+1:] {
		row := make(tables.Row, len(headers))
		hasData := false
		for i, col := range headers {
			cell := tables.Empty()
			if i < len(rec) {
				cell = parseCell(rec[i])
			}
			if !cell.IsEmpty() {
				hasData = true
			}
			row[col] = cell
		}
		if hasData {
			t.Append(row)
		}
	}
	return t, nil
}

// normalizeHeaders canonicalizes header text and guarantees unique,
// non-empty column names.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := tables.NormalizeColumnName(h)
		if name == "" {
			name = fmt.Sprintf("unnamed_%d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name] = 1
		headers[i] = name
	}
	return headers
}

// parseCell types a raw cell: blank becomes empty, numeric text becomes a
// number, everything else stays a string.
func parseCell(s string) tables.Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return tables.Empty()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return tables.Number(f)
	}
	return tables.String(s)
}
