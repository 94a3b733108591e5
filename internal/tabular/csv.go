package tabular

import (
	"bytes"
	"encoding/csv"

	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/tables"
)

// LoadCSV reads delimited text. The input encoding is detected and
// converted to UTF-8 before parsing; mismatched column counts are padded
// or truncated rather than rejected.
func LoadCSV(data []byte, headerRow int) (*tables.Table, error) {
	decoded, err := decodeText(data)
	if err != nil {
		return nil, errors.NewParseError("csv", "", "encoding detection failed", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Real-world exports have ragged rows and sloppy quoting.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParseError("csv", "", "malformed delimited text", err)
	}
	if len(raw) == 0 {
		return nil, errors.NewParseError("csv", "", "empty file: no header row found", nil)
	}
	return build("csv", "", raw, headerRow)
}
