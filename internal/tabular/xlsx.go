package tabular

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/tables"
)

// LoadXLSX reads the first sheet of an XLSX workbook.
func LoadXLSX(data []byte, headerRow int) (*tables.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParseError("xlsx", "", "not a valid workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("xlsx", "", "workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParseError("xlsx", sheets[0], "failed to read rows", err)
	}
	return build("xlsx", sheets[0], rows, headerRow)
}
