package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/corporativo/sdu/pkg/tables"
)

func xlsxBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestIsXLSX(t *testing.T) {
	data := xlsxBytes(t, [][]any{{"a"}})
	assert.True(t, IsXLSX(data))
	assert.False(t, IsXLSX([]byte("nombre,correo\n")))
	assert.False(t, IsXLSX(nil))
}

func TestLoadCSV(t *testing.T) {
	t.Run("plain utf-8", func(t *testing.T) {
		tab, err := LoadCSV([]byte("Nombre,Correo\nAna,a@x.mx\n"), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"nombre", "correo"}, tab.Columns)
		require.Equal(t, 1, tab.Len())
		assert.Equal(t, "Ana", tab.Rows[0]["nombre"].Text())
	})

	t.Run("utf-8 BOM stripped", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("nombre\nAna\n")...)
		tab, err := LoadCSV(data, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"nombre"}, tab.Columns)
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		// "Teléfono" with é encoded as 0xE9 (not valid UTF-8)
		data := []byte{'T', 'e', 'l', 0xE9, 'f', 'o', 'n', 'o', '\n', '5', '5', '5', '\n'}
		tab, err := LoadCSV(data, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"teléfono"}, tab.Columns)
	})

	t.Run("header row selection", func(t *testing.T) {
		data := []byte("Reporte de ubicacion,,\nNombre,Departamento,Puesto\nAna,TI,Analista\n")
		tab, err := LoadCSV(data, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"nombre", "departamento", "puesto"}, tab.Columns)
		require.Equal(t, 1, tab.Len())
	})

	t.Run("numeric cells typed as numbers", func(t *testing.T) {
		tab, err := LoadCSV([]byte("nombre,ext\nAna,1234\n"), 0)
		require.NoError(t, err)
		cell := tab.Rows[0]["ext"]
		assert.Equal(t, tables.KindNumber, cell.Kind)
		assert.Equal(t, "1234", cell.Text())
	})

	t.Run("fully empty rows dropped", func(t *testing.T) {
		tab, err := LoadCSV([]byte("nombre,correo\nAna,a@x.mx\n,\n\nLuis,l@x.mx\n"), 0)
		require.NoError(t, err)
		assert.Equal(t, 2, tab.Len())
	})

	t.Run("ragged rows padded", func(t *testing.T) {
		tab, err := LoadCSV([]byte("nombre,correo\nAna\n"), 0)
		require.NoError(t, err)
		require.Equal(t, 1, tab.Len())
		assert.True(t, tab.Rows[0]["correo"].IsEmpty())
	})

	t.Run("duplicate and empty headers de-duplicated", func(t *testing.T) {
		tab, err := LoadCSV([]byte("nombre,,nombre\nAna,x,Luis\n"), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"nombre", "unnamed_1", "nombre_2"}, tab.Columns)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := LoadCSV([]byte(""), 0)
		require.Error(t, err)
	})

	t.Run("header row out of range", func(t *testing.T) {
		_, err := LoadCSV([]byte("nombre\n"), 5)
		require.Error(t, err)
	})
}

func TestLoadXLSX(t *testing.T) {
	t.Run("first sheet loaded", func(t *testing.T) {
		data := xlsxBytes(t, [][]any{
			{"Nombre", "Telefono"},
			{"Ana Lopez", 5551234},
			{"Carlos Ruiz", "555-9876"},
		})

		tab, err := LoadXLSX(data, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"nombre", "telefono"}, tab.Columns)
		require.Equal(t, 2, tab.Len())
		assert.Equal(t, "5551234", tab.Rows[0]["telefono"].Text())
		assert.Equal(t, "555-9876", tab.Rows[1]["telefono"].Text())
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := LoadXLSX([]byte("garbage"), 0)
		require.Error(t, err)
	})
}

func TestLoadDispatch(t *testing.T) {
	xl := xlsxBytes(t, [][]any{{"nombre"}, {"Ana"}})
	tab, err := Load(xl, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Len())

	tab, err = Load([]byte("nombre\nAna\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Len())
}
