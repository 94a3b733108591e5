package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "ANA LOPEZ", NormalizeName(String("  ana lopez ")))
	assert.Equal(t, "", NormalizeName(Empty()))

	// Idempotent: normalizing an already normalized name is a no-op.
	once := NormalizeName(String(" Carlos Ruiz"))
	assert.Equal(t, once, NormalizeName(String(once)))
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "ANA", String("ANA").Text())
	assert.Equal(t, "42", Number(42).Text())
	assert.Equal(t, "3.5", Number(3.5).Text())
	assert.Equal(t, "", Empty().Text())
}

func TestCleanKeyColumn(t *testing.T) {
	tab := New("nombre", "depto")
	tab.Append(Row{"nombre": String("  ana lopez "), "depto": String("TI")})
	tab.Append(Row{"nombre": String("nan"), "depto": String("RH")})
	tab.Append(Row{"nombre": String("NONE"), "depto": String("RH")})
	tab.Append(Row{"nombre": Empty(), "depto": String("RH")})
	tab.Append(Row{"nombre": String("Carlos Ruiz"), "depto": String("VENTAS")})

	cleaned := tab.CleanKeyColumn("nombre")

	require.Equal(t, 2, cleaned.Len())
	assert.Equal(t, "ANA LOPEZ", cleaned.Rows[0]["nombre"].Text())
	assert.Equal(t, "CARLOS RUIZ", cleaned.Rows[1]["nombre"].Text())
	// Non-key columns are untouched.
	assert.Equal(t, "TI", cleaned.Rows[0]["depto"].Text())

	// Original table is not mutated.
	assert.Equal(t, 5, tab.Len())
	assert.Equal(t, "  ana lopez ", tab.Rows[0]["nombre"].Text())
}

func TestSearch(t *testing.T) {
	tab := New("nombre", "depto")
	tab.Append(Row{"nombre": String("ANA LOPEZ"), "depto": String("TI")})
	tab.Append(Row{"nombre": String("CARLOS RUIZ"), "depto": String("Ventas")})
	tab.Append(Row{"nombre": String("MARIA PAZ"), "depto": Number(42)})

	t.Run("case insensitive partial", func(t *testing.T) {
		got := tab.Search("lopez")
		require.Equal(t, 1, got.Len())
		assert.Equal(t, "ANA LOPEZ", got.Rows[0]["nombre"].Text())
	})

	t.Run("matches any column", func(t *testing.T) {
		got := tab.Search("VENTAS")
		require.Equal(t, 1, got.Len())
		assert.Equal(t, "CARLOS RUIZ", got.Rows[0]["nombre"].Text())
	})

	t.Run("matches number text", func(t *testing.T) {
		got := tab.Search("42")
		assert.Equal(t, 1, got.Len())
	})

	t.Run("empty term returns everything", func(t *testing.T) {
		assert.Equal(t, 3, tab.Search("").Len())
	})

	t.Run("no hits", func(t *testing.T) {
		assert.Equal(t, 0, tab.Search("zzz").Len())
	})
}

func TestToCSV(t *testing.T) {
	tab := New("nombre", "telefono")
	tab.Append(Row{"nombre": String("ANA, LOPEZ"), "telefono": Number(5551234)})

	data, err := tab.ToCSV()
	require.NoError(t, err)

	// UTF-8 BOM so desktop spreadsheet tools detect the encoding.
	require.True(t, len(data) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])

	body := string(data[3:])
	assert.Equal(t, "nombre,telefono\n\"ANA, LOPEZ\",5551234\n", body)
}
