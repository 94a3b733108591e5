package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/tables"
)

func rosterTable(rows ...[3]string) *tables.Table {
	t := tables.New("nombre", "departamento", "puesto")
	for _, r := range rows {
		t.Append(tables.Row{
			"nombre":       tables.String(r[0]),
			"departamento": tables.String(r[1]),
			"puesto":       tables.String(r[2]),
		})
	}
	return t
}

func contactTable(valueCol string, rows ...[2]string) *tables.Table {
	t := tables.New("nombre", valueCol)
	for _, r := range rows {
		t.Append(tables.Row{
			"nombre":  tables.String(r[0]),
			valueCol: tables.String(r[1]),
		})
	}
	return t
}

func TestIsDirector(t *testing.T) {
	assert.True(t, IsDirector("Director de Finanzas"))
	assert.True(t, IsDirector("DIRECTOR GENERAL"))
	assert.False(t, IsDirector("Subdirector de Finanzas"))
	assert.False(t, IsDirector("SUBDIRECTOR"))
	assert.False(t, IsDirector("Analista"))
	assert.False(t, IsDirector(""))
}

func TestEnrich(t *testing.T) {
	r := New()

	t.Run("basic enrichment", func(t *testing.T) {
		roster := rosterTable(
			[3]string{"ana lopez", "TI", "Analista"},
			[3]string{"Carlos Ruiz", "Ventas", "Gerente"},
		)
		email := contactTable("correo",
			[2]string{"ANA LOPEZ", "ana@corp.mx"},
		)
		phone := contactTable("telefono",
			[2]string{"carlos ruiz", "555-1234"},
		)

		result, err := r.Enrich(roster, email, phone)
		require.NoError(t, err)

		assert.Equal(t, ModeContactos, result.Mode)
		assert.Equal(t, []string{"nombre", "departamento", "puesto", "correo", "telefono"}, result.Table.Columns)
		require.Equal(t, 2, result.Table.Len())

		first := result.Table.Rows[0]
		assert.Equal(t, "ANA LOPEZ", first["nombre"].Text())
		assert.Equal(t, "ana@corp.mx", first["correo"].Text())
		assert.Equal(t, "", first["telefono"].Text())

		second := result.Table.Rows[1]
		assert.Equal(t, "CARLOS RUIZ", second["nombre"].Text())
		assert.Equal(t, "555-1234", second["telefono"].Text())

		assert.Equal(t, Stats{Total: 2, Matched: 2, Unmatched: 0}, result.Stats)
	})

	t.Run("record with no contact info dropped", func(t *testing.T) {
		roster := rosterTable(
			[3]string{"ANA LOPEZ", "TI", "Analista"},
			[3]string{"SIN CONTACTO", "RH", "Aux"},
		)
		email := contactTable("correo", [2]string{"ANA LOPEZ", "ana@corp.mx"})

		result, err := r.Enrich(roster, email, nil)
		require.NoError(t, err)

		require.Equal(t, 1, result.Table.Len())
		assert.Equal(t, Stats{Total: 2, Matched: 1, Unmatched: 1}, result.Stats)
	})

	t.Run("directors excluded, subdirectors kept", func(t *testing.T) {
		roster := rosterTable(
			[3]string{"JEFE MAYOR", "DG", "Director General"},
			[3]string{"SEGUNDO ABORDO", "DG", "Subdirector de Area"},
		)
		email := contactTable("correo",
			[2]string{"JEFE MAYOR", "jefe@corp.mx"},
			[2]string{"SEGUNDO ABORDO", "sub@corp.mx"},
		)

		result, err := r.Enrich(roster, email, nil)
		require.NoError(t, err)

		require.Equal(t, 1, result.Table.Len())
		assert.Equal(t, "SEGUNDO ABORDO", result.Table.Rows[0]["nombre"].Text())
		assert.Equal(t, Stats{Total: 2, Matched: 1, Unmatched: 1}, result.Stats)
	})

	t.Run("duplicate roster names collapse to one record", func(t *testing.T) {
		roster := rosterTable(
			[3]string{"ANA LOPEZ", "TI", "Analista"},
			[3]string{"ana lopez ", "Sistemas", "Senior"},
		)
		email := contactTable("correo", [2]string{"ANA LOPEZ", "ana@corp.mx"})

		result, err := r.Enrich(roster, email, nil)
		require.NoError(t, err)

		require.Equal(t, 1, result.Table.Len())
		// Department and position come from the last occurrence.
		assert.Equal(t, "Sistemas", result.Table.Rows[0]["departamento"].Text())
		assert.Equal(t, "Senior", result.Table.Rows[0]["puesto"].Text())
		assert.Equal(t, 1, result.Stats.Total)
	})

	t.Run("first contact wins on duplicates", func(t *testing.T) {
		roster := rosterTable([3]string{"ANA LOPEZ", "TI", "Analista"})
		email := contactTable("correo",
			[2]string{"ANA LOPEZ", "primero@corp.mx"},
			[2]string{"ANA LOPEZ", "segundo@corp.mx"},
		)

		result, err := r.Enrich(roster, email, nil)
		require.NoError(t, err)

		require.Equal(t, 1, result.Table.Len())
		assert.Equal(t, "primero@corp.mx", result.Table.Rows[0]["correo"].Text())
	})

	t.Run("missing roster key column", func(t *testing.T) {
		bad := tables.New("id", "puesto")
		bad.Append(tables.Row{"id": tables.Number(1), "puesto": tables.String("X")})

		_, err := r.Enrich(bad, contactTable("correo"), nil)
		require.Error(t, err)
		assert.True(t, errors.IsSchemaMismatch(err))
		assert.Contains(t, err.Error(), "ubicacion")
	})

	t.Run("missing contact key column", func(t *testing.T) {
		roster := rosterTable([3]string{"ANA LOPEZ", "TI", "Analista"})
		bad := tables.New("correo")
		bad.Append(tables.Row{"correo": tables.String("x@corp.mx")})

		_, err := r.Enrich(roster, bad, nil)
		require.Error(t, err)
		assert.True(t, errors.IsSchemaMismatch(err))
		assert.Contains(t, err.Error(), "correo")
	})

	t.Run("contact table without value column is ignored", func(t *testing.T) {
		roster := rosterTable([3]string{"ANA LOPEZ", "TI", "Analista"})
		noValue := tables.New("nombre", "notas")
		noValue.Append(tables.Row{"nombre": tables.String("ANA LOPEZ"), "notas": tables.String("x")})
		phone := contactTable("telefono", [2]string{"ANA LOPEZ", "555"})

		result, err := r.Enrich(roster, noValue, phone)
		require.NoError(t, err)

		// No correo column in output since the email source contributed nothing.
		assert.Equal(t, []string{"nombre", "departamento", "puesto", "telefono"}, result.Table.Columns)
	})

	t.Run("empty contact values never override", func(t *testing.T) {
		roster := rosterTable([3]string{"ANA LOPEZ", "TI", "Analista"})
		email := contactTable("correo",
			[2]string{"ANA LOPEZ", ""},
			[2]string{"ANA LOPEZ", "ana@corp.mx"},
		)

		result, err := r.Enrich(roster, email, nil)
		require.NoError(t, err)
		require.Equal(t, 1, result.Table.Len())
		assert.Equal(t, "ana@corp.mx", result.Table.Rows[0]["correo"].Text())
	})
}

func TestPresence(t *testing.T) {
	r := New()

	roster := rosterTable(
		[3]string{"ANA LOPEZ", "TI", "Analista"},
	)
	relation := tables.New("nombre", "area")
	relation.Append(tables.Row{"nombre": tables.String("ana lopez"), "area": tables.String("X")})
	relation.Append(tables.Row{"nombre": tables.String("Carlos Ruiz"), "area": tables.String("Y")})

	result, err := r.Presence(roster, relation)
	require.NoError(t, err)

	assert.Equal(t, ModeRelacion, result.Mode)
	assert.Equal(t, []string{"nombre", "area", "en_ubicacion"}, result.Table.Columns)
	require.Equal(t, 2, result.Table.Len())

	assert.Equal(t, "true", result.Table.Rows[0]["en_ubicacion"].Text())
	assert.Equal(t, "false", result.Table.Rows[1]["en_ubicacion"].Text())
	assert.Equal(t, Stats{Total: 2, Matched: 1, Unmatched: 1}, result.Stats)
}

func TestPresenceMissingKeys(t *testing.T) {
	r := New()
	good := rosterTable([3]string{"ANA LOPEZ", "TI", "Analista"})
	bad := tables.New("sin_clave")
	bad.Append(tables.Row{"sin_clave": tables.String("x")})

	_, err := r.Presence(bad, good)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ubicacion")

	_, err = r.Presence(good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relacion")
}

func TestWithVocabulary(t *testing.T) {
	custom := DefaultVocabulary()
	custom.Name = []string{"trabajador"}
	r := New(WithVocabulary(custom))

	roster := tables.New("trabajador", "correo_col")
	roster.Append(tables.Row{"trabajador": tables.String("ANA"), "correo_col": tables.String("x")})
	email := tables.New("trabajador", "correo")
	email.Append(tables.Row{"trabajador": tables.String("ANA"), "correo": tables.String("a@b.mx")})

	result, err := r.Enrich(roster, email, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Table.Len())
}

func TestModeValid(t *testing.T) {
	assert.True(t, ModeContactos.Valid())
	assert.True(t, ModeRelacion.Valid())
	assert.False(t, Mode("otro").Valid())
	assert.False(t, Mode("").Valid())
}
