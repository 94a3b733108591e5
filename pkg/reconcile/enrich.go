package reconcile

import (
	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/tables"
)

// Output column names of the enriched directory, in fixed order. A column
// is present only if the underlying field was discoverable in some source.
const (
	ColNombre       = "nombre"
	ColDepartamento = "departamento"
	ColPuesto       = "puesto"
	ColCorreo       = "correo"
	ColTelefono     = "telefono"
)

// Enrich runs the contact-enrichment workflow: the roster is authoritative
// and the email and phone tables contribute contact attributes. Either
// contact table may be nil, but a record with neither an email nor a phone
// match is dropped, and department directors are removed from the output.
// Records are emitted once per roster name, in first-appearance order.
func (r *Reconciler) Enrich(roster, email, phone *tables.Table) (*Result, error) {
	rosterKey, ok := roster.FindKeyColumn(r.vocab.Name)
	if !ok {
		return nil, errors.NewSchemaError(SourceUbicacion, ColNombre)
	}
	rosterClean := roster.CleanKeyColumn(rosterKey)

	var deptMap, posMap map[string]string
	deptCol, hasDept := rosterClean.FindKeyColumn(r.vocab.Department)
	if hasDept {
		deptMap = buildLastWins(rosterClean, rosterKey, deptCol)
	}
	posCol, hasPos := rosterClean.FindKeyColumn(r.vocab.Position)
	if hasPos {
		posMap = buildLastWins(rosterClean, rosterKey, posCol)
	}

	emailMap, hasEmail, err := r.contactLookup(email, SourceCorreo, r.vocab.Email)
	if err != nil {
		return nil, err
	}
	phoneMap, hasPhone, err := r.contactLookup(phone, SourceTelefono, r.vocab.Phone)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("roster_key", rosterKey).
		Bool("departamento", hasDept).
		Bool("puesto", hasPos).
		Bool("correo", hasEmail).
		Bool("telefono", hasPhone).
		Msg("Discovered enrichment columns")

	columns := []string{ColNombre}
	if hasDept {
		columns = append(columns, ColDepartamento)
	}
	if hasPos {
		columns = append(columns, ColPuesto)
	}
	if hasEmail {
		columns = append(columns, ColCorreo)
	}
	if hasPhone {
		columns = append(columns, ColTelefono)
	}
	out := tables.New(columns...)

	seen := make(map[string]bool, rosterClean.Len())
	total := 0
	for _, row := range rosterClean.Rows {
		key := row[rosterKey].Text()
		if seen[key] {
			continue
		}
		seen[key] = true
		total++

		mail := emailMap[key]
		tel := phoneMap[key]
		if mail == "" && tel == "" {
			// A roster entry with zero contact info is not useful output.
			continue
		}
		if IsDirector(posMap[key]) {
			continue
		}

		rec := tables.Row{ColNombre: tables.String(key)}
		if hasDept {
			rec[ColDepartamento] = cellOrEmpty(deptMap[key])
		}
		if hasPos {
			rec[ColPuesto] = cellOrEmpty(posMap[key])
		}
		if hasEmail {
			rec[ColCorreo] = cellOrEmpty(mail)
		}
		if hasPhone {
			rec[ColTelefono] = cellOrEmpty(tel)
		}
		out.Append(rec)
	}

	stats := Stats{
		Total:     total,
		Matched:   out.Len(),
		Unmatched: total - out.Len(),
	}
	r.logger.Info().
		Int("total", stats.Total).
		Int("matched", stats.Matched).
		Int("unmatched", stats.Unmatched).
		Msg("Contact enrichment completed")

	return &Result{Mode: ModeContactos, Table: out, Stats: stats}, nil
}

// contactLookup discovers the key and value columns of a contact table and
// builds its first-found-wins lookup map. A nil table or a table without
// any candidate value column contributes nothing; a table without a key
// column is a schema error.
func (r *Reconciler) contactLookup(t *tables.Table, source string, valueTerms []string) (map[string]string, bool, error) {
	if t == nil {
		return nil, false, nil
	}
	key, ok := t.FindKeyColumn(r.vocab.Name)
	if !ok {
		return nil, false, errors.NewSchemaError(source, ColNombre)
	}
	clean := t.CleanKeyColumn(key)
	valueColumns := clean.FindCandidateColumns(valueTerms)
	if len(valueColumns) == 0 {
		r.logger.Warn().Str("source", source).Msg("No contact value column discovered")
		return nil, false, nil
	}
	return buildFirstWins(clean, key, valueColumns), true, nil
}

func cellOrEmpty(s string) tables.Cell {
	if s == "" {
		return tables.Empty()
	}
	return tables.String(s)
}
