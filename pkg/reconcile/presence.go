package reconcile

import (
	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/tables"
)

// ColEnUbicacion is the boolean flag column appended by Presence.
const ColEnUbicacion = "en_ubicacion"

// Presence runs the roster-presence workflow: every row of the relation
// table is annotated with whether its name key appears in the roster. No
// rows are dropped; the relation table's columns are preserved and the flag
// column is appended.
func (r *Reconciler) Presence(roster, relation *tables.Table) (*Result, error) {
	rosterKey, ok := roster.FindKeyColumn(r.vocab.Name)
	if !ok {
		return nil, errors.NewSchemaError(SourceUbicacion, ColNombre)
	}
	relationKey, ok := relation.FindKeyColumn(r.vocab.Name)
	if !ok {
		return nil, errors.NewSchemaError(SourceRelacion, ColNombre)
	}

	rosterClean := roster.CleanKeyColumn(rosterKey)
	relationClean := relation.CleanKeyColumn(relationKey)

	known := make(map[string]bool, rosterClean.Len())
	for _, row := range rosterClean.Rows {
		known[row[rosterKey].Text()] = true
	}

	out := tables.New(append(append([]string(nil), relationClean.Columns...), ColEnUbicacion)...)
	matched := 0
	for _, row := range relationClean.Rows {
		rec := make(tables.Row, len(row)+1)
		for k, v := range row {
			rec[k] = v
		}
		present := known[row[relationKey].Text()]
		if present {
			matched++
			rec[ColEnUbicacion] = tables.String("true")
		} else {
			rec[ColEnUbicacion] = tables.String("false")
		}
		out.Append(rec)
	}

	stats := Stats{
		Total:     out.Len(),
		Matched:   matched,
		Unmatched: out.Len() - matched,
	}
	r.logger.Info().
		Int("total", stats.Total).
		Int("matched", stats.Matched).
		Int("unmatched", stats.Unmatched).
		Msg("Roster presence check completed")

	return &Result{Mode: ModeRelacion, Table: out, Stats: stats}, nil
}
