package reconcile

import "github.com/corporativo/sdu/pkg/tables"

// Mode selects which reconciliation workflow produced a result.
type Mode string

// Reconciliation modes.
const (
	// ModeContactos enriches the roster with email and phone lookups.
	ModeContactos Mode = "contactos"
	// ModeRelacion annotates a relation table with roster-presence flags.
	ModeRelacion Mode = "relacion"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeContactos || m == ModeRelacion
}

// Stats summarizes a reconciliation run. Counts are recomputed on every
// run, never cached.
type Stats struct {
	Total     int `json:"total"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// Result is the combined output of a reconciliation run. It exists for the
// duration of a session and is replaced wholesale on the next run.
type Result struct {
	Mode  Mode          `json:"mode"`
	Table *tables.Table `json:"-"`
	Stats Stats         `json:"stats"`
}
