// Package reconcile implements the SDU record-matching engine. It joins an
// authoritative roster ("ubicacion") table against one or more contact or
// relation tables using the normalized employee name as the sole join key,
// and applies the directory business filters (contact-required,
// director-exclusion, roster-presence classification).
//
// The engine is pure over its input tables: it performs no I/O, runs
// synchronously, and produces a fresh result on every call.
package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/corporativo/sdu/pkg/logging"
)

// Source names identify input tables in errors and logs.
const (
	SourceUbicacion = "ubicacion"
	SourceCorreo    = "correo"
	SourceTelefono  = "telefono"
	SourceRelacion  = "relacion"
)

// Vocabulary holds the ranked candidate terms used to discover columns by
// normalized-substring match. Earlier terms outrank later ones.
type Vocabulary struct {
	Name       []string
	Department []string
	Position   []string
	Phone      []string
	Email      []string
}

// DefaultVocabulary returns the candidate terms observed in the corporate
// spreadsheet exports this system ingests.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Name:       []string{"nombre", "name", "nombres", "empleado", "colaborador"},
		Department: []string{"departamento", "depto", "department", "area"},
		Position:   []string{"puesto", "cargo", "position", "posicion", "title"},
		Phone:      []string{"telefono", "tel", "phone", "celular", "movil"},
		Email:      []string{"correo", "email", "mail"},
	}
}

// Reconciler joins cleaned tables into a combined directory view.
type Reconciler struct {
	vocab  Vocabulary
	logger *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithVocabulary overrides the column-discovery vocabulary. A vocabulary
// without name candidates is ignored: the join key must stay discoverable.
func WithVocabulary(v Vocabulary) Option {
	return func(r *Reconciler) {
		if len(v.Name) == 0 {
			return
		}
		r.vocab = v
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// New creates a Reconciler with options.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		vocab:  DefaultVocabulary(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
