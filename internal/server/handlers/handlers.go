// Package handlers provides HTTP request handlers for the SDU API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/corporativo/sdu/internal/fetch"
	"github.com/corporativo/sdu/internal/server/session"
	"github.com/corporativo/sdu/internal/store"
	"github.com/corporativo/sdu/pkg/reconcile"
	"github.com/corporativo/sdu/pkg/tables"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	store      *store.Store
	fetcher    *fetch.Client
	sessions   *session.Store
	reconciler *reconcile.Reconciler
	logger     *zerolog.Logger
	startTime  time.Time
}

// New creates a new Handlers instance.
func New(
	st *store.Store,
	fetcher *fetch.Client,
	sessions *session.Store,
	reconciler *reconcile.Reconciler,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		store:      st,
		fetcher:    fetcher,
		sessions:   sessions,
		reconciler: reconciler,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// headerRowFor returns the physical header row for a source role. The
// roster export carries a title banner above its headers; the rest do not.
func headerRowFor(role store.Role) int {
	if role == store.RoleUbicacion {
		return 1
	}
	return 0
}

// tableJSON converts a table into the JSON shape the UI consumes.
func tableJSON(t *tables.Table) map[string]any {
	rows := make([]map[string]string, 0, t.Len())
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for _, col := range t.Columns {
			rec[col] = row[col].Text()
		}
		rows = append(rows, rec)
	}
	return map[string]any{
		"columns": t.Columns,
		"rows":    rows,
		"count":   t.Len(),
	}
}
