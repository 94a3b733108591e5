package handlers

import (
	"io"
	"net/http"

	"github.com/corporativo/sdu/internal/server/response"
	"github.com/corporativo/sdu/internal/store"
	"github.com/corporativo/sdu/internal/tabular"
	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/reconcile"
	"github.com/corporativo/sdu/pkg/tables"
)

// Uploads are spreadsheet exports; anything bigger than this is not one.
const maxUploadBytes = 32 << 20

// HandleProcess handles POST /api/v1/process. It gathers one table per
// source role (uploaded file, remote share link, or cached copy, in that
// order of preference), runs the requested reconciliation mode, and stores
// the result in the caller's session.
func (h *Handlers) HandleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", err.Error())
		return
	}

	mode := reconcile.Mode(r.FormValue("mode"))
	if mode == "" {
		mode = reconcile.ModeContactos
	}
	if !mode.Valid() {
		response.BadRequest(w, "Unknown mode", string(mode))
		return
	}

	roster, err := h.loadRole(r, store.RoleUbicacion, true)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var result *reconcile.Result
	switch mode {
	case reconcile.ModeContactos:
		email, err := h.loadRole(r, store.RoleCorreo, false)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		phone, err := h.loadRole(r, store.RoleTelefono, false)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		if email == nil && phone == nil {
			response.BadRequest(w, "Missing contact source",
				"Mode contactos requires at least one of correo or telefono")
			return
		}
		result, err = h.reconciler.Enrich(roster, email, phone)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
	case reconcile.ModeRelacion:
		relation, err := h.loadRole(r, store.RoleRelacion, true)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		result, err = h.reconciler.Presence(roster, relation)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
	}

	h.sessions.Put(w, r, result)
	h.logger.Info().
		Str("mode", string(result.Mode)).
		Int("total", result.Stats.Total).
		Int("matched", result.Stats.Matched).
		Msg("Reconciliation completed")

	response.OK(w, map[string]any{
		"mode":  result.Mode,
		"stats": result.Stats,
		"table": tableJSON(result.Table),
	})
}

// HandleReset handles POST /api/v1/reset.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(r)
	response.OK(w, map[string]any{"reset": true})
}

// loadRole produces the table for one source role. Preference order: file
// uploaded in this request, share link given in this request, cached copy.
// Optional roles yield a nil table when no source is available.
func (h *Handlers) loadRole(r *http.Request, role store.Role, required bool) (*tables.Table, error) {
	data, filename, err := h.roleBytes(r, role)
	if err != nil {
		return nil, err
	}
	if data == nil {
		if required {
			return nil, errors.NewSourceError(string(role), "no file, link, or cached copy available", nil)
		}
		return nil, nil
	}

	t, err := tabular.Load(data, headerRowFor(role))
	if err != nil {
		return nil, err
	}
	h.logger.Debug().
		Str("role", string(role)).
		Str("filename", filename).
		Int("rows", t.Len()).
		Msg("Source table loaded")
	return t, nil
}

func (h *Handlers) roleBytes(r *http.Request, role store.Role) ([]byte, string, error) {
	// Uploaded file takes precedence.
	if file, header, err := r.FormFile(string(role)); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", errors.WrapSource(string(role), err)
		}
		// Cache the upload so later runs can omit it.
		if err := h.store.Save(role, header.Filename, data); err != nil {
			h.logger.Warn().Err(err).Str("role", string(role)).Msg("Failed to cache upload")
		}
		return data, header.Filename, nil
	}

	// Then a share link.
	if url := r.FormValue("url_" + string(role)); url != "" {
		data, err := h.fetcher.FetchWorkbook(r.Context(), url)
		if err != nil {
			return nil, "", err
		}
		if err := h.store.Save(role, string(role)+".xlsx", data); err != nil {
			h.logger.Warn().Err(err).Str("role", string(role)).Msg("Failed to cache download")
		}
		return data, string(role) + ".xlsx", nil
	}

	// Fall back to the cache.
	data, filename, err := h.store.Load(role)
	if errors.IsNotFound(err) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return data, filename, nil
}
