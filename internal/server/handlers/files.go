package handlers

import (
	"io"
	"net/http"

	"github.com/corporativo/sdu/internal/server/response"
	"github.com/corporativo/sdu/internal/store"
)

// HandleListFiles handles GET /api/v1/files.
func (h *Handlers) HandleListFiles(w http.ResponseWriter, _ *http.Request) {
	manifest, err := h.store.List()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, manifest)
}

// HandleUploadFile handles POST /api/v1/files/{role}. The upload replaces
// whatever was cached for the role.
func (h *Handlers) HandleUploadFile(w http.ResponseWriter, r *http.Request, role store.Role) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// A share link is accepted in place of a file part.
		if url := r.FormValue("url"); url != "" {
			data, err := h.fetcher.FetchWorkbook(r.Context(), url)
			if err != nil {
				response.ErrorFromType(w, err)
				return
			}
			h.saveAndRespond(w, role, string(role)+".xlsx", data)
			return
		}
		response.BadRequest(w, "Missing file", "Provide a 'file' part or a 'url' form value")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	h.saveAndRespond(w, role, header.Filename, data)
}

// HandleDeleteFile handles DELETE /api/v1/files/{role}.
func (h *Handlers) HandleDeleteFile(w http.ResponseWriter, _ *http.Request, role store.Role) {
	if err := h.store.Clear(role); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"role": role, "cleared": true})
}

func (h *Handlers) saveAndRespond(w http.ResponseWriter, role store.Role, filename string, data []byte) {
	if err := h.store.Save(role, filename, data); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"role":     role,
		"filename": filename,
		"size":     len(data),
	})
}
