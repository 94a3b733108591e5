package handlers

import (
	"net/http"
	"time"

	"github.com/corporativo/sdu/internal/server/response"
)

// HandleResults handles GET /api/v1/results.
func (h *Handlers) HandleResults(w http.ResponseWriter, r *http.Request) {
	result, ok := h.sessions.Get(r)
	if !ok {
		response.NotFound(w, "No results available", "Run /process first")
		return
	}
	response.OK(w, map[string]any{
		"mode":  result.Mode,
		"stats": result.Stats,
		"table": tableJSON(result.Table),
	})
}

// HandleSearch handles GET /api/v1/results/search?q=term.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	result, ok := h.sessions.Get(r)
	if !ok {
		response.NotFound(w, "No results available", "Run /process first")
		return
	}
	term := r.URL.Query().Get("q")
	filtered := result.Table.Search(term)
	response.OK(w, map[string]any{
		"mode":  result.Mode,
		"query": term,
		"table": tableJSON(filtered),
	})
}

// HandleExport handles GET /api/v1/results/export. The download is CSV
// with a UTF-8 BOM so desktop spreadsheet tools detect the encoding.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.sessions.Get(r)
	if !ok {
		response.NotFound(w, "No results available", "Run /process first")
		return
	}

	t := result.Table
	if term := r.URL.Query().Get("q"); term != "" {
		t = t.Search(term)
	}

	data, err := t.ToCSV()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	filename := "sdu_" + string(result.Mode) + "_" + time.Now().Format("20060102_150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}
