package handlers

import (
	"net/http"
	"time"

	"github.com/corporativo/sdu/internal/server/response"
	"github.com/corporativo/sdu/internal/store"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "sdu-api",
		"version": "v1",
	})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	cached := map[string]bool{}
	for _, role := range store.Roles() {
		cached[string(role)] = h.store.Has(role)
	}

	stats := map[string]any{
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
		"sessions":       h.sessions.Len(),
		"cached_files":   cached,
	}
	if result, ok := h.sessions.Get(r); ok {
		stats["result"] = map[string]any{
			"mode":  result.Mode,
			"stats": result.Stats,
		}
	}
	response.OK(w, stats)
}
