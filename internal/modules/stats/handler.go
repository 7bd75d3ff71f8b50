package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukkanpos/backoffice-api/internal/policy"
	"github.com/dukkanpos/backoffice-api/internal/web"
)

// Guard wraps a handler with an authorization check for an operation.
type Guard func(policy.Operation) func(http.Handler) http.Handler

// Handler exposes the stats HTTP endpoint.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, guard Guard) {
	r.With(guard(policy.OpStatsView)).Get("/api/v1/stats", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Summary(r.Context())
	if err != nil {
		web.Error(w, "stats.summary", err)
		return
	}
	web.JSON(w, http.StatusOK, s)
}
