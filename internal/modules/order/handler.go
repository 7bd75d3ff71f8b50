package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/policy"
	"github.com/dukkanpos/backoffice-api/internal/web"
)

// Guard wraps a handler with an authorization check for an operation.
type Guard func(policy.Operation) func(http.Handler) http.Handler

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, guard Guard) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.With(guard(policy.OpOrderPlace)).Post("/", h.place)
		r.With(guard(policy.OpOrderList)).Get("/", h.list)
		r.With(guard(policy.OpOrderList)).Get("/{id}", h.get)
		r.With(guard(policy.OpOrderStatusUpdate)).Patch("/{id}/status", h.updateStatus)
	})
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	actor, ok := policy.ActorFromContext(r.Context())
	if !ok {
		web.Error(w, "order.place", apperr.Unauthorized("authentication required"))
		return
	}
	var req PlaceOrderRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "order.place", err)
		return
	}
	o, err := h.service.Place(r.Context(), actor, req)
	if err != nil {
		web.Error(w, "order.place", err)
		return
	}
	web.JSON(w, http.StatusCreated, o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		web.Error(w, "order.list", err)
		return
	}
	web.JSON(w, http.StatusOK, orders)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "order.get", err)
		return
	}
	web.JSON(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "order.status.update", err)
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, "order.status.update", err)
		return
	}
	web.JSON(w, http.StatusOK, o)
}
