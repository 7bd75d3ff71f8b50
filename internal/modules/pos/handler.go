package pos

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/policy"
	"github.com/dukkanpos/backoffice-api/internal/web"
)

// Guard wraps a handler with an authorization check for an operation.
type Guard func(policy.Operation) func(http.Handler) http.Handler

// Handler exposes POS HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, guard Guard) {
	r.Route("/api/v1/pos/sales", func(r chi.Router) {
		r.With(guard(policy.OpPOSSale)).Post("/", h.recordSale)
		r.With(guard(policy.OpPOSList)).Get("/", h.list)
		r.With(guard(policy.OpPOSList)).Get("/{id}", h.get)
		r.With(guard(policy.OpPOSList)).Get("/order/{order_id}", h.getByOrder)
		r.With(guard(policy.OpPOSRefund)).Post("/{id}/refund", h.refund)
	})
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	actor, ok := policy.ActorFromContext(r.Context())
	if !ok {
		web.Error(w, "pos.sale", apperr.Unauthorized("authentication required"))
		return
	}
	var req RecordSaleRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "pos.sale", err)
		return
	}
	sale, err := h.service.RecordSale(r.Context(), actor, req)
	if err != nil {
		web.Error(w, "pos.sale", err)
		return
	}
	web.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSales(r.Context())
	if err != nil {
		web.Error(w, "pos.list", err)
		return
	}
	web.JSON(w, http.StatusOK, sales)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "pos.get", err)
		return
	}
	web.JSON(w, http.StatusOK, sale)
}

func (h *Handler) getByOrder(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.GetSaleByOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		web.Error(w, "pos.get", err)
		return
	}
	web.JSON(w, http.StatusOK, sale)
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.Refund(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "pos.refund", err)
		return
	}
	web.JSON(w, http.StatusOK, sale)
}
