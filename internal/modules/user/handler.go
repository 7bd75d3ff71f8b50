package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/policy"
	"github.com/dukkanpos/backoffice-api/internal/web"
)

// Guard wraps a handler with an authorization check for an operation.
type Guard func(policy.Operation) func(http.Handler) http.Handler

// Handler exposes user HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, guard Guard) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.With(guard(policy.OpUserList)).Get("/", h.list)
		r.With(guard(policy.OpUserList)).Get("/{id}", h.get)
		r.With(guard(policy.OpUserRoleUpdate)).Patch("/{id}/role", h.updateRole)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "user.register", err)
		return
	}
	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		web.Error(w, "user.register", err)
		return
	}
	web.JSON(w, http.StatusCreated, u)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		web.Error(w, "user.list", err)
		return
	}
	web.JSON(w, http.StatusOK, users)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "user.get", err)
		return
	}
	web.JSON(w, http.StatusOK, u)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := policy.ActorFromContext(r.Context())
	if !ok {
		web.Error(w, "user.role.update", apperr.Unauthorized("authentication required"))
		return
	}
	var req UpdateRoleRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "user.role.update", err)
		return
	}
	u, err := h.service.UpdateRole(r.Context(), actor.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, "user.role.update", err)
		return
	}
	web.JSON(w, http.StatusOK, u)
}
