package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukkanpos/backoffice-api/internal/modules/user"
	"github.com/dukkanpos/backoffice-api/internal/web"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/auth/login", h.login)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "auth.login", err)
		return
	}
	token, u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		web.Error(w, "auth.login", err)
		return
	}
	web.JSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}
