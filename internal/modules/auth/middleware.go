package auth

import (
	"net/http"
	"strings"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/policy"
	"github.com/dukkanpos/backoffice-api/internal/web"
)

// Authenticator parses an optional bearer token and attaches the actor to the
// request context. Requests without a token pass through unauthenticated;
// protected routes enforce presence via Guard.
func Authenticator(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				actor, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
				if err != nil {
					web.Error(w, "auth", err)
					return
				}
				r = r.WithContext(policy.WithActor(r.Context(), actor))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guard returns middleware enforcing that an authenticated actor is present
// and permitted to perform op. Disallowed attempts are rejected before the
// handler runs, with no side effect.
func Guard(op policy.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := policy.ActorFromContext(r.Context())
			if !ok {
				web.Error(w, string(op), apperr.Unauthorized("authentication required"))
				return
			}
			if !policy.Allowed(actor.Role, op) {
				web.Error(w, string(op), apperr.Unauthorized("role %s may not perform %s", actor.Role, op))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
