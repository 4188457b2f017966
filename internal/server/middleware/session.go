package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/service"
)

type contextKeySession string

// SessionKey is the context key for the verified session claims.
const SessionKey contextKeySession = "session"

// RequireSession returns an HTTP middleware that admits only requests
// carrying a valid session cookie. The claims are attached to the request
// context; anything else gets a 401 JSON error.
func RequireSession(sessions *service.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := sessions.Current(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), claims)))
		})
	}
}

// WithSession returns a copy of ctx carrying claims.
func WithSession(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, SessionKey, claims)
}

// GetSession extracts the session claims from the context. Returns nil if
// the request did not pass through RequireSession.
func GetSession(ctx context.Context) *service.Claims {
	if c, ok := ctx.Value(SessionKey).(*service.Claims); ok {
		return c
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Error: model.ErrorDetail{Code: status, Message: message},
	})
}
