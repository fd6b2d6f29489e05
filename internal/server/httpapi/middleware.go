package httpapi

import (
	"context"
	"net/http"

	"github.com/LeadConsult/alx-files-manager/internal/server/models"
)

// tokenHeader carries the session token on every authenticated request.
const tokenHeader = "X-Token"

type ctxKey string

const userKey ctxKey = "user"

// authMiddleware resolves the X-Token header to a user and stores it in the
// request context. Missing, expired and revoked tokens all get the same 401.
func (s *HTTPServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(tokenHeader)
		if token == "" {
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := s.users.Identify(r.Context(), token)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the authenticated user set by authMiddleware.
func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// viewerID resolves an optional token for endpoints that also serve
// anonymous viewers. Any resolution failure means anonymous, never an error.
func (s *HTTPServer) viewerID(r *http.Request) string {
	token := r.Header.Get(tokenHeader)
	if token == "" {
		return ""
	}
	user, err := s.users.Identify(r.Context(), token)
	if err != nil {
		return ""
	}
	return user.ID
}
