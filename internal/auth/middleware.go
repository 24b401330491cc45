package auth

import (
	"context"
	"net/http"
	"strings"

	"pizza-fresca/internal/httpx"
	"pizza-fresca/internal/models"
)

type identityKey struct{}

// IdentityFromContext returns the authenticated user attached to the
// request context, if any.
func IdentityFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(identityKey{}).(*models.User)
	return user, ok
}

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	service *Service
}

// NewMiddleware creates auth middleware backed by the given service.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireUser rejects requests without a valid bearer token and attaches the
// resolved identity to the request context.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.identify(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", httpx.RequestID(r.Context()))
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, user)))
	}
}

// RequireAdmin rejects requests without a valid bearer token belonging to an
// admin. A failed role check stops the chain; the downstream handler is
// never invoked.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.identify(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", httpx.RequestID(r.Context()))
			return
		}
		if !user.IsAdmin() {
			httpx.WriteError(w, http.StatusForbidden, "forbidden", httpx.RequestID(r.Context()))
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, user)))
	}
}

func (m *Middleware) identify(r *http.Request) (*models.User, bool) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header {
		return nil, false
	}

	user, err := m.service.Identify(r.Context(), token)
	if err != nil {
		return nil, false
	}
	return user, true
}
