package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	h "eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	rolesKey  contextKey = "roles"
)

// AdminRole is the role code required by RequireAdmin.
const AdminRole = "admin"

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// SetRoles returns a context with the authenticated user's role codes set.
func SetRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, rolesKey, roles)
}

// RolesFromContext returns the authenticated user's role codes, if present.
func RolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(rolesKey).([]string)
	return roles, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// user ID and roles in the request context. If the token is missing or
// invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			userID, roles, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			ctx := SetUserID(r.Context(), userID)
			ctx = SetRoles(ctx, roles)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin wraps a handler that must only be reachable by users whose
// token carries the admin role. It assumes RequireAuth already ran.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, ok := RolesFromContext(r.Context())
		if !ok || !slices.Contains(roles, AdminRole) {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "administrator role required")
			return
		}
		next(w, r)
	}
}
