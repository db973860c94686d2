package middleware

import (
	"context"
	"net/http"

	"pulse/internal/transport/http/api"
)

// PermissionStore answers whether a role grants a permission.
// auth.StaticPermissions is the production implementation.
type PermissionStore interface {
	HasPermission(ctx context.Context, role, permission string) (bool, error)
}

// RequirePermission must run after Auth. It answers 401 when no user is on
// the context and 403 when the user's role lacks permission.
func RequirePermission(permission string, store PermissionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := GetRequestID(r.Context())
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
				return
			}

			switch allowed, err := store.HasPermission(r.Context(), user.RoleName, permission); {
			case err != nil:
				api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", reqID)
			case !allowed:
				api.Fail(w, http.StatusForbidden, "forbidden", "missing permission "+permission, reqID)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
