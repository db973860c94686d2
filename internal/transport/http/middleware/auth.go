package middleware

import (
	"context"
	"net/http"
	"strings"

	"pulse/internal/domain/auth"
	"pulse/internal/requestctx"
	"pulse/internal/transport/http/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// TokenChecker reports whether a verified token id is still usable.
type TokenChecker func(ctx context.Context, tokenID string) (bool, error)

// Auth attaches the caller to the request context when a valid bearer token is
// present. Requests without one pass through anonymously; RequireUser and
// RequirePermission decide whether that is acceptable.
func Auth(secret string, active TokenChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if active != nil {
				ok, err := active(r.Context(), claims.ID)
				if err != nil {
					api.Fail(w, http.StatusServiceUnavailable, "upstream_unavailable", "session check failed", GetRequestID(r.Context()))
					return
				}
				if !ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			user := auth.UserContext{
				UserID:   claims.UserID,
				RoleName: claims.RoleName,
				TokenID:  claims.ID,
			}
			if claims.ExpiresAt != nil {
				user.ExpiresAt = claims.ExpiresAt.Time
			}
			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			ctx = requestctx.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

// WithUser is used by handler tests to stand in for a verified token.
func WithUser(ctx context.Context, user auth.UserContext) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}
