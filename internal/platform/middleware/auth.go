package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"caseflow/pkg/requestcontext"
)

// Claims represents the claims we expect from the token validator.
type Claims struct {
	UserID      string
	Permissions []string
}

// TokenValidator validates a bearer token and extracts its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and records the
// user ID and the raw token (for upstream forwarding) on the context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token validation failed", "error", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := requestcontext.WithUserID(r.Context(), claims.UserID)
			ctx = requestcontext.WithToken(ctx, token)
			ctx = requestcontext.WithPermissions(ctx, claims.Permissions)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
