package auth

import (
	"net/http"
	"strings"

	"github.com/inventorypulse/inventory-service/pkg/response"
)

// Middleware validates the bearer token and injects the actor into the
// request context.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := WithActor(r.Context(), Actor{
				UserID:   claims.UserID,
				Username: claims.Username,
				Role:     claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
