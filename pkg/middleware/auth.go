package middleware

import (
	"net/http"
	"strings"

	"face-onboarding/internal/token"
	"face-onboarding/pkg/utils"

	"go.uber.org/zap"
)

// AuthJWT middleware validates the bearer token minted at registration
func AuthJWT(issuer *token.Issuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			tokenString := parts[1]

			claims, err := issuer.Parse(tokenString)
			if err != nil {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Set context with username and token
			ctx := utils.SetUsernameContext(r.Context(), claims.Username)
			ctx = utils.SetTokenContext(ctx, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
