package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"salvage-server/internal/auth"
	"salvage-server/internal/shared/config"
	"salvage-server/internal/shared/cookies"
	"salvage-server/internal/shared/errors"
	"salvage-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

type Authenticator struct {
	cfg config.AuthConfig
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{cfg: cfg}
}

// Require admits requests carrying a valid token, either as a bearer header
// or in the auth cookie.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "jwt",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing JWT authentication")

		token, ok := auth.BearerToken(r)
		if !ok {
			token, ok = cookies.AuthToken(r)
		}
		if !ok {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := auth.ValidateJWT(a.cfg, token)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		logger.Debug("JWT authentication successful",
			"pilot", claims.Pilot,
			"role", claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
