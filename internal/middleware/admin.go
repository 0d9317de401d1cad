package middleware

import (
	"log/slog"
	"net/http"

	"salvage-server/internal/auth"
	"salvage-server/internal/shared/errors"
	"salvage-server/internal/shared/response"
)

func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "admin",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing admin authorization")

		claims := GetUserFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if claims.Role != auth.RoleAdmin {
			logger.Warn("Non-admin pilot attempted to access admin endpoint",
				"pilot", claims.Pilot,
				"role", claims.Role)
			response.Error(w, r, logger, errors.Forbidden("admin access required"))
			return
		}

		logger.Debug("Admin authorization successful", "pilot", claims.Pilot)

		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.Require(AdminMiddleware(next))
}
