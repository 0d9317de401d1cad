package handlers

import (
	"log/slog"
	"net/http"

	"salvage-server/internal/auth"
	"salvage-server/internal/shared/config"
	"salvage-server/internal/shared/cookies"
	"salvage-server/internal/shared/errors"
	"salvage-server/internal/shared/response"
)

type SessionResponse struct {
	Pilot string `json:"pilot"`
	Role  string `json:"role"`
}

// SessionHandler moves a valid bearer token into the auth cookie, so browser
// clients can open the world stream without custom headers.
type SessionHandler struct {
	cfg *config.Config
}

func NewSessionHandler(cfg *config.Config) *SessionHandler {
	return &SessionHandler{cfg: cfg}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "auth_session", "remote_addr", r.RemoteAddr)

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	token, ok := auth.BearerToken(r)
	if !ok {
		response.Error(w, r, logger, errors.Unauthorized("bearer token required"))
		return
	}

	claims, err := auth.ValidateJWT(h.cfg.Auth, token)
	if err != nil {
		response.Error(w, r, logger, errors.Unauthorized("invalid token"))
		return
	}

	cookies.SetAuthCookie(w, h.cfg, token)
	logger.Info("Session cookie issued", "pilot", claims.Pilot)

	response.Success(w, http.StatusOK, SessionResponse{Pilot: claims.Pilot, Role: claims.Role})
}

type LogoutHandler struct {
	cfg *config.Config
}

func NewLogoutHandler(cfg *config.Config) *LogoutHandler {
	return &LogoutHandler{cfg: cfg}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "logout", "remote_addr", r.RemoteAddr)
	logger.Debug("Logout requested")

	cookies.ClearAuthCookie(w, h.cfg)

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("Logged out")); err != nil {
		logger.Error("Failed to write logout response", "error", err)
	}
}
