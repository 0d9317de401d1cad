package handlers

import (
	"net/http"
	"time"

	"salvage-server/internal/game"
	"salvage-server/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Session   string `json:"session"`
	Tick      uint64 `json:"tick"`
}

type HealthHandler struct {
	session *game.Session
}

func NewHealthHandler(session *game.Session) *HealthHandler {
	return &HealthHandler{session: session}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionStatus := "stopped"
	if h.session.Started() {
		sessionStatus = "running"
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Session:   sessionStatus,
		Tick:      h.session.TickCount(),
	}

	response.Success(w, http.StatusOK, resp)
}
