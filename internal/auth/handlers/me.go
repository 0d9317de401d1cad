package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"salvage-server/internal/middleware"
	"salvage-server/internal/shared/errors"
	"salvage-server/internal/shared/response"
)

type MeResponse struct {
	Pilot     string    `json:"pilot"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "me")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no pilot claims found in context"))
		return
	}

	resp := MeResponse{Pilot: claims.Pilot, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}

	response.Success(w, http.StatusOK, resp)
}
