package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"salvage-server/internal/game"
	"salvage-server/internal/shared/errors"
	"salvage-server/internal/shared/response"
)

type WorldHandler struct {
	session *game.Session
}

func NewWorldHandler(session *game.Session) *WorldHandler {
	return &WorldHandler{session: session}
}

func (h *WorldHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_world")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.session.World())
}

func (h *WorldHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_resources")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	activeOnly, err := activeFilter(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, h.session.Resources(activeOnly))
}

func (h *WorldHandler) GetObstacles(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_obstacles")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	activeOnly, err := activeFilter(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, h.session.Obstacles(activeOnly))
}

func (h *WorldHandler) GetSector(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_sector")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	gridX, err := strconv.Atoi(r.PathValue("x"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid sector x coordinate", err))
		return
	}
	gridY, err := strconv.Atoi(r.PathValue("y"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid sector y coordinate", err))
		return
	}

	detail, err := h.session.Sector(gridX, gridY)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, detail)
}

func (h *WorldHandler) Reset(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "reset_world")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if err := h.session.Reset(); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, h.session.World())
}

// activeFilter reads the optional ?active= query parameter.
func activeFilter(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("active")
	if raw == "" {
		return false, nil
	}
	active, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.WrapValidation("invalid active filter", err)
	}
	return active, nil
}
