package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"salvage-server/internal/game"
	"salvage-server/internal/ship"
	"salvage-server/internal/shared/errors"
	"salvage-server/internal/shared/response"
)

type MoveRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type ShipHandler struct {
	session *game.Session
}

func NewShipHandler(session *game.Session) *ShipHandler {
	return &ShipHandler{session: session}
}

func (h *ShipHandler) GetShip(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_ship")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	status, err := h.session.Ship()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, status)
}

func (h *ShipHandler) Move(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "move_ship")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req MoveRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}
	if req.X == nil || req.Y == nil {
		response.Error(w, r, logger, errors.Validation("x and y are required"))
		return
	}

	status, err := h.session.MoveShip(*req.X, *req.Y)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, status)
}

func (h *ShipHandler) Collect(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "collect")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	result, err := h.session.Collect()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}

func (h *ShipHandler) PurchaseUpgrade(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "purchase_upgrade")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	kind := r.PathValue("kind")
	if kind == "" {
		response.Error(w, r, logger, errors.Validation("upgrade kind is required"))
		return
	}

	status, err := h.session.PurchaseUpgrade(ship.Upgrade(kind))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, status)
}

type UpgradeOffer struct {
	Kind       ship.Upgrade `json:"kind"`
	Level      float64      `json:"level"`
	Cost       ship.Cost    `json:"cost"`
	Affordable bool         `json:"affordable"`
}

func (h *ShipHandler) GetUpgrades(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_upgrades")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	status, err := h.session.Ship()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	offers := make([]UpgradeOffer, 0, len(ship.Upgrades))
	for _, kind := range ship.Upgrades {
		cost, _ := ship.CostOf(kind)
		offers = append(offers, UpgradeOffer{
			Kind:       kind,
			Level:      status.Upgrades[kind],
			Cost:       cost,
			Affordable: status.Holdings.Metal >= cost.Metal && status.Holdings.Crystal >= cost.Crystal,
		})
	}

	response.Success(w, http.StatusOK, offers)
}
