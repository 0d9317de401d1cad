package server

import (
	"context"
	"log/slog"
	"net/http"

	authHandlers "salvage-server/internal/auth/handlers"
	"salvage-server/internal/game"
	gameHandlers "salvage-server/internal/game/handlers"
	"salvage-server/internal/middleware"
	serverHandlers "salvage-server/internal/server/handlers"
	"salvage-server/internal/shared/config"
)

type Routes struct {
	ctx     context.Context
	cfg     *config.Config
	session *game.Session
	logger  *slog.Logger
}

// NewRoutes builds the route table. Long-lived handlers such as the world
// stream stop when ctx is cancelled.
func NewRoutes(ctx context.Context, cfg *config.Config, session *game.Session, logger *slog.Logger) *Routes {
	return &Routes{
		ctx:     ctx,
		cfg:     cfg,
		session: session,
		logger:  logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()
	authenticator := middleware.NewAuthenticator(r.cfg.Auth)

	healthHandler := serverHandlers.NewHealthHandler(r.session)
	worldHandler := gameHandlers.NewWorldHandler(r.session)
	shipHandler := gameHandlers.NewShipHandler(r.session)
	streamHandler := gameHandlers.NewStreamHandler(r.ctx, r.session, r.cfg.Stream.Interval, r.cfg.Frontend.URL)
	sessionHandler := authHandlers.NewSessionHandler(r.cfg)
	logoutHandler := authHandlers.NewLogoutHandler(r.cfg)
	meHandler := authHandlers.NewMeHandler()

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/world", worldHandler.GetWorld)
	mux.HandleFunc("/api/world/resources", worldHandler.GetResources)
	mux.HandleFunc("/api/world/obstacles", worldHandler.GetObstacles)
	mux.HandleFunc("/api/world/sectors/{x}/{y}", worldHandler.GetSector)
	mux.HandleFunc("/api/ship", shipHandler.GetShip)
	mux.HandleFunc("/api/ship/upgrades", shipHandler.GetUpgrades)
	mux.Handle("/ws/world", streamHandler)

	// Protected endpoints (authenticated pilots)
	mux.Handle("/api/pilots/me", authenticator.Require(meHandler))
	mux.Handle("/api/ship/move", authenticator.Require(http.HandlerFunc(shipHandler.Move)))
	mux.Handle("/api/ship/collect", authenticator.Require(http.HandlerFunc(shipHandler.Collect)))
	mux.Handle("/api/ship/upgrades/{kind}", authenticator.Require(http.HandlerFunc(shipHandler.PurchaseUpgrade)))

	// Admin-only endpoints
	mux.Handle("/api/world/reset", authenticator.RequireAdmin(http.HandlerFunc(worldHandler.Reset)))

	// Cookie session endpoints
	mux.Handle("/auth/session", sessionHandler)
	mux.Handle("/auth/logout", logoutHandler)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/world", "/api/world/resources", "/api/world/obstacles", "/api/world/sectors/{x}/{y}", "/api/ship", "/api/ship/upgrades", "/ws/world"},
		"protected_endpoints", []string{"/api/pilots/me", "/api/ship/move", "/api/ship/collect", "/api/ship/upgrades/{kind}"},
		"admin_endpoints", []string{"/api/world/reset"},
		"auth_endpoints", []string{"/auth/session", "/auth/logout"},
	)

	return mux
}
