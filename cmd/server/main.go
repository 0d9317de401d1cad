package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salvage-server/internal/game"
	"salvage-server/internal/middleware"
	"salvage-server/internal/server"
	"salvage-server/internal/shared/config"
	"salvage-server/internal/shared/logger"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := game.NewSession(cfg.World, slog.Default())
	if err := session.Start(); err != nil {
		return fmt.Errorf("failed to start game session: %w", err)
	}
	defer session.Stop()
	go session.Run(ctx)

	mux := server.NewRoutes(ctx, cfg, session, slog.Default()).Setup()
	corsMiddleware := middleware.NewCORS(cfg.Frontend)
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsMiddleware.Middleware(rateLimiter.Middleware(mux)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Salvage server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"world_size", cfg.World.Size,
			"tick_interval", cfg.World.TickInterval,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
