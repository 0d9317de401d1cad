package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"salvage-server/internal/game"

	"github.com/gorilla/websocket"
)

const streamWriteWait = 5 * time.Second

// StreamHandler pushes a world snapshot to each websocket subscriber on a
// fixed interval. Client messages are read and discarded. Every stream ends
// once ctx is cancelled, since server shutdown does not close hijacked
// connections.
type StreamHandler struct {
	ctx      context.Context
	session  *game.Session
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewStreamHandler(ctx context.Context, session *game.Session, interval time.Duration, allowedOrigin string) *StreamHandler {
	return &StreamHandler{
		ctx:      ctx,
		session:  session,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r, allowedOrigin)
			},
		},
	}
}

func originAllowed(r *http.Request, allowedOrigin string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == allowedOrigin {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "world_stream", "remote_addr", r.RemoteAddr)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	logger.Debug("Stream subscriber connected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func() error {
		if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
			return err
		}
		return conn.WriteJSON(h.session.Snapshot())
	}

	if err := send(); err != nil {
		logger.Debug("Initial snapshot failed", "error", err)
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			logger.Debug("Stream subscriber disconnected")
			return
		case <-h.ctx.Done():
			logger.Debug("Stream closed by server shutdown")
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(streamWriteWait))
			return
		case <-ticker.C:
			if err := send(); err != nil {
				logger.Debug("Snapshot write failed", "error", err)
				return
			}
		}
	}
}
