package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salvage-server/internal/entity"
	"salvage-server/internal/game"
	"salvage-server/internal/ship"
	"salvage-server/internal/shared/config"
	"salvage-server/internal/shared/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *game.Session {
	t.Helper()
	s := game.NewSession(config.WorldConfig{
		Size:            5,
		SectorSize:      1000,
		VisibleRange:    2,
		TickInterval:    time.Millisecond,
		ActivationEvery: 1,
	}, logger.Discard())
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)
	return s
}

func serve(handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestGetWorld(t *testing.T) {
	h := NewWorldHandler(newTestSession(t))

	rec := serve(h.GetWorld, http.MethodGet, "/api/world", "")
	require.Equal(t, http.StatusOK, rec.Code)
	world := decode[game.WorldInfo](t, rec)
	assert.Equal(t, 5, world.WorldSize)
	assert.Equal(t, 25, world.Stats.ActiveSectors)
	assert.Len(t, world.Sectors, 25)

	rec = serve(h.GetWorld, http.MethodDelete, "/api/world", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetResourcesFilter(t *testing.T) {
	session := newTestSession(t)
	h := NewWorldHandler(session)

	rec := serve(h.GetResources, http.MethodGet, "/api/world/resources?active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resources := decode[[]entity.Resource](t, rec)
	assert.Len(t, resources, session.World().Stats.ActiveResources)
	for _, r := range resources {
		assert.True(t, r.Active)
	}

	rec = serve(h.GetResources, http.MethodGet, "/api/world/resources?active=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h.GetObstacles, http.MethodGet, "/api/world/obstacles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	obstacles := decode[[]entity.Obstacle](t, rec)
	assert.Len(t, obstacles, session.World().Stats.Obstacles)
}

func TestMove(t *testing.T) {
	h := NewShipHandler(newTestSession(t))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{"x":`, http.StatusBadRequest},
		{"missing y", `{"x": 100}`, http.StatusBadRequest},
		{"beyond engine limit", `{"x": 0, "y": 0}`, http.StatusBadRequest},
		{"ok", `{"x": 3000, "y": 2500}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h.Move, http.MethodPost, "/api/ship/move", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := serve(h.GetShip, http.MethodGet, "/api/ship", "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[ship.Status](t, rec)
	assert.Equal(t, 3000.0, status.X)
	assert.Less(t, status.Fuel, ship.BaseFuel)
}

func TestCollect(t *testing.T) {
	h := NewShipHandler(newTestSession(t))

	rec := serve(h.Collect, http.MethodPost, "/api/ship/collect", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[game.CollectResult](t, rec)
	assert.NotNil(t, result.Collected)

	rec = serve(h.Collect, http.MethodGet, "/api/ship/collect", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpgrades(t *testing.T) {
	h := NewShipHandler(newTestSession(t))

	rec := serve(h.GetUpgrades, http.MethodGet, "/api/ship/upgrades", "")
	require.Equal(t, http.StatusOK, rec.Code)
	offers := decode[[]UpgradeOffer](t, rec)
	require.Len(t, offers, len(ship.Upgrades))
	for _, o := range offers {
		assert.Equal(t, 1.0, o.Level)
		assert.False(t, o.Affordable)
	}

	purchase := func(kind string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/ship/upgrades/"+kind, nil)
		req.SetPathValue("kind", kind)
		rec := httptest.NewRecorder()
		h.PurchaseUpgrade(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusConflict, purchase(string(ship.UpgradeSalvageRange)))
	assert.Equal(t, http.StatusBadRequest, purchase("warp_drive"))
}

func TestReset(t *testing.T) {
	session := newTestSession(t)
	session.Tick()
	h := NewWorldHandler(session)

	rec := serve(h.Reset, http.MethodPost, "/api/world/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[game.WorldInfo](t, rec).Tick)
}

func TestStream(t *testing.T) {
	session := newTestSession(t)
	h := NewStreamHandler(t.Context(), session, 5*time.Millisecond, "http://localhost:3000")

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		resp.Body.Close()
	})

	var first game.Snapshot
	require.NoError(t, conn.ReadJSON(&first))
	assert.Len(t, first.Active, 25)
	assert.Equal(t, 2500.0, first.Ship.X)
	assert.Len(t, first.Resources, first.Stats.ActiveResources)

	session.Tick()
	var next game.Snapshot
	require.Eventually(t, func() bool {
		return conn.ReadJSON(&next) == nil && next.Tick >= 1
	}, time.Second, time.Millisecond)
}

func TestStreamRejectsForeignOrigin(t *testing.T) {
	h := NewStreamHandler(t.Context(), newTestSession(t), time.Second, "http://localhost:3000")
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStreamEndsWhenServerStops(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	h := NewStreamHandler(ctx, newTestSession(t), time.Hour, "")

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		resp.Body.Close()
	})

	var first game.Snapshot
	require.NoError(t, conn.ReadJSON(&first))

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}
