package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salvage-server/internal/auth"
	"salvage-server/internal/game"
	"salvage-server/internal/shared/config"
	"salvage-server/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		World: config.WorldConfig{
			Size:            5,
			SectorSize:      1000,
			VisibleRange:    2,
			TickInterval:    time.Millisecond,
			ActivationEvery: 1,
		},
		Stream: config.StreamConfig{Interval: 10 * time.Millisecond},
		Auth: config.AuthConfig{
			JWTSecret:       "0123456789abcdef0123456789abcdef",
			TokenExpiration: time.Hour,
		},
		Frontend: config.FrontendConfig{URL: "http://localhost:3000"},
	}
}

func newTestMux(t *testing.T) (*http.ServeMux, *config.Config) {
	t.Helper()
	cfg := testConfig()
	session := game.NewSession(cfg.World, logger.Discard())
	require.NoError(t, session.Start())
	t.Cleanup(session.Stop)
	return NewRoutes(t.Context(), cfg, session, logger.Discard()).Setup(), cfg
}

func bearer(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := auth.GenerateJWT(cfg.Auth, "vega", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealth(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "running", body["session"])
}

func TestProtectedRoutes(t *testing.T) {
	mux, cfg := newTestMux(t)

	tests := []struct {
		name   string
		path   string
		body   string
		auth   string
		status int
	}{
		{"move anonymous", "/api/ship/move", `{"x":2600,"y":2500}`, "", http.StatusUnauthorized},
		{"move pilot", "/api/ship/move", `{"x":2600,"y":2500}`, auth.RolePilot, http.StatusOK},
		{"collect pilot", "/api/ship/collect", "", auth.RolePilot, http.StatusOK},
		{"upgrade pilot", "/api/ship/upgrades/engine_power", "", auth.RolePilot, http.StatusConflict},
		{"reset pilot", "/api/world/reset", "", auth.RolePilot, http.StatusForbidden},
		{"reset admin", "/api/world/reset", "", auth.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set("Authorization", bearer(t, cfg, tt.auth))
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	mux, _ := newTestMux(t)

	for _, path := range []string{"/api/world", "/api/world/resources?active=true", "/api/world/obstacles", "/api/world/sectors/2/3", "/api/ship", "/api/ship/upgrades"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestSectorLookup(t *testing.T) {
	mux, _ := newTestMux(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/world/sectors/0/4", http.StatusOK},
		{"/api/world/sectors/5/0", http.StatusNotFound},
		{"/api/world/sectors/x/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
