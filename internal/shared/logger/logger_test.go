package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"salvage-server/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LoggingConfig{Level: "info", JSONFormat: true})

	log.Debug("hidden")
	log.Info("Sector generated", "component", "sector_generator", "resources", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Sector generated", record["msg"])
	assert.Equal(t, "sector_generator", record["component"])
	assert.EqualValues(t, 3, record["resources"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LoggingConfig{Level: "warn"})

	log.Info("hidden")
	log.Warn("Rate limit exceeded")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `msg="Rate limit exceeded"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	assert.Equal(t, slog.LevelDebug, parseLogLevel("verbose"))
}

func TestInitRequiresConfig(t *testing.T) {
	saved := config.GlobalConfig
	t.Cleanup(func() { config.GlobalConfig = saved })

	config.GlobalConfig = nil
	assert.Panics(t, Init)
}
