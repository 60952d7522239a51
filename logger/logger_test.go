package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_InvalidLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}))
}

func TestWithComponent(t *testing.T) {
	require.NoError(t, Init(Config{Level: "debug"}))

	var buf bytes.Buffer
	SetOutput(&buf)

	l := WithComponent("camera-service")
	l.Info().Uint("camera_id", 7).Msg("camera created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "camera-service", entry["component"])
	assert.Equal(t, "camera created", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 7, entry["camera_id"])
}

func TestInit_LevelFilters(t *testing.T) {
	require.NoError(t, Init(Config{Level: "warn"}))

	var buf bytes.Buffer
	SetOutput(&buf)

	Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
