package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestJSONLoggerWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", JSON: true, Out: &buf})

	log.Info("Grid", "rows imported", map[string]interface{}{"rows": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Grid", entry["component"])
	assert.Equal(t, "rows imported", entry["message"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", JSON: true, Out: &buf})

	log.Debug("Animation", "tick", nil)
	assert.Zero(t, buf.Len())

	log.Error("Controller", errors.New("boom"), nil)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}
