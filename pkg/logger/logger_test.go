package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("skipped %d", 1)
	log.Warn("kept %s", "warn")
	log.Error("kept %s", "error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept warn", entry["message"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "debug")
	require.NoError(t, err)

	log.With("component", "calendar").Info("loaded %s", "2025-03")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "calendar", entry["component"])
	assert.Equal(t, "loaded 2025-03", entry["message"])
}

func TestLogger_InvalidLevel(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}
