package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("WARN"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("nonsense"))
}

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(zerolog.InfoLevel, &buf, false)

	Info("hello %s", "world")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "production output must be JSON lines")
	assert.Equal(t, "hello world", entry["message"])
}

func TestInitConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(zerolog.InfoLevel, &buf, true)

	Info("hello")

	// The console writer emits human-readable lines, not JSON.
	var entry map[string]interface{}
	assert.Error(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, buf.String(), "hello")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(zerolog.WarnLevel, &buf, false)

	Info("suppressed")
	assert.Empty(t, buf.String())

	Warning("kept")
	assert.Contains(t, buf.String(), "kept")
}
