package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLevel("debug"))
	assert.Equal(t, LogLevelInfo, ParseLevel("INFO"))
	assert.Equal(t, LogLevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LogLevelError, ParseLevel("Error"))
	assert.Equal(t, LogLevelInfo, ParseLevel("verbose"))
}

func TestSentinelLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LogLevelDebug, Format: "json", Output: &buf})

	logger.WithComponent("scheduler").WithSession("sess-1").Info("timer armed", "timer_id", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "timer armed", entry["msg"])
	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "sess-1", entry["session_id"])
	assert.Equal(t, float64(3), entry["timer_id"])
}

func TestSentinelLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LogLevelWarn, Format: "text", Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestWithScopingDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&Config{Level: LogLevelInfo, Format: "text", Output: &buf})
	child := parent.WithComponent("router").WithContext("role", "MUSIC")

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "component=router")
	assert.Contains(t, lines[1], "component=router")
	assert.Contains(t, lines[1], "role=MUSIC")
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, NoOpLogger{}, OrNoOp(nil))
	l := NewDefaultSlogLogger()
	assert.Equal(t, l, OrNoOp(l))
}
