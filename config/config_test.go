package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Sentinel", cfg.Assistant.Name)
	assert.Equal(t, 5, cfg.Conversation.MaxTurns)
	assert.Equal(t, 5*time.Second, cfg.Conversation.InitialListenTimeout)
	assert.Equal(t, 15*time.Second, cfg.Conversation.FollowUpPhraseLimit)
	assert.Equal(t, 6, cfg.Agent.MaxIterations)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.InDelta(t, 0.7, cfg.Model.Temperature, 0.001)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentinel.yaml")

	raw := `
assistant:
  name: Jarvis
conversation:
  max_turns: 3
  follow_up_listen_timeout: 20s
model:
  provider: openai
  name: gpt-4o-mini
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "Jarvis", cfg.Assistant.Name)
	assert.Equal(t, 3, cfg.Conversation.MaxTurns)
	assert.Equal(t, 20*time.Second, cfg.Conversation.FollowUpListenTimeout)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.True(t, cfg.Metrics.Enabled)

	// ---
	// Untouched keys keep their defaults.

	assert.Equal(t, 5*time.Second, cfg.Conversation.InitialListenTimeout)
	assert.Equal(t, 6, cfg.Agent.MaxIterations)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SENTINEL_CONVERSATION_MAX_TURNS", "2")
	t.Setenv("SENTINEL_MODEL_PROVIDER", "mock")

	dir := t.TempDir()
	path := filepath.Join(dir, "sentinel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assistant:\n  name: Jarvis\n"), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Conversation.MaxTurns)
	assert.Equal(t, "mock", cfg.Model.Provider)
	assert.Equal(t, "Jarvis", cfg.Assistant.Name)
}

func TestLoadFromBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentinel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml {{"), 0o600))

	_, err := LoadFrom(path)

	assert.Error(t, err)
}
