// Package config loads assistant configuration from an optional YAML file
// and SENTINEL_* environment variables layered over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full engine configuration.
type Config struct {
	Assistant    AssistantConfig    `mapstructure:"assistant"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Agent        AgentConfig        `mapstructure:"agent"`
	Model        ModelConfig        `mapstructure:"model"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// AssistantConfig names the assistant and its hotword.
type AssistantConfig struct {
	Name     string `mapstructure:"name"`
	WakeWord string `mapstructure:"wake_word"`
}

// ConversationConfig bounds the dialogue loop.
type ConversationConfig struct {
	MaxTurns              int           `mapstructure:"max_turns"`
	InitialListenTimeout  time.Duration `mapstructure:"initial_listen_timeout"`
	InitialPhraseLimit    time.Duration `mapstructure:"initial_phrase_limit"`
	FollowUpListenTimeout time.Duration `mapstructure:"follow_up_listen_timeout"`
	FollowUpPhraseLimit   time.Duration `mapstructure:"follow_up_phrase_limit"`
}

// AgentConfig bounds agent execution.
type AgentConfig struct {
	MaxIterations int `mapstructure:"max_iterations"`
}

// ModelConfig selects and tunes the planning model. APIKey may stay empty;
// the provider SDKs fall back to their usual environment variables.
type ModelConfig struct {
	Provider    string  `mapstructure:"provider"` // anthropic, openai, mock
	Name        string  `mapstructure:"name"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int64   `mapstructure:"max_tokens"`
	APIKey      string  `mapstructure:"api_key"`
}

// LoggingConfig tunes log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Name:     "Sentinel",
			WakeWord: "sentinel",
		},
		Conversation: ConversationConfig{
			MaxTurns:              5,
			InitialListenTimeout:  5 * time.Second,
			InitialPhraseLimit:    10 * time.Second,
			FollowUpListenTimeout: 10 * time.Second,
			FollowUpPhraseLimit:   15 * time.Second,
		},
		Agent: AgentConfig{
			MaxIterations: 6,
		},
		Model: ModelConfig{
			Provider:    "anthropic",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9464",
		},
	}
}

// Load reads sentinel.yaml from the working directory or ~/.sentinel, then
// applies SENTINEL_* environment overrides. A missing file is fine; a broken
// one is not.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("sentinel")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".sentinel"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFrom reads configuration from an explicit file path.
func LoadFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("SENTINEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment overrides only apply to keys viper knows about, so every
	// default is registered explicitly.
	d := Default()
	v.SetDefault("assistant.name", d.Assistant.Name)
	v.SetDefault("assistant.wake_word", d.Assistant.WakeWord)
	v.SetDefault("conversation.max_turns", d.Conversation.MaxTurns)
	v.SetDefault("conversation.initial_listen_timeout", d.Conversation.InitialListenTimeout)
	v.SetDefault("conversation.initial_phrase_limit", d.Conversation.InitialPhraseLimit)
	v.SetDefault("conversation.follow_up_listen_timeout", d.Conversation.FollowUpListenTimeout)
	v.SetDefault("conversation.follow_up_phrase_limit", d.Conversation.FollowUpPhraseLimit)
	v.SetDefault("agent.max_iterations", d.Agent.MaxIterations)
	v.SetDefault("model.provider", d.Model.Provider)
	v.SetDefault("model.name", d.Model.Name)
	v.SetDefault("model.temperature", d.Model.Temperature)
	v.SetDefault("model.max_tokens", d.Model.MaxTokens)
	v.SetDefault("model.api_key", d.Model.APIKey)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.address", d.Metrics.Address)

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
