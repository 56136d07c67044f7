// Package config loads studygen settings from an optional YAML file and
// STUDYGEN_* environment variables.
package config

import (
	"time"

	"github.com/praveenr14083/studygen/internal/content"
)

// Config holds all application configuration.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Generation GenerationConfig `mapstructure:"generation"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Server     ServerConfig     `mapstructure:"server"`
}

// LLMConfig selects the completion provider. An empty Provider means
// "discover from well-known API key variables".
type LLMConfig struct {
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini groq openrouter mock"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// GenerationConfig holds the sampling parameters for content requests.
type GenerationConfig struct {
	Temperature   float64 `mapstructure:"temperature" validate:"gte=0,lte=1"`
	MaxTokens     int     `mapstructure:"max_tokens" validate:"gt=0"`
	QuizMaxTokens int     `mapstructure:"quiz_max_tokens" validate:"gt=0"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// DBConfig locates the SQLite event log. An empty Path uses the XDG data
// directory.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig controls `studygen serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`

	// SessionSecret signs the session cookie. When empty a random key is
	// generated at startup, so sessions do not survive a restart.
	SessionSecret string `mapstructure:"session_secret" validate:"omitempty,min=32"`
}

// Content returns the generation parameters for the content orchestrator.
func (c *Config) Content() content.Config {
	return content.Config{
		Temperature:   c.Generation.Temperature,
		MaxTokens:     c.Generation.MaxTokens,
		QuizMaxTokens: c.Generation.QuizMaxTokens,
	}
}
