package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/praveenr14083/studygen/internal/content"
	"github.com/praveenr14083/studygen/internal/llm"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "STUDYGEN"

// ErrNoProvider is returned by LLMProvider when no provider is configured
// and no API key can be discovered.
var ErrNoProvider = errors.New("no LLM provider configured: set STUDYGEN_LLM_PROVIDER and STUDYGEN_LLM_API_KEY, " +
	"export a provider key such as GROQ_API_KEY, or use STUDYGEN_LLM_PROVIDER=mock for offline mode")

func setDefaults(v *viper.Viper) {
	gen := content.DefaultConfig()
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", llmDefaults.Timeout)

	v.SetDefault("generation.temperature", gen.Temperature)
	v.SetDefault("generation.max_tokens", gen.MaxTokens)
	v.SetDefault("generation.quiz_max_tokens", gen.QuizMaxTokens)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("db.path", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_secret", "")
}

// Load reads configuration. When path is empty, studygen.yaml is looked up
// in the working directory and in $XDG_CONFIG_HOME/studygen; a missing file
// is not an error. Environment variables (STUDYGEN_LLM_PROVIDER,
// STUDYGEN_SERVER_ADDR, ...) take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("studygen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "studygen"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "studygen"), nil
}

// LLMProvider resolves the provider settings. Provider-specific variables
// (STUDYGEN_GROQ_API_KEY, ...) are read first, the generic llm.* keys
// override them, and when no provider is named the well-known API key
// variables are probed.
func (c *Config) LLMProvider() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	c.applyLLM(&cfg)

	if c.LLM.Provider == "" && cfg.Validate() != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return llm.Config{}, ErrNoProvider
		}
		cfg = discovered
		c.applyLLM(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return llm.Config{}, err
	}
	return cfg, nil
}

// applyLLM copies the generic llm.* settings into the selected provider.
func (c *Config) applyLLM(cfg *llm.Config) {
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	switch cfg.Provider {
	case llm.ProviderAnthropic:
		set(&cfg.Anthropic.APIKey, c.LLM.APIKey)
		set(&cfg.Anthropic.Model, c.LLM.Model)
	case llm.ProviderOpenAI:
		set(&cfg.OpenAI.APIKey, c.LLM.APIKey)
		set(&cfg.OpenAI.Model, c.LLM.Model)
		set(&cfg.OpenAI.BaseURL, c.LLM.BaseURL)
	case llm.ProviderGemini:
		set(&cfg.Gemini.APIKey, c.LLM.APIKey)
		set(&cfg.Gemini.Model, c.LLM.Model)
	case llm.ProviderGroq:
		set(&cfg.Groq.APIKey, c.LLM.APIKey)
		set(&cfg.Groq.Model, c.LLM.Model)
		set(&cfg.Groq.BaseURL, c.LLM.BaseURL)
	case llm.ProviderOpenRouter:
		set(&cfg.OpenRouter.APIKey, c.LLM.APIKey)
		set(&cfg.OpenRouter.Model, c.LLM.Model)
		set(&cfg.OpenRouter.BaseURL, c.LLM.BaseURL)
	}
}
