// Package config loads process configuration from the environment, with an
// optional YAML file that the environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is built once at startup and passed by reference into the pieces
// that need it; request-handling code never reads the environment.
type Config struct {
	OpenAIAPIKey  string `yaml:"openai_api_key" env:"OPENAI_API_KEY" env-description:"OpenAI API key (required)"`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"OPENAI_BASE_URL" env-description:"alternate OpenAI-compatible endpoint"`
	LogLevel      string `yaml:"log_level" env:"IMG_LOG_LEVEL" env-default:"info" env-description:"zap log level: debug, info, warn, error"`
}

// Load reads configuration from path when given, or from the environment
// alone. The API key must be present; its format is only shape-checked, never
// verified against the upstream.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("config: %w; %s", err, desc)
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("config: OPENAI_API_KEY is required")
	}
	return cfg, nil
}

// KeyLooksStandard reports whether the credential has the usual "sk-" shape.
// Advisory only: alternate endpoints may issue differently shaped keys.
func (c *Config) KeyLooksStandard() bool {
	return strings.HasPrefix(c.OpenAIAPIKey, "sk-")
}

// MaskedKey returns the credential reduced to a short prefix for logging.
func (c *Config) MaskedKey() string {
	if len(c.OpenAIAPIKey) > 5 {
		return c.OpenAIAPIKey[:5] + "***"
	}
	if c.OpenAIAPIKey == "" {
		return "?"
	}
	return "***"
}
