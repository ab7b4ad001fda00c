// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for optional settings.
const (
	DefaultPort  = 8080
	DefaultModel = "gemini-2.5-flash"
)

// ConfigurationError reports a missing or invalid required setting. It is
// fatal: the service cannot make provider calls without it, so there is no
// point retrying per-request.
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Message)
	}
	return fmt.Sprintf("configuration error: %s is required", e.Setting)
}

// Config holds the settings the service needs at startup.
type Config struct {
	Port   int
	APIKey string
	Model  string
}

// Load reads configuration from the environment. GEMINI_API_KEY is required;
// PORT and LLM_MODEL fall back to defaults.
func Load() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, &ConfigurationError{Setting: "GEMINI_API_KEY"}
	}

	cfg := &Config{
		Port:   DefaultPort,
		APIKey: apiKey,
		Model:  DefaultModel,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return nil, &ConfigurationError{Setting: "PORT", Message: fmt.Sprintf("invalid value %q", v)}
		}
		cfg.Port = port
	}

	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Model = v
	}

	return cfg, nil
}
