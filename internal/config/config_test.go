package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("LLM_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "GEMINI_API_KEY", cerr.Setting)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	for _, port := range []string{"abc", "-1", "0"} {
		t.Setenv("PORT", port)
		_, err := Load()
		var cerr *ConfigurationError
		require.ErrorAs(t, err, &cerr, "port %q", port)
		assert.Equal(t, "PORT", cerr.Setting)
	}
}
