package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/martin/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8000, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 30, cfg.Server.WriteTimeout)
		require.Equal(t, "https://api.x.ai/v1", cfg.Grok.BaseURL)
		require.Equal(t, "grok-beta", cfg.Grok.Model)
		require.Equal(t, 30, cfg.Grok.Timeout)
		require.Empty(t, cfg.Grok.APIKey)
		require.Empty(t, cfg.Redis.Addr)
		require.Equal(t, 300, cfg.Analysis.CacheTTL)
		require.Equal(t, "structured", cfg.Analysis.ReplySchema)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("GROK_API_KEY", "xai-test-key")
		t.Setenv("GROK_MODEL", "grok-2")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("ANALYSIS_CACHE_TTL", "60")
		t.Setenv("ANALYSIS_REPLY_SCHEMA", "rewrite")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, "xai-test-key", cfg.Grok.APIKey)
		require.Equal(t, "grok-2", cfg.Grok.Model)
		require.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.Equal(t, 60, cfg.Analysis.CacheTTL)
		require.Equal(t, "rewrite", cfg.Analysis.ReplySchema)
	})

	t.Run("should split CORS origins on commas", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "chrome-extension://abc,https://martin.dev")

		cfg := config.Load()

		require.Equal(t,
			[]string{"chrome-extension://abc", "https://martin.dev"},
			cfg.CORS.AllowedOrigins)
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	os.Clearenv()
	cfg := config.Load()

	deps := config.ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Server, deps.ServerConfig)
	require.Same(t, &cfg.Grok, deps.Config)
	require.Same(t, &cfg.Analysis, deps.AnalysisConfig)
}
