package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogate/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Extraction.MaxFiles)
	assert.Equal(t, 60*time.Second, cfg.Extraction.FileTimeout())
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Empty(t, cfg.S3.Bucket)
	assert.True(t, cfg.DB.Enabled)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIOGATE_UPSTREAM_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("FOLIOGATE_EXTRACTION_TIMEOUT_SECS", "15")
	t.Setenv("FOLIOGATE_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("FOLIOGATE_DB_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Extraction.FileTimeout())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.DB.Enabled)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9191")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9191", cfg.Server.Port)
}

func TestLoad_RejectsZeroMaxFiles(t *testing.T) {
	t.Setenv("FOLIOGATE_EXTRACTION_MAX_FILES", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestExtractionConfig_FileTimeout_Fallback(t *testing.T) {
	cfg := config.ExtractionConfig{}
	assert.Equal(t, 60*time.Second, cfg.FileTimeout())
}
