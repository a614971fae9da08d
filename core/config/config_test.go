package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "key-1")
	t.Setenv("REDIS_URL", "")
	t.Setenv("VALKEY_URL", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("CACHE_FILE", "")
	t.Setenv("APP_STORAGE_DIR", "")
	t.Setenv("GEMINI_MODELS", "")
	t.Setenv("PIPELINE_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, filepath.Join("storages", "notes_cache.json"), cfg.Cache.File)
	assert.Empty(t, cfg.Cache.URL)
	assert.Equal(t, []string{"gemini-flash-latest"}, cfg.AI.Models)
	assert.Equal(t, 20*time.Minute, cfg.Pipeline.Timeout)
	assert.Equal(t, 1024*1024, cfg.Pipeline.DownloadChunk)
	assert.Same(t, cfg, Global)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "alias-key")
	t.Setenv("REDIS_URL", "")
	t.Setenv("VALKEY_URL", "redis://cache:6379/0")
	t.Setenv("GEMINI_MODELS", "gemini-2.5-flash, gemini-2.5-pro ,")
	t.Setenv("PIPELINE_TIMEOUT", "90s")
	t.Setenv("DOWNLOAD_CHUNK_BYTES", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "alias-key", cfg.AI.APIKey)
	assert.Equal(t, "redis://cache:6379/0", cfg.Cache.URL)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-pro"}, cfg.AI.Models)
	assert.Equal(t, 90*time.Second, cfg.Pipeline.Timeout)
	assert.Equal(t, 1024*1024, cfg.Pipeline.DownloadChunk)
}

func TestValidate_MissingAPIKey(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestGetAllSettings_OmitsSecrets(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "super-secret")
	_, err := LoadConfig()
	require.NoError(t, err)

	for _, v := range GetAllSettings() {
		assert.NotEqual(t, "super-secret", v)
	}
}
