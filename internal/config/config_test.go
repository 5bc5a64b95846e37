package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitDataDir(t *testing.T) {
	t.Setenv("BODYVAULT_DIR", "/tmp/custom-vault")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom-vault", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/custom-vault", "index.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join("/tmp/custom-vault", "photos"), cfg.PhotosDir())
	assert.Equal(t, filepath.Join("/tmp/custom-vault", "thumbnails"), cfg.ThumbnailsDir())
	assert.Equal(t, filepath.Join("/tmp/custom-vault", "key.salt"), cfg.SaltPath())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BODYVAULT_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 200, cfg.ThumbnailEdge)
	assert.Equal(t, "gemini-flash-latest", cfg.AIModel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BODYVAULT_DIR", t.TempDir())
	t.Setenv("BODYVAULT_LOG_LEVEL", "debug")
	t.Setenv("BODYVAULT_THUMB_EDGE", "320")
	t.Setenv("BODYVAULT_AI_URL", "http://localhost:9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 320, cfg.ThumbnailEdge)
	assert.Equal(t, "http://localhost:9999", cfg.AIBaseURL)
}
