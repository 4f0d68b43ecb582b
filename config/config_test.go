package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.Gemini.Model)
	assert.Equal(t, 3, cfg.Gemini.MaxAttempts)
	assert.Equal(t, "#ffffff", cfg.Processing.ChromaColor)
	assert.Equal(t, 30, cfg.Processing.ChromaTol)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t, 10, cfg.Database.MaxOpen)
	assert.Equal(t, 2, cfg.Database.MaxIdle)
	assert.Equal(t, 36000, cfg.Export.MaxFrames)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "editor")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "captions")
	t.Setenv("CHROMA_TOLERANCE", "12")
	t.Setenv("EXPORT_WORKERS", "8")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "editor:secret@tcp(db:3307)/captions?charset=utf8mb4&parseTime=True&loc=Local", cfg.GetDSN())
	assert.Equal(t, 12, cfg.Processing.ChromaTol)
	assert.Equal(t, 8, cfg.Export.Workers)
	assert.Equal(t, 4, cfg.Database.MaxOpen)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("GEMINI_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "invalid GEMINI_TIMEOUT")
}
