package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoi/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "invoi", cfg.App.Name)
	assert.Equal(t, "https://invoi.xyz/", cfg.App.ShareBaseURL)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 400*time.Millisecond, cfg.Editor.SaveDelay)
	assert.Equal(t, 5*time.Second, cfg.Editor.SaveTimeout)
	assert.Equal(t, 32.0, cfg.Preview.Margin)
	assert.Equal(t, "./exports", cfg.Export.Dir)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("SAVE_DELAY", "1s")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, time.Second, cfg.Editor.SaveDelay)
	assert.Equal(t, "postgres://app:secret@db:5432/invoi?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SAVE_DELAY", "soon")

	_, err := config.Load()
	assert.Error(t, err)
}
