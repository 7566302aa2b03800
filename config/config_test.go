package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrNoBaseURL)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "https://endpoint.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://endpoint.example.com", cfg.BaseURL)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Equal(t, DefaultHaystackTokens, cfg.HaystackTokens)
	assert.Zero(t, cfg.RetryAttempts)
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "https://endpoint.example.com/")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://endpoint.example.com", cfg.BaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "https://endpoint.example.com")
	t.Setenv("ARENA_MODEL", "nemotron-nano")
	t.Setenv("ARENA_TIMEOUT", "90s")
	t.Setenv("ARENA_RETRY_ATTEMPTS", "3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "nemotron-nano", cfg.Model)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.RetryAttempts)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "https://endpoint.example.com")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"base_url: https://from-file.example.com\n"+
			"model: nemotron-super\n"+
			"haystack_tokens: 100000\n"), 0o644))

	t.Setenv("ARENA_BASE_URL", "")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-file.example.com", cfg.BaseURL)
	assert.Equal(t, "nemotron-super", cfg.Model)
	assert.Equal(t, 100000, cfg.HaystackTokens)
}
