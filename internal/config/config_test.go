package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3005", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
api:
  base_url: https://api.signify.example
  timeout: 10s
ui:
  theme: dark
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.signify.example", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("SIGNIFY_API_URL overrides file value", func(t *testing.T) {
		t.Setenv("SIGNIFY_API_URL", "https://staging.signify.example")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "https://staging.signify.example", cfg.API.BaseURL)
	})

	t.Run("SIGNIFY_API_TIMEOUT must parse as a duration", func(t *testing.T) {
		t.Setenv("SIGNIFY_API_TIMEOUT", "bogus")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)

		t.Setenv("SIGNIFY_API_TIMEOUT", "5s")
		cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	})

	t.Run("theme and level", func(t *testing.T) {
		t.Setenv("SIGNIFY_THEME", "light")
		t.Setenv("SIGNIFY_LOG_LEVEL", "warn")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "light", cfg.UI.Theme)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.signify.example"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API.BaseURL, loaded.API.BaseURL)
}

func TestLogFile_ExplicitWins(t *testing.T) {
	cfg := Default()
	cfg.Logging.File = "/tmp/custom.log"
	path, err := cfg.LogFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", path)
}
