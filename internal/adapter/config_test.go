package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.API.Timeout, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.Table.PageSize)
	assert.Equal(t, 4, cfg.UI.ToastSeconds)
	assert.True(t, cfg.Cache.Persist)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	yaml := `api:
  base_url: https://api.example.com
  token: from-file
  timeout: 5s
table:
  page_size: 50
cache:
  persist: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("FLIGHTDECK_API_TOKEN", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 50, cfg.Table.PageSize)
	assert.Empty(t, cfg.CacheDir())
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("table:\n  page_size: -1\n"), 0644))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "PageSize")
}

func TestSaveToken(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg := DefaultConfig()
	cfg.Table.PageSize = 15
	require.NoError(t, SaveConfig(cfg))

	require.NoError(t, SaveToken("https://api.example.com", "secret"))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret", loaded.API.Token)
	assert.Equal(t, "https://api.example.com", loaded.API.BaseURL)
	assert.Equal(t, 15, loaded.Table.PageSize, "other settings are preserved")

	require.NoError(t, ClearToken())
	loaded, err = LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, loaded.API.Token)
	assert.Equal(t, "https://api.example.com", loaded.API.BaseURL)
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flightdeck.log")

	logger, closeLog, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello", "key", "value")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "debug", expected: "DEBUG"},
		{input: "WARNING", expected: "WARN"},
		{input: "error", expected: "ERROR"},
		{input: "bogus", expected: "INFO"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLogLevel(tc.input).String())
		})
	}
}
