package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/animus/anima/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears variables for the test's duration. t.Setenv alone leaves
// the key present with an empty value, which would stop godotenv from
// applying file values.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"LETTA_SERVER_URL=https://letta.example.com:8283\n"+
			"LETTA_API_TOKEN=tok-123\n"+
			"DISPLAY_NAME=Ada\n"+
			"SHOW_REASONING=true\n"+
			"VIBE_INTERVAL_SECONDS=60\n",
	), 0o600))

	unsetenv(t, "LETTA_SERVER_URL", "LETTA_API_TOKEN", "DISPLAY_NAME",
		"SHOW_REASONING", "VIBE_INTERVAL_SECONDS")

	cfg := config.Load(envFile)
	assert.Equal(t, "https://letta.example.com:8283", cfg.ServerURL)
	assert.Equal(t, "tok-123", cfg.APIToken)
	assert.Equal(t, "Ada", cfg.DisplayName)
	assert.True(t, cfg.ShowReasoning)
	assert.Equal(t, float64(60), cfg.VibeInterval.Seconds())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DISPLAY_NAME=FromFile\n"), 0o600))

	t.Setenv("DISPLAY_NAME", "FromEnv")
	cfg := config.Load(envFile)
	assert.Equal(t, "FromEnv", cfg.DisplayName)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	unsetenv(t, "LETTA_SERVER_URL", "LETTA_API_TOKEN", "DISPLAY_NAME")

	cfg := config.Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Equal(t, "User", cfg.DisplayName)
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsPlaceholderURL(t *testing.T) {
	t.Setenv("LETTA_SERVER_URL", "https://your-letta-server.com:8283")
	t.Setenv("LETTA_API_TOKEN", "tok")

	cfg := config.Load(filepath.Join(t.TempDir(), "nope.env"))
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LETTA_SERVER_URL")
}

func TestLoadThemes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "themes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"midnight:\n  accent: \"#7aa2f7\"\n  error: \"#f7768e\"\n",
	), 0o600))

	themes, err := config.LoadThemes(path)
	require.NoError(t, err)
	require.Contains(t, themes, "midnight")

	// Omitted fields inherit defaults.
	mid := themes["midnight"]
	assert.Equal(t, "#7aa2f7", mid.Accent)
	assert.Equal(t, "#f7768e", mid.Error)
	assert.Equal(t, "8", mid.Muted)
}

func TestLoadThemes_BadYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "themes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o600))

	_, err := config.LoadThemes(path)
	assert.Error(t, err)
}
