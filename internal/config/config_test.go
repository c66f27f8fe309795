package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("unit")
	require.NoError(t, err)

	assert.Equal(t, "unit", cfg.Environment)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "data/mainDB.csv", cfg.DataCfg.QuestionsFile)
	assert.Equal(t, time.Hour, cfg.SessionCfg.TTL)
	assert.True(t, cfg.SessionCfg.NarrowStakeholdersByDomain)
	assert.Equal(t, []string{"*"}, cfg.CORSCfg.AllowedOrigins)
	assert.Equal(t, uint(3), cfg.TelegramCfg.Retry.Attempts)
	assert.Equal(t, 24*time.Hour, cfg.TelegramCfg.StateTTL)
	assert.Empty(t, cfg.UnidocLicenseKey)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("SERVER_ADDR=:9090\nSESSION_TTL=30m\n"), 0o644))

	// godotenv writes straight to the process environment.
	t.Cleanup(func() { os.Unsetenv("SERVER_ADDR") })

	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("TELEGRAM_RETRY_ATTEMPTS", "5")
	t.Setenv("UNIDOC_LICENSE_KEY", "metered-key")

	cfg, err := Load("local")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, 2*time.Hour, cfg.SessionCfg.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSCfg.AllowedOrigins)
	assert.Equal(t, uint(5), cfg.TelegramCfg.Retry.Attempts)
	assert.Equal(t, "metered-key", cfg.UnidocLicenseKey)
}

func TestLoad_ValidationErrors(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("SESSION_TTL", "10s")
	t.Setenv("SESSION_MAX_QUESTION_LENGTH", "0")
	t.Setenv("TELEGRAM_RATE_LIMIT_BURST", "50")

	_, err := Load("unit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL must be between 1m and 168h")
	assert.Contains(t, err.Error(), "SESSION_MAX_QUESTION_LENGTH must be positive")
	assert.Contains(t, err.Error(), "TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20")
}

func TestLoad_BadDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXPORT_CACHE_TTL", "soon")

	_, err := Load("unit")
	assert.Error(t, err)
}

func TestGetEnvFile(t *testing.T) {
	tests := map[string]string{
		"prod":        ".env.prod",
		"production":  ".env.prod",
		"local":       ".env.local",
		"development": ".env.local",
		"staging":     ".env.staging",
	}
	for env, want := range tests {
		assert.Equal(t, want, getEnvFile(env), env)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
