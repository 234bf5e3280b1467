package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "qotd-service", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, CacheDriverUpstash, cfg.Cache.Driver)
	assert.Equal(t, "quote:", cfg.Cache.KeyPrefix)
	assert.Equal(t, "qotd:health", cfg.Cache.ProbeKey)
	assert.Equal(t, "https://zenquotes.io/api", cfg.Provider.BaseURL)
	assert.Equal(t, "zenquotes", cfg.Provider.Name)
	assert.Equal(t, DefaultClientRetryMaxAttempts, cfg.Client.Retry.MaxAttempts)
	assert.Equal(t, DefaultClientCircuitMaxFailures, cfg.Client.CircuitBreaker.MaxFailures)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

// TestLoad_WellKnownEnvVars tests the unprefixed env var overlay.
func TestLoad_WellKnownEnvVars(t *testing.T) {
	t.Setenv("UPSTASH_REDIS_REST_URL", "https://example.upstash.io")
	t.Setenv("UPSTASH_REDIS_REST_TOKEN", "secret-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.upstash.io", cfg.Cache.Upstash.URL)
	assert.Equal(t, "secret-token", cfg.Cache.Upstash.Token)
}

// TestLoad_RESTEnvVarsWinOverPlainVariants tests that when both naming
// conventions are set, the REST variants take precedence.
func TestLoad_RESTEnvVarsWinOverPlainVariants(t *testing.T) {
	t.Setenv("UPSTASH_REDIS_REST_URL", "https://rest.upstash.io")
	t.Setenv("UPSTASH_REDIS_REST_TOKEN", "rest-token")
	t.Setenv("UPSTASH_REDIS_URL", "https://plain.upstash.io")
	t.Setenv("UPSTASH_REDIS_TOKEN", "plain-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://rest.upstash.io", cfg.Cache.Upstash.URL)
	assert.Equal(t, "rest-token", cfg.Cache.Upstash.Token)
}

// TestLoad_PlainEnvVarsUsedWhenRESTUnset tests the fallback naming.
func TestLoad_PlainEnvVarsUsedWhenRESTUnset(t *testing.T) {
	t.Setenv("UPSTASH_REDIS_URL", "https://plain.upstash.io")
	t.Setenv("UPSTASH_REDIS_TOKEN", "plain-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://plain.upstash.io", cfg.Cache.Upstash.URL)
	assert.Equal(t, "plain-token", cfg.Cache.Upstash.Token)
}

// TestLoad_CORSAllowOriginsEnvVar tests the comma-separated origin list.
func TestLoad_CORSAllowOriginsEnvVar(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowOrigins)
}

// TestLoad_CORSDefault tests that CORS defaults to allowing all origins.
func TestLoad_CORSDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Client.Retry.InitialInterval)
	assert.Equal(t, 5*time.Second, cfg.Client.Retry.MaxInterval)
	assert.Equal(t, 15*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "qotd-service", cfg.App.Name)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/app.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestLoad_RedisDefaults tests the plain Redis driver defaults.
func TestLoad_RedisDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Empty(t, cfg.Cache.Redis.Password)
	assert.Equal(t, 0, cfg.Cache.Redis.DB)
}
