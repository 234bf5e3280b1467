package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for mutation in tests.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "qotd-service",
			Version:     "1.0.0",
			Environment: "test",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  DefaultMaxRequestSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Cache: CacheConfig{
			Driver: CacheDriverUpstash,
			Upstash: UpstashConfig{
				URL:   "https://example.upstash.io",
				Token: "secret",
			},
			KeyPrefix: "quote:",
			ProbeKey:  "qotd:health",
		},
		Provider: ProviderConfig{
			BaseURL: "https://zenquotes.io/api",
			Name:    "zenquotes",
			Timeout: 15 * time.Second,
		},
		Client: ClientConfig{
			Timeout: 15 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing app name",
			mutate:  func(c *Config) { c.App.Name = "" },
			wantErr: "app.name is required",
		},
		{
			name:    "invalid environment",
			mutate:  func(c *Config) { c.App.Environment = "staging" },
			wantErr: "app.environment must be one of",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be at most 65535",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level must be one of",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format must be one of",
		},
		{
			name:    "invalid cache driver",
			mutate:  func(c *Config) { c.Cache.Driver = "memcached" },
			wantErr: "cache.driver must be one of",
		},
		{
			name:    "missing provider base URL",
			mutate:  func(c *Config) { c.Provider.BaseURL = "" },
			wantErr: "provider.base_url is required",
		},
		{
			name:    "provider base URL not a URL",
			mutate:  func(c *Config) { c.Provider.BaseURL = "not-a-url" },
			wantErr: "provider.base_url must be a valid URL",
		},
		{
			name:    "empty CORS allow list",
			mutate:  func(c *Config) { c.CORS.AllowOrigins = nil },
			wantErr: "cors.allow_origins is required",
		},
		{
			name:    "retry attempts out of range",
			mutate:  func(c *Config) { c.Client.Retry.MaxAttempts = 50 },
			wantErr: "client.retry.max_attempts must be at most 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_UpstashCredentialsRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing URL", func(c *Config) { c.Cache.Upstash.URL = "" }},
		{"missing token", func(c *Config) { c.Cache.Upstash.Token = "" }},
		{"missing both", func(c *Config) { c.Cache.Upstash = UpstashConfig{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cache.upstash")
		})
	}
}

func TestValidate_RedisDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Cache = CacheConfig{
		Driver: CacheDriverRedis,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		KeyPrefix: "quote:",
		ProbeKey:  "qotd:health",
	}

	require.NoError(t, cfg.Validate())

	// Upstash credentials are not needed for the redis driver.
	cfg.Cache.Upstash = UpstashConfig{}
	assert.NoError(t, cfg.Validate())

	cfg.Cache.Redis.Addr = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis.addr is required")
}

func TestValidate_LogFileRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Log.File = LogFileConfig{
		Enabled:   true,
		Path:      "",
		MaxSizeMB: 10,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.file.path")
}

func TestValidate_TelemetryRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry = TelemetryConfig{
		Enabled:      true,
		Endpoint:     "",
		ServiceName:  "qotd-service",
		SamplingRate: 1.0,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry.endpoint")
}
