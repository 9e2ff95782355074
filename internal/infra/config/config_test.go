package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.App.Env)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "none", cfg.Geo.Provider)
	require.Equal(t, 10*time.Second, cfg.Geo.Timeout)
	require.Equal(t, 30*time.Minute, cfg.Geo.MaximumAge)
	require.False(t, cfg.Geo.EnableHighAccuracy)
	require.Equal(t, "memory", cfg.Geo.Store.Kind)
	require.True(t, cfg.Forecast.AutoStart)
}

func TestLoadFromFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: prod
advisor:
  baseUrl: https://advisor.example.com
geo:
  provider: static
  latitude: 31.23
  longitude: 121.47
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("GEO_MAXIMUM_AGE", "5m")
	t.Setenv("FORECAST_AUTO_START", "false")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("HTTP_RATE_LIMIT_RPM", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.App.Env)
	require.Equal(t, "https://advisor.example.com", cfg.Advisor.BaseURL)
	require.Equal(t, "static", cfg.Geo.Provider)
	require.InDelta(t, 31.23, cfg.Geo.Latitude, 1e-9)
	require.Equal(t, 5*time.Minute, cfg.Geo.MaximumAge)
	require.False(t, cfg.Forecast.AutoStart)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 5, cfg.HTTP.RateLimit.RequestsPerMinute)
}

func TestLoadRejectsBadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unterminated"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "bad env", mutate: func(c *Config) { c.App.Env = "staging" }, errMsg: "app.env"},
		{name: "empty advisor", mutate: func(c *Config) { c.Advisor.BaseURL = " " }, errMsg: "advisor.baseUrl"},
		{name: "unknown provider", mutate: func(c *Config) { c.Geo.Provider = "gps" }, errMsg: "geo.provider"},
		{name: "static latitude", mutate: func(c *Config) {
			c.Geo.Provider = "static"
			c.Geo.Latitude = 91
		}, errMsg: "geo.latitude"},
		{name: "valkey without addr", mutate: func(c *Config) { c.Geo.Store.Kind = "valkey" }, errMsg: "geo.store.addr"},
		{name: "rate limit without budget", mutate: func(c *Config) { c.HTTP.RateLimit.Burst = 0 }, errMsg: "http.rateLimit"},
		{name: "zero geo timeout", mutate: func(c *Config) { c.Geo.Timeout = 0 }, errMsg: "geo.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			require.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	require.NoError(t, defaultConfig().Validate())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "APP_ENV", "LOG_LEVEL", "HTTP_ADDRESS", "HTTP_ALLOWED_ORIGINS",
		"HTTP_RATE_LIMIT_ENABLED", "HTTP_RATE_LIMIT_RPM", "HTTP_RATE_LIMIT_BURST",
		"ADVISOR_BASE_URL", "ADVISOR_TIMEOUT", "GEO_PROVIDER", "GEO_LATITUDE",
		"GEO_LONGITUDE", "GEO_IPAPI_URL", "GEO_TIMEOUT", "GEO_MAXIMUM_AGE",
		"GEO_STORE", "GEO_VALKEY_ADDR", "FORECAST_AUTO_START",
	} {
		t.Setenv(key, "")
	}
}
