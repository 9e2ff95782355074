package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the controller.
type Config struct {
	App      AppConfig      `yaml:"app"`
	HTTP     HTTPConfig     `yaml:"http"`
	Advisor  AdvisorConfig  `yaml:"advisor"`
	Geo      GeoConfig      `yaml:"geo"`
	Forecast ForecastConfig `yaml:"forecast"`
}

// AppConfig selects the environment flavour and log verbosity.
type AppConfig struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"logLevel"`
}

// HTTPConfig controls the trigger/view surface.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig throttles the submit and refresh triggers per client.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AdvisorConfig points at the remote recommendation/forecast endpoints.
type AdvisorConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// GeoConfig selects and tunes the geolocation provider.
type GeoConfig struct {
	// Provider is one of "none", "static" or "ipapi".
	Provider           string        `yaml:"provider"`
	Latitude           float64       `yaml:"latitude"`
	Longitude          float64       `yaml:"longitude"`
	IPAPIURL           string        `yaml:"ipapiUrl"`
	EnableHighAccuracy bool          `yaml:"enableHighAccuracy"`
	Timeout            time.Duration `yaml:"timeout"`
	MaximumAge         time.Duration `yaml:"maximumAge"`
	Store              StoreConfig   `yaml:"store"`
}

// StoreConfig selects where the last position fix is kept.
type StoreConfig struct {
	// Kind is "memory" or "valkey".
	Kind   string `yaml:"kind"`
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// ForecastConfig controls the auto-forecast flow.
type ForecastConfig struct {
	AutoStart bool `yaml:"autoStart"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		cfg.App.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.App.LogLevel = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("ADVISOR_BASE_URL"); v != "" {
		cfg.Advisor.BaseURL = v
	}
	if v := os.Getenv("ADVISOR_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Advisor.Timeout = parsed
		}
	}
	if v := os.Getenv("GEO_PROVIDER"); v != "" {
		cfg.Geo.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("GEO_LATITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Geo.Latitude = parsed
		}
	}
	if v := os.Getenv("GEO_LONGITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Geo.Longitude = parsed
		}
	}
	if v := os.Getenv("GEO_IPAPI_URL"); v != "" {
		cfg.Geo.IPAPIURL = v
	}
	if v := os.Getenv("GEO_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geo.Timeout = parsed
		}
	}
	if v := os.Getenv("GEO_MAXIMUM_AGE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geo.MaximumAge = parsed
		}
	}
	if v := os.Getenv("GEO_STORE"); v != "" {
		cfg.Geo.Store.Kind = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("GEO_VALKEY_ADDR"); v != "" {
		cfg.Geo.Store.Addr = v
	}
	if v := os.Getenv("FORECAST_AUTO_START"); v != "" {
		cfg.Forecast.AutoStart = v == "1" || strings.EqualFold(v, "true")
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Env:      "dev",
			LogLevel: "info",
		},
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		Advisor: AdvisorConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 15 * time.Second,
		},
		Geo: GeoConfig{
			Provider:           "none",
			IPAPIURL:           "http://ip-api.com/json",
			EnableHighAccuracy: false,
			Timeout:            10 * time.Second,
			MaximumAge:         30 * time.Minute,
			Store: StoreConfig{
				Kind:   "memory",
				Prefix: "outfit",
			},
		},
		Forecast: ForecastConfig{
			AutoStart: true,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	switch c.App.Env {
	case "dev", "prod":
	default:
		return fmt.Errorf("app.env %q invalid (allowed: dev, prod)", c.App.Env)
	}
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled && (c.HTTP.RateLimit.RequestsPerMinute <= 0 || c.HTTP.RateLimit.Burst <= 0) {
		return errors.New("http.rateLimit requires positive requestsPerMinute and burst when enabled")
	}
	if strings.TrimSpace(c.Advisor.BaseURL) == "" {
		return errors.New("advisor.baseUrl cannot be empty")
	}
	if c.Advisor.Timeout <= 0 {
		return errors.New("advisor.timeout must be positive")
	}
	switch c.Geo.Provider {
	case "none":
	case "static":
		if c.Geo.Latitude < -90 || c.Geo.Latitude > 90 {
			return errors.New("geo.latitude must be within [-90, 90]")
		}
		if c.Geo.Longitude < -180 || c.Geo.Longitude > 180 {
			return errors.New("geo.longitude must be within [-180, 180]")
		}
	case "ipapi":
		if strings.TrimSpace(c.Geo.IPAPIURL) == "" {
			return errors.New("geo.ipapiUrl cannot be empty when provider is ipapi")
		}
	default:
		return fmt.Errorf("geo.provider %q invalid (allowed: none, static, ipapi)", c.Geo.Provider)
	}
	if c.Geo.Timeout <= 0 {
		return errors.New("geo.timeout must be positive")
	}
	if c.Geo.MaximumAge < 0 {
		return errors.New("geo.maximumAge cannot be negative")
	}
	switch c.Geo.Store.Kind {
	case "memory":
	case "valkey":
		if strings.TrimSpace(c.Geo.Store.Addr) == "" {
			return errors.New("geo.store.addr cannot be empty when store is valkey")
		}
	default:
		return fmt.Errorf("geo.store.kind %q invalid (allowed: memory, valkey)", c.Geo.Store.Kind)
	}
	return nil
}
