// Package config handles application configuration from defaults, an optional
// YAML file and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file search
const PathEnvVar = "CONFIG_PATH"

// DefaultPaths are searched in order when PathEnvVar is unset
var DefaultPaths = []string{"config.yaml", "config.yml"}

// Config holds all application configuration.
type Config struct {
	Port        string        `koanf:"port" validate:"required,numeric"`
	Env         string        `koanf:"env" validate:"oneof=development production test"`
	CacheTTL    time.Duration `koanf:"cache_ttl" validate:"gt=0"`
	HTTPTimeout time.Duration `koanf:"http_timeout" validate:"gt=0"`

	Server    ServerConfig    `koanf:"server"`
	Fanout    FanoutConfig    `koanf:"fanout"`
	Directory DirectoryConfig `koanf:"directory"`
	Bus       ProviderConfig  `koanf:"bus"`
	Rail      ProviderConfig  `koanf:"rail"`
	Places    ProviderConfig  `koanf:"places"`
	Logging   LoggingConfig   `koanf:"logging"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// FanoutConfig bounds the provider fan-out
type FanoutConfig struct {
	Concurrency int           `koanf:"concurrency" validate:"gte=1"`
	CallTimeout time.Duration `koanf:"call_timeout" validate:"gt=0"`
}

// DirectoryConfig controls the terminal/station directory
type DirectoryConfig struct {
	File            string        `koanf:"file"`
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gte=0"`
}

// ProviderConfig describes one upstream API
type ProviderConfig struct {
	BaseURL       string  `koanf:"base_url" validate:"omitempty,url"`
	ServiceKey    string  `koanf:"service_key"`
	RatePerSecond float64 `koanf:"rate_per_second" validate:"gte=0"`
	Burst         int     `koanf:"burst" validate:"gte=0"`
}

// LoggingConfig selects log level and format
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// RateLimitConfig limits inbound requests per client IP
type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"gte=0"`
	Window   time.Duration `koanf:"window" validate:"gte=0"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Port:        "3000",
		Env:         "development",
		CacheTTL:    120 * time.Second,
		HTTPTimeout: 10 * time.Second,
		Server: ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  45 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Fanout: FanoutConfig{
			Concurrency: 16,
			CallTimeout: 8 * time.Second,
		},
		Directory: DirectoryConfig{
			RefreshInterval: 0,
		},
		Bus: ProviderConfig{
			BaseURL:       "https://apis.data.go.kr/1613000/ExpBusInfoService",
			RatePerSecond: 20,
			Burst:         10,
		},
		Rail: ProviderConfig{
			BaseURL:       "https://apis.data.go.kr/1613000/TrainInfoService",
			RatePerSecond: 20,
			Burst:         10,
		},
		Places: ProviderConfig{
			BaseURL:       "https://dapi.kakao.com/v2/local/search/keyword.json",
			RatePerSecond: 10,
			Burst:         5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
	}
}

// Load reads configuration: defaults, then a YAML file if present, then
// environment variables. A .env file in the working directory is loaded first.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envAliases keeps the flat variable names used by deployments
var envAliases = map[string]string{
	"port":                 "port",
	"env":                  "env",
	"cache_ttl":            "cache_ttl",
	"http_timeout":         "http_timeout",
	"bus_service_key":      "bus.service_key",
	"bus_api_url":          "bus.base_url",
	"rail_service_key":     "rail.service_key",
	"rail_api_url":         "rail.base_url",
	"kakao_api_key":        "places.service_key",
	"places_api_url":       "places.base_url",
	"log_level":            "logging.level",
	"log_format":           "logging.format",
	"directory_file":       "directory.file",
	"directory_refresh":    "directory.refresh_interval",
	"fanout_concurrency":   "fanout.concurrency",
	"fanout_call_timeout":  "fanout.call_timeout",
	"rate_limit_requests":  "ratelimit.requests",
	"rate_limit_window":    "ratelimit.window",
	"server_shutdown_wait": "server.shutdown_timeout",
}

// envKey maps an environment variable to a koanf path; unknown variables are
// dropped so the process environment does not leak into the config tree.
func envKey(key string) string {
	if path, ok := envAliases[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
