package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp moves into an empty directory so no stray config.yaml or .env is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv(PathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Port)
	}
	if cfg.Fanout.Concurrency != 16 {
		t.Errorf("expected fanout concurrency 16, got %d", cfg.Fanout.Concurrency)
	}
	if cfg.CacheTTL != 120*time.Second {
		t.Errorf("expected cache ttl 120s, got %s", cfg.CacheTTL)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode by default")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := chdirTemp(t)

	path := filepath.Join(dir, "tripmate.yaml")
	body := []byte(`
port: "8081"
fanout:
  concurrency: 4
  call_timeout: 2s
bus:
  service_key: from-file
logging:
  format: console
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(PathEnvVar, path)
	t.Setenv("PORT", "9090")
	t.Setenv("BUS_SERVICE_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("env should override file port, got %s", cfg.Port)
	}
	if cfg.Bus.ServiceKey != "from-env" {
		t.Errorf("env should override file key, got %s", cfg.Bus.ServiceKey)
	}
	if cfg.Fanout.Concurrency != 4 {
		t.Errorf("expected concurrency from file, got %d", cfg.Fanout.Concurrency)
	}
	if cfg.Fanout.CallTimeout != 2*time.Second {
		t.Errorf("expected call timeout 2s, got %s", cfg.Fanout.CallTimeout)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("expected console format, got %s", cfg.Logging.Format)
	}
	if cfg.Rail.BaseURL == "" {
		t.Error("untouched defaults should survive the file layer")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-numeric port", func(c *Config) { c.Port = "http" }},
		{"unknown env", func(c *Config) { c.Env = "staging" }},
		{"zero concurrency", func(c *Config) { c.Fanout.Concurrency = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad base url", func(c *Config) { c.Bus.BaseURL = "not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvKeyIgnoresUnknownVariables(t *testing.T) {
	if got := envKey("HOME"); got != "" {
		t.Errorf("expected HOME to be dropped, got %q", got)
	}
	if got := envKey("KAKAO_API_KEY"); got != "places.service_key" {
		t.Errorf("expected places.service_key, got %q", got)
	}
}
