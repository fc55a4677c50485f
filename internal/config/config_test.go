package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every override so tests do not depend on the caller's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"APPSHELL_BASE_URL", "APPSHELL_REQUEST_TIMEOUT", "APPSHELL_RESOURCE_TIMEOUT",
		"APPSHELL_STORE", "APPSHELL_STORE_PATH", "APPSHELL_REDIS_URL",
		"APPSHELL_LOG_LEVEL", "APPSHELL_LOG_FORMAT", "APPSHELL_LOG_FILE", "APPSHELL_METRICS_ADDR",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout = %s, want 30s", cfg.RequestTimeout)
	}
	if cfg.ResourceTimeout != 60*time.Second {
		t.Fatalf("ResourceTimeout = %s, want 60s", cfg.ResourceTimeout)
	}
	if cfg.Store != StoreFile {
		t.Fatalf("Store = %q, want %q", cfg.Store, StoreFile)
	}
	wantStore, err := ExpandPath(defaultStorePath)
	if err != nil {
		t.Fatalf("ExpandPath(defaultStorePath) returned error: %v", err)
	}
	if cfg.StorePath != wantStore {
		t.Fatalf("StorePath = %q, want %q", cfg.StorePath, wantStore)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("log = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
base_url = "  http://10.0.0.5:9999/v1/  "
request_timeout_seconds = 5
store_path = "  ~/.appshell/settings.toml  "
log_format = "JSON"
metrics_addr = "127.0.0.1:9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:9999/v1" {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, "http://10.0.0.5:9999/v1")
	}
	if cfg.RequestTimeout != 5*time.Second || cfg.ResourceTimeout != 10*time.Second {
		t.Fatalf("timeouts = %s/%s, want 5s/10s", cfg.RequestTimeout, cfg.ResourceTimeout)
	}
	if !strings.HasPrefix(cfg.StorePath, home) {
		t.Fatalf("StorePath = %q, want it under HOME %q", cfg.StorePath, home)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("LogFormat = %q, want json", cfg.LogFormat)
	}
	if cfg.MetricsAddr != "127.0.0.1:9090" {
		t.Fatalf("MetricsAddr = %q", cfg.MetricsAddr)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
base_url = "https://file.example.com"
request_timeout_seconds = 5
store = "file"
`)
	t.Setenv("APPSHELL_BASE_URL", "https://env.example.com")
	t.Setenv("APPSHELL_REQUEST_TIMEOUT", "1.5")
	t.Setenv("APPSHELL_RESOURCE_TIMEOUT", "20")
	t.Setenv("APPSHELL_STORE", "redis")
	t.Setenv("APPSHELL_REDIS_URL", "redis://localhost:6379/2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 1500*time.Millisecond {
		t.Fatalf("RequestTimeout = %s, want 1.5s", cfg.RequestTimeout)
	}
	if cfg.ResourceTimeout != 20*time.Second {
		t.Fatalf("ResourceTimeout = %s, want 20s", cfg.ResourceTimeout)
	}
	if cfg.Store != StoreRedis || cfg.RedisURL != "redis://localhost:6379/2" {
		t.Fatalf("store = %q %q", cfg.Store, cfg.RedisURL)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `base_url = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"relative base url", map[string]string{"APPSHELL_BASE_URL": "api.example.com"}, "absolute URL"},
		{"bad timeout", map[string]string{"APPSHELL_REQUEST_TIMEOUT": "soon"}, "APPSHELL_REQUEST_TIMEOUT"},
		{"negative timeout", map[string]string{"APPSHELL_RESOURCE_TIMEOUT": "-1"}, "APPSHELL_RESOURCE_TIMEOUT"},
		{"resource shorter than request", map[string]string{"APPSHELL_REQUEST_TIMEOUT": "10", "APPSHELL_RESOURCE_TIMEOUT": "5"}, "must not be shorter"},
		{"unknown store", map[string]string{"APPSHELL_STORE": "sqlite"}, "unknown store"},
		{"redis without url", map[string]string{"APPSHELL_STORE": "redis"}, "redis_url is required"},
		{"unknown log format", map[string]string{"APPSHELL_LOG_FORMAT": "xml"}, "unknown log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("HOME", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
