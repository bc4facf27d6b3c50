package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/pantry/internal/schedule"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIURL, EnvLogLevel, EnvLogFile} {
		t.Setenv(key, "")
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
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.Refresh != schedule.DefaultInterval || !cfg.AutoRefresh {
		t.Fatalf("Refresh = %v auto=%v, want %v auto=true", cfg.Refresh, cfg.AutoRefresh, schedule.DefaultInterval)
	}
	if cfg.Cooldown != 3*time.Second {
		t.Fatalf("Cooldown = %v, want 3s", cfg.Cooldown)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
api_url = "  https://admin-api.example.com/v1  "
catalog_prefix = "/catalog"
timeout_seconds = 4
cooldown_ms = 1500
requests_per_second = 0
refresh_seconds = 60
auto_refresh = false
page_size = 50
log_file = "  ~/logs/pantry.log  "
log_level = "DEBUG"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://admin-api.example.com/v1" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.CatalogPrefix != "/catalog" {
		t.Fatalf("CatalogPrefix = %q, want /catalog", cfg.CatalogPrefix)
	}
	if cfg.Timeout != 4*time.Second || cfg.Cooldown != 1500*time.Millisecond {
		t.Fatalf("Timeout = %v Cooldown = %v, want 4s and 1.5s", cfg.Timeout, cfg.Cooldown)
	}
	if cfg.RequestsPerSecond != 0 {
		t.Fatalf("RequestsPerSecond = %v, want explicit 0 to disable limiter", cfg.RequestsPerSecond)
	}
	if cfg.Refresh != time.Minute || cfg.AutoRefresh {
		t.Fatalf("Refresh = %v auto=%v, want 1m auto=false", cfg.Refresh, cfg.AutoRefresh)
	}
	if cfg.PageSize != 50 {
		t.Fatalf("PageSize = %d, want 50", cfg.PageSize)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := writeConfig(t, `
api_url = "   "
log_level = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Setenv(EnvAPIURL, "http://10.0.0.5:9000/v1")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, `api_url = "http://file:8000/v1"`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:9000/v1" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_RejectsOutOfRangeValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cases := map[string]string{
		"refresh too low":  "refresh_seconds = 2",
		"refresh too high": "refresh_seconds = 301",
		"page size":        "page_size = 500",
		"log level":        `log_level = "loud"`,
		"bad toml":         "api_url = ",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("Load(%q) returned nil error", body)
			}
		})
	}

	_, err := Load(writeConfig(t, "refresh_seconds = 4"))
	if !errors.Is(err, schedule.ErrIntervalOutOfRange) {
		t.Fatalf("err = %v, want ErrIntervalOutOfRange", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "pantry.env")
	if err := os.WriteFile(path, []byte("PANTRY_API_URL=http://dotenv:8000/v1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// t.Setenv("", ...) above leaves the key set but empty; godotenv skips
	// keys already present, so unset it for this test.
	if err := os.Unsetenv(EnvAPIURL); err != nil {
		t.Fatalf("Unsetenv: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(EnvAPIURL) })

	if got := os.Getenv(EnvAPIURL); got != "http://dotenv:8000/v1" {
		t.Fatalf("%s = %q, want value from env file", EnvAPIURL, got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("LoadDotEnv(missing explicit path) returned nil error")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "a", "b") {
		t.Fatalf("expandPath = %q, want %q", got, filepath.Join(home, "a", "b"))
	}
	if _, err := expandPath("  "); err == nil {
		t.Fatalf("expandPath(empty) returned nil error")
	}
}
