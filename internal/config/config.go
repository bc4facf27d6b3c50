package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/schedule"
)

// Config captures everything pantry needs to reach the admin backend.
type Config struct {
	APIURL            string
	CatalogPrefix     string
	Timeout           time.Duration
	Cooldown          time.Duration
	RequestsPerSecond float64
	RequestBurst      int
	Refresh           time.Duration
	AutoRefresh       bool
	PageSize          int
	LogFile           string
	LogLevel          string
}

const (
	defaultConfigPath    = "~/.config/pantry/config.toml"
	defaultAPIURL        = "http://127.0.0.1:8000/v1"
	defaultCatalogPrefix = "/fridge2fork/v1"
	defaultLogFile       = "~/.local/state/pantry/pantry.log"
	defaultLogLevel      = "info"
	defaultTimeout       = 10 * time.Second
	defaultCooldown      = 3 * time.Second
	defaultRPS           = 10
	defaultBurst         = 20
	defaultPageSize      = 20
)

// Environment variables that override the config file.
const (
	EnvAPIURL   = "PANTRY_API_URL"
	EnvLogLevel = "PANTRY_LOG_LEVEL"
	EnvLogFile  = "PANTRY_LOG_FILE"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:            defaultAPIURL,
		CatalogPrefix:     defaultCatalogPrefix,
		Timeout:           defaultTimeout,
		Cooldown:          defaultCooldown,
		RequestsPerSecond: defaultRPS,
		RequestBurst:      defaultBurst,
		Refresh:           schedule.DefaultInterval,
		AutoRefresh:       true,
		PageSize:          defaultPageSize,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
	}
}

// Load parses the config file, falling back to defaults when missing, then
// applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := parse(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string   `toml:"api_url"`
		CatalogPrefix     string   `toml:"catalog_prefix"`
		TimeoutSeconds    int      `toml:"timeout_seconds"`
		CooldownMS        int      `toml:"cooldown_ms"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
		RequestBurst      int      `toml:"request_burst"`
		RefreshSeconds    int      `toml:"refresh_seconds"`
		AutoRefresh       *bool    `toml:"auto_refresh"`
		PageSize          int      `toml:"page_size"`
		LogFile           string   `toml:"log_file"`
		LogLevel          string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.CatalogPrefix); v != "" {
		cfg.CatalogPrefix = v
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.CooldownMS > 0 {
		cfg.Cooldown = time.Duration(raw.CooldownMS) * time.Millisecond
	}
	if raw.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}
	if raw.RequestBurst > 0 {
		cfg.RequestBurst = raw.RequestBurst
	}
	if raw.RefreshSeconds != 0 {
		cfg.Refresh = time.Duration(raw.RefreshSeconds) * time.Second
	}
	if raw.AutoRefresh != nil {
		cfg.AutoRefresh = *raw.AutoRefresh
	}
	if raw.PageSize != 0 {
		cfg.PageSize = raw.PageSize
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.LogFile = mustExpand(v)
	}
}

// Validate checks bounds that the rest of the program relies on.
func (c Config) Validate() error {
	if err := schedule.ValidateInterval(c.Refresh); err != nil {
		return fmt.Errorf("refresh_seconds: %w", err)
	}
	if c.PageSize < 1 || c.PageSize > api.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", api.MaxPageSize, c.PageSize)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0, got %s", strconv.FormatFloat(c.RequestsPerSecond, 'f', -1, 64))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// LoadDotEnv loads environment variables from a .env file. An explicit path
// must exist; otherwise ./.env and ~/.config/pantry/.env are tried and
// silently skipped when absent. Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if p := strings.TrimSpace(path); p != "" {
		expanded, err := expandPath(p)
		if err != nil {
			return err
		}
		if err := godotenv.Load(expanded); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		return nil
	}
	for _, candidate := range []string{".env", "~/.config/pantry/.env"} {
		expanded, err := expandPath(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(expanded); err != nil {
			continue
		}
		if err := godotenv.Load(expanded); err != nil {
			return fmt.Errorf("load env file %s: %w", expanded, err)
		}
		return nil
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
