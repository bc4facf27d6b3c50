package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pantry/internal/config"
	"github.com/five82/pantry/internal/schedule"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvAPIURL, config.EnvLogLevel, config.EnvLogFile} {
		t.Setenv(key, "")
	}
	return home
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSettings_PrefsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFile(t, dir, "config.toml", "refresh_seconds = 60\nauto_refresh = true\n")
	prefsPath := writeFile(t, dir, "prefs.toml", "theme = \"Slate\"\nrefresh_seconds = 10\nauto_refresh = false\n")

	s, err := loadSettings(Options{ConfigPath: cfgPath, PrefsPath: prefsPath})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, s.refresh)
	assert.False(t, s.auto)
	assert.Equal(t, "Slate", s.prefs.Theme)

	s, err = loadSettings(Options{ConfigPath: cfgPath, PrefsPath: prefsPath, PollEvery: 20})
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, s.refresh, "poll flag wins")
}

func TestLoadSettings_ConfigWhenNoPrefs(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFile(t, dir, "config.toml", "refresh_seconds = 60\nauto_refresh = false\n")

	s, err := loadSettings(Options{ConfigPath: cfgPath, PrefsPath: filepath.Join(dir, "missing.toml")})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.refresh)
	assert.False(t, s.auto)
}

func TestLoadSettings_RejectsOutOfRangePoll(t *testing.T) {
	dir := isolate(t)
	_, err := loadSettings(Options{ConfigPath: filepath.Join(dir, "none.toml"), PollEvery: 2})
	require.ErrorIs(t, err, schedule.ErrIntervalOutOfRange)
}

func TestLoadSettings_MissingEnvFileFails(t *testing.T) {
	dir := isolate(t)
	_, err := loadSettings(Options{EnvFile: filepath.Join(dir, "nope.env")})
	require.Error(t, err)
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"/health":                 `{"status":"healthy","version":"2.1.0","environment":"test"}`,
		"/system/info":            `{"status":"healthy","uptime":"4h","server":{"hostname":"db1"}}`,
		"/system/database/tables": `{"tables":[{"name":"recipes","row_count":12,"status":"active"}]}`,
		"/system/resources":       `{"cpu":{"usage_percent":12.5,"cores":4}}`,
		"/system/api/endpoints":   `[{"path":"/health","method":"GET","status":"healthy"}]`,
		"/system/activities":      `{"activities":[],"total":0}`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck_HealthyBackend(t *testing.T) {
	dir := isolate(t)
	server := newBackend(t)
	cfgPath := writeFile(t, dir, "config.toml", fmt.Sprintf("api_url = %q\ntimeout_seconds = 2\n", server.URL))

	var out, logs bytes.Buffer
	degraded, err := Check(context.Background(), Options{ConfigPath: cfgPath}, &out, &logs)
	require.NoError(t, err)
	assert.False(t, degraded, out.String())
	assert.Contains(t, out.String(), server.URL)
	assert.Contains(t, out.String(), "online")
	assert.Contains(t, out.String(), "1/1 up")
	assert.NotContains(t, out.String(), "fallback")
}

func TestCheck_UnreachableBackendIsDegraded(t *testing.T) {
	dir := isolate(t)
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	cfgPath := writeFile(t, dir, "config.toml", fmt.Sprintf("api_url = %q\ntimeout_seconds = 1\n", url))

	var out, logs bytes.Buffer
	degraded, err := Check(context.Background(), Options{ConfigPath: cfgPath}, &out, &logs)
	require.NoError(t, err, "an unreachable backend is a report, not an error")
	assert.True(t, degraded)
	assert.Contains(t, out.String(), "offline")
	assert.Contains(t, out.String(), "fallback")
}

func TestLogs_FiltersConfiguredLogFile(t *testing.T) {
	dir := isolate(t)
	logPath := writeFile(t, dir, "pantry.log",
		"10:00:00 DBG request component=transport\n10:00:01 WRN backend unreachable component=reach\n")
	cfgPath := writeFile(t, dir, "config.toml", fmt.Sprintf("log_file = %q\n", logPath))

	var out bytes.Buffer
	require.NoError(t, Logs(Options{ConfigPath: cfgPath}, LogOptions{Level: "warn"}, &out))
	assert.Equal(t, "10:00:01 WRN backend unreachable component=reach\n", out.String())

	require.Error(t, Logs(Options{ConfigPath: cfgPath}, LogOptions{Level: "loud"}, &out))
}
