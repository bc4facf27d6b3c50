package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePrefs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if _, ok := p.Refresh(); ok {
		t.Fatalf("Refresh reported set on defaults")
	}
	if p.AutoRefresh != nil {
		t.Fatalf("AutoRefresh = %v, want nil", *p.AutoRefresh)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "pantry")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if p := Load(""); p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestLoad_RefreshChoices(t *testing.T) {
	p := Load(writePrefs(t, "theme = \"Kanagawa\"\nrefresh_seconds = 60\nauto_refresh = false\n"))

	d, ok := p.Refresh()
	if !ok || d != time.Minute {
		t.Fatalf("Refresh = %v, %v; want 1m, true", d, ok)
	}
	if p.AutoRefresh == nil || *p.AutoRefresh {
		t.Fatalf("AutoRefresh = %v, want explicit false", p.AutoRefresh)
	}
}

func TestLoad_OutOfRangeRefreshIsDropped(t *testing.T) {
	p := Load(writePrefs(t, "refresh_seconds = 2\n"))
	if p.RefreshSeconds != 0 {
		t.Fatalf("RefreshSeconds = %d, want 0", p.RefreshSeconds)
	}
}

func TestSave_RoundTripsThroughNewDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")
	auto := true

	if err := Save(path, Prefs{Theme: "Slate", RefreshSeconds: 120, AutoRefresh: &auto}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := Load(path)
	if loaded.Theme != "Slate" || loaded.RefreshSeconds != 120 {
		t.Fatalf("loaded = %+v, want Slate/120", loaded)
	}
	if loaded.AutoRefresh == nil || !*loaded.AutoRefresh {
		t.Fatalf("AutoRefresh = %v, want true", loaded.AutoRefresh)
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	if p := Load(writePrefs(t, "theme = \"\"\n")); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	p := Load(writePrefs(t, "not valid toml {{{\n"))
	if p.Theme != defaultTheme || p.RefreshSeconds != 0 {
		t.Fatalf("prefs = %+v, want defaults", p)
	}
}
