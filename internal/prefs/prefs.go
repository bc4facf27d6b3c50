// Package prefs persists pantry user preferences.
// Preferences are stored in ~/.config/pantry/prefs.toml.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pantry/internal/schedule"
)

// Prefs holds the choices a user makes inside the TUI. RefreshSeconds and
// AutoRefresh are only set once the user changes them on the system view;
// until then the config file values apply.
type Prefs struct {
	Theme          string `toml:"theme"`
	RefreshSeconds int    `toml:"refresh_seconds,omitempty"`
	AutoRefresh    *bool  `toml:"auto_refresh,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/pantry/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns preferences with only the theme set.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Refresh returns the stored refresh interval when it is set and within the
// scheduler's bounds.
func (p Prefs) Refresh() (time.Duration, bool) {
	if p.RefreshSeconds == 0 {
		return 0, false
	}
	d := time.Duration(p.RefreshSeconds) * time.Second
	if schedule.ValidateInterval(d) != nil {
		return 0, false
	}
	return d, true
}

// Load reads preferences from the given path. Any problem reading or parsing
// the file yields defaults; preferences are never worth failing startup over.
func Load(path string) Prefs {
	prefs := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		return prefs
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Defaults()
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if _, ok := prefs.Refresh(); !ok {
		prefs.RefreshSeconds = 0
	}
	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
