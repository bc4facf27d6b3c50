package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/config"
	"github.com/five82/pantry/internal/logging"
	"github.com/five82/pantry/internal/prefs"
	"github.com/five82/pantry/internal/reach"
	"github.com/five82/pantry/internal/schedule"
	"github.com/five82/pantry/internal/ui"
)

// Version is stamped at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

// Options configure the pantry application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pantry/prefs.toml
	EnvFile    string // empty tries ./.env and ~/.config/pantry/.env
	PollEvery  int    // seconds; zero defers to prefs and config
}

type settings struct {
	cfg     config.Config
	prefs   prefs.Prefs
	refresh time.Duration
	auto    bool
}

// Run boots the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := loadSettings(opts)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(s.cfg, nil)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	client, err := newClient(s.cfg, log)
	if err != nil {
		return err
	}
	log.Info().
		Str("api", client.BaseURL()).
		Dur("refresh", s.refresh).
		Bool("auto", s.auto).
		Str("version", Version).
		Msg("starting pantry")

	err = ui.Run(ui.Options{
		Context:      ctx,
		Service:      client,
		Logger:       log,
		Refresh:      s.refresh,
		AutoRefresh:  s.auto,
		PageSize:     s.cfg.PageSize,
		FetchTimeout: s.cfg.Timeout,
		Prefs:        s.prefs,
		PrefsPath:    opts.PrefsPath,
	})
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled)) && ctx.Err() != nil {
		log.Info().Msg("shutdown requested")
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadSettings resolves config and prefs. Prefs override config for the
// refresh choice and an explicit poll interval overrides both.
func loadSettings(opts Options) (settings, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return settings{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}
	p := prefs.Load(opts.PrefsPath)

	s := settings{cfg: cfg, prefs: p, refresh: cfg.Refresh, auto: cfg.AutoRefresh}
	if d, ok := p.Refresh(); ok {
		s.refresh = d
	}
	if p.AutoRefresh != nil {
		s.auto = *p.AutoRefresh
	}
	if opts.PollEvery != 0 {
		d := time.Duration(opts.PollEvery) * time.Second
		if err := schedule.ValidateInterval(d); err != nil {
			return settings{}, fmt.Errorf("poll: %w", err)
		}
		s.refresh = d
	}
	return s, nil
}

// newLogger writes to the configured log file, or to stderr when stderr is
// given, since the TUI owns the terminal.
func newLogger(cfg config.Config, stderr io.Writer) (zerolog.Logger, func() error, error) {
	opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if stderr != nil {
		opts = logging.Options{Level: cfg.LogLevel, Stderr: stderr}
	}
	log, closer, err := logging.New(opts)
	if err != nil {
		return zerolog.Nop(), closer, fmt.Errorf("init logging: %w", err)
	}
	return log, closer, nil
}

func newClient(cfg config.Config, log zerolog.Logger) (*api.Client, error) {
	gate := reach.NewGate(reach.Options{
		Cooldown: cfg.Cooldown,
		Online:   reach.OnlineFor(cfg.APIURL),
		Logger:   log,
	})
	client, err := api.NewClient(api.Options{
		BaseURL:           cfg.APIURL,
		CatalogPrefix:     cfg.CatalogPrefix,
		Timeout:           cfg.Timeout,
		UserAgent:         "pantry/" + Version,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
		Gate:              gate,
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return client, nil
}
