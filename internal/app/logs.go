package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/pantry/internal/logtail"
)

// LogOptions select which log lines Logs prints.
type LogOptions struct {
	Lines     int
	Level     string
	Component string
}

// Logs prints the tail of the configured log file to w.
func Logs(opts Options, lo LogOptions, w io.Writer) error {
	s, err := loadSettings(opts)
	if err != nil {
		return err
	}
	minLevel := zerolog.TraceLevel
	if name := strings.TrimSpace(lo.Level); name != "" {
		if minLevel, err = zerolog.ParseLevel(strings.ToLower(name)); err != nil {
			return fmt.Errorf("parse level: %w", err)
		}
	}
	lines, err := logtail.Read(s.cfg.LogFile, logtail.Options{
		Lines:     lo.Lines,
		MinLevel:  minLevel,
		Component: lo.Component,
	})
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write logs: %w", err)
		}
	}
	return nil
}
