// Package logging builds the zerolog logger shared by the rest of pantry.
//
// The TUI owns the terminal, so interactive runs write to a log file. Headless
// commands such as `pantry check` log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05"

// Options select where logs go and how much is written.
type Options struct {
	// Level is a zerolog level name. Empty means info.
	Level string
	// File is the log file path. Empty writes to Stderr.
	File string
	// Stderr is used when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// New returns a configured logger and a function that releases its output.
func New(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(name))
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var (
		out     io.Writer
		closer  = noop
		noColor bool
	)
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		out, closer, noColor = file, file.Close, true
	} else {
		out = opts.Stderr
		if out == nil {
			out = os.Stderr
		}
	}

	return newLogger(out, level, noColor), closer, nil
}

func newLogger(out io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
		NoColor:    noColor,
	}
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func noop() error { return nil }
