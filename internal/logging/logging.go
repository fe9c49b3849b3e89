// Package logging builds the zerolog logger used for diagnostics.
//
// Diagnostics go to stderr (or a log file), never to stdout, so they do not
// mix with command output or the MCP stdio stream.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	Level  string    // zerolog level name; empty means warn
	File   string    // append JSON lines here instead of Writer
	Writer io.Writer // defaults to os.Stderr
	// Console selects the human-readable console format for Writer.
	Console bool
	NoColor bool
}

// New returns a logger and a close function for any opened log file.
func New(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.WarnLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), noClose, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), noClose, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), noClose, fmt.Errorf("open log file: %w", err)
		}
		logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
		return logger, f.Close, nil
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: opts.NoColor, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), noClose, nil
}

func noClose() error { return nil }
