// Package logging builds the process-wide slog.Logger. Records go to a
// rotating logfmt file and, in verbose mode, to stderr as styled text.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/cadence/internal/config"
	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const prefix = "cadence"

// Options adjusts where New writes. Zero values select the defaults.
type Options struct {
	// Stderr receives verbose output. Defaults to os.Stderr.
	Stderr io.Writer
}

// New builds a logger from cfg. The returned closer releases the log file
// and must be called before exit.
func New(cfg config.LogConfig, opts Options) (*slog.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, nil, err
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   true,
		}
		closer = fileWriter
		handlers = append(handlers, log.NewWithOptions(fileWriter, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          prefix,
			Formatter:       log.LogfmtFormatter,
		}))
	}

	if cfg.Verbose {
		verboseLevel := level
		if verboseLevel > log.DebugLevel {
			verboseLevel = log.DebugLevel
		}
		handlers = append(handlers, log.NewWithOptions(stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			Level:           verboseLevel,
			Prefix:          prefix,
		}))
	}

	switch len(handlers) {
	case 0:
		return Discard(), closer, nil
	case 1:
		return slog.New(handlers[0]), closer, nil
	default:
		return slog.New(fanout(handlers)), closer, nil
	}
}

// Discard returns a logger that drops everything, for tests and fallbacks.
func Discard() *slog.Logger {
	return slog.New(log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
