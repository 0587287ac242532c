// Package logging provides structured logging with optional Sentry delivery.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds logging configuration.
type Config struct {
	Level     slog.Level
	SentryDSN string // empty disables Sentry
	Version   string
	LogFile   string // empty logs to stderr
}

// Logger wraps slog.Logger with Sentry delivery on error records.
type Logger struct {
	*slog.Logger
	sentryEnabled bool
	logFile       *os.File
}

var defaultLogger *Logger

// Init initializes the global logger.
func Init(cfg Config) error {
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     cfg.SentryDSN,
			Release: cfg.Version,
		})
		if err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		sentryEnabled = true
	}

	var output io.Writer = os.Stderr
	var logFile *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		output = f
		logFile = f
	}

	handler := &sentryHandler{
		Handler:       slog.NewTextHandler(output, &slog.HandlerOptions{Level: cfg.Level}),
		sentryEnabled: sentryEnabled,
	}

	defaultLogger = &Logger{
		Logger:        slog.New(handler),
		sentryEnabled: sentryEnabled,
		logFile:       logFile,
	}
	slog.SetDefault(defaultLogger.Logger)
	return nil
}

// ParseLevel maps a settings string to a slog level, defaulting to warn.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Flush drains buffered Sentry events and closes the log file. Call before
// shutdown.
func Flush(timeout time.Duration) {
	if defaultLogger == nil {
		return
	}
	if defaultLogger.sentryEnabled {
		sentry.Flush(timeout)
	}
	if defaultLogger.logFile != nil {
		defaultLogger.logFile.Sync()
		defaultLogger.logFile.Close()
	}
}

// Default returns the default logger, or a bare slog logger before Init.
func Default() *Logger {
	if defaultLogger == nil {
		return &Logger{Logger: slog.Default()}
	}
	return defaultLogger
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Default().Logger.With(args...)
}

// sentryHandler forwards error-level records to Sentry after logging them.
type sentryHandler struct {
	slog.Handler
	sentryEnabled bool
}

func (h *sentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.Handler.Handle(ctx, r); err != nil {
		return err
	}
	if h.sentryEnabled && r.Level >= slog.LevelError {
		event := sentry.NewEvent()
		event.Level = sentry.LevelError
		event.Message = r.Message
		event.Timestamp = r.Time
		r.Attrs(func(a slog.Attr) bool {
			event.Extra[a.Key] = a.Value.Any()
			return true
		})
		sentry.CaptureEvent(event)
	}
	return nil
}

func (h *sentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sentryHandler{Handler: h.Handler.WithAttrs(attrs), sentryEnabled: h.sentryEnabled}
}

func (h *sentryHandler) WithGroup(name string) slog.Handler {
	return &sentryHandler{Handler: h.Handler.WithGroup(name), sentryEnabled: h.sentryEnabled}
}
