package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for file output.
const (
	maxLogFileSizeMB  = 100
	maxLogFileBackups = 5
	maxLogFileAgeDays = 28
)

type contextKey struct{}

// LoggerConfig holds the settings the logger needs. It is filled from the
// server section of the application configuration.
type LoggerConfig struct {
	// Level is one of debug, info, warn or error (case-insensitive).
	Level string
	// File, when set, sends output to a size-rotated file instead of stdout.
	File string
	// Env is attached to every record as the "env" attribute when set.
	Env string
}

// Setup initializes the application's logging system. It creates a structured
// JSON logger with the configured level, sets it as the slog default and
// returns it. An unknown level falls back to info with a warning. It fails
// when the log file cannot be created or opened for appending.
func Setup(cfg LoggerConfig) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	out, err := output(cfg.File)
	if err != nil {
		return nil, err
	}

	l := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	if cfg.Env != "" {
		l = l.With(slog.String("env", cfg.Env))
	}

	slog.SetDefault(l)
	return l, nil
}

// ParseLevel converts a level name to a slog.Level.
// It reports false and returns slog.LevelInfo for unknown names.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// output returns stdout, or a rotating writer for file. lumberjack opens the
// file lazily, so it is probed here to surface a bad path at start-up.
func output(file string) (io.Writer, error) {
	if file == "" {
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close log file: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxLogFileSizeMB,
		MaxBackups: maxLogFileBackups,
		MaxAge:     maxLogFileAgeDays,
		Compress:   true,
	}, nil
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or def when there is none.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	if def == nil {
		return slog.Default()
	}
	return def
}
