package logger_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{input: "debug", want: slog.LevelDebug, ok: true},
		{input: "INFO", want: slog.LevelInfo, ok: true},
		{input: " warn ", want: slog.LevelWarn, ok: true},
		{input: "error", want: slog.LevelError, ok: true},
		{input: "verbose", want: slog.LevelInfo, ok: false},
		{input: "", want: slog.LevelInfo, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestSetup_SetsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(logger.LoggerConfig{Level: "warn"})
	require.NoError(t, err)
	require.NotNil(t, l)

	assert.Same(t, l, slog.Default())
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(logger.LoggerConfig{Level: "loud"})
	require.NoError(t, err)

	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetup_FileOutput(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	path := filepath.Join(t.TempDir(), "task-api.log")

	l, err := logger.Setup(logger.LoggerConfig{Level: "info", File: path, Env: "testing"})
	require.NoError(t, err)

	l.Info("written to file", "task_id", 42)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
	assert.Contains(t, string(data), `"env":"testing"`)
	assert.Contains(t, string(data), `"task_id":42`)
}

func TestSetup_UnopenableLogFile(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	l, err := logger.Setup(logger.LoggerConfig{Level: "info", File: filepath.Join(blocker, "task-api.log")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "log")
	assert.Nil(t, l)
	assert.Same(t, original, slog.Default(), "default logger must be left alone on failure")
}

func TestFromContext(t *testing.T) {
	logBuf, base := logger.SetupTestLogger(t)

	t.Run("no logger in context", func(t *testing.T) {
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("logger in context", func(t *testing.T) {
		scoped := base.With("trace_id", "abc")
		ctx := logger.WithLogger(context.Background(), scoped)

		logger.FromContext(ctx).Info("scoped message")

		entries, err := logBuf.Entries()
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		last := entries[len(entries)-1]
		assert.Equal(t, "scoped message", last["msg"])
		assert.Equal(t, "abc", last["trace_id"])
	})

	t.Run("explicit default", func(t *testing.T) {
		def := slog.New(slog.NewTextHandler(os.Stderr, nil))
		assert.Same(t, def, logger.FromContextOrDefault(context.Background(), def))
	})

	t.Run("nil default", func(t *testing.T) {
		assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
	})
}
