package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

// TestContextRoundtrip checks that loggers travel through a context and fall back to the global one.
func TestContextRoundtrip(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))

	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core).Sugar()

	ctx := ToContext(context.Background(), l)
	ctx = WithName(ctx, "vcs")
	ctx = WithKV(ctx, "dir", "/src")

	DebugKV(ctx, "running git", "args", "status")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "vcs", entries[0].LoggerName)
	require.Equal(t, "running git", entries[0].Message)
	require.Equal(t, "/src", entries[0].ContextMap()["dir"])
	require.Equal(t, "status", entries[0].ContextMap()["args"])
}

// TestWithLevel ensures the option drops entries below the pinned level.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core, WithLevel(zapcore.ErrorLevel)).Sugar()
	ctx := ToContext(context.Background(), l.With("k", "v"))

	Info(ctx, "dropped")
	Warnf(ctx, "dropped %d", 2)
	ErrorKV(ctx, "kept")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "kept", entries[0].Message)
}

// TestSetLevel changes the shared level reported by Level.
func TestSetLevel(t *testing.T) {
	previous := Level()
	t.Cleanup(func() { SetLevel(previous) })

	SetLevel(zapcore.DebugLevel)
	require.Equal(t, zapcore.DebugLevel, Level())
	require.True(t, Logger().Desugar().Core().Enabled(zapcore.DebugLevel))
}
