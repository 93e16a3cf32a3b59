package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestFromContext_FallsBackToGlobal verifies the global logger is returned for bare contexts.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers checks that names and fields travel with the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "lifecycle")
	ctx = WithKV(ctx, "alarm_id", "a1")

	InfoKV(ctx, "Alarm triggered", "phase", "TRIGGERING")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "lifecycle", entries[0].LoggerName)
	require.Equal(t, "Alarm triggered", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "a1", fields["alarm_id"])
	require.Equal(t, "TRIGGERING", fields["phase"])
}

// TestLevelHelpers checks every helper writes at its own level.
func TestLevelHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	Debug(ctx, "debug")
	DebugKV(ctx, "debug kv", "k", 1)
	Info(ctx, "info")
	InfoKV(ctx, "info kv", "k", 2)
	Warn(ctx, "warn")
	WarnKV(ctx, "warn kv", "k", 3)
	ErrorKV(ctx, "error kv", "k", 4)

	levels := make([]zapcore.Level, 0, logs.Len())
	for _, entry := range logs.All() {
		levels = append(levels, entry.Level)
	}

	require.Equal(t, []zapcore.Level{
		zapcore.DebugLevel, zapcore.DebugLevel,
		zapcore.InfoLevel, zapcore.InfoLevel,
		zapcore.WarnLevel, zapcore.WarnLevel,
		zapcore.ErrorLevel,
	}, levels)
}
