package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := context.Background()

	l.With("component", "session").Warn(ctx, "probe failed", "attempt", 1)
	l.Debug(ctx, "dbg")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "probe failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "session", fields["component"])
	assert.EqualValues(t, 1, fields["attempt"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestNewZapLoggerFromLevel_RejectsUnknownLevel(t *testing.T) {
	_, err := NewZapLoggerFromLevel("chatty")
	require.Error(t, err)
}
