package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for raw, want := range tests {
		assert.Equal(t, want, ParseLevel(raw), "level %q", raw)
	}
}

func TestNew(t *testing.T) {
	t.Run("std backend honours the level", func(t *testing.T) {
		// When: a warn logger is built
		log := New(Config{Level: "warn", Backend: BackendStd})

		// Then: info is disabled and warn is enabled
		assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
	})

	t.Run("zap backend honours the level", func(t *testing.T) {
		// When: a debug zap logger is built
		log := New(Config{Level: "debug", Backend: BackendZap})

		// Then: debug is enabled
		assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	})
}

func TestToZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, toZapLevel(slog.LevelDebug))
	assert.Equal(t, zapcore.InfoLevel, toZapLevel(slog.LevelInfo))
	assert.Equal(t, zapcore.WarnLevel, toZapLevel(slog.LevelWarn))
	assert.Equal(t, zapcore.ErrorLevel, toZapLevel(slog.LevelError))
}
