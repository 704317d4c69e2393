package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newGormObserver(t *testing.T, level zapcore.Level) (*GormLogger, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(level)
	gormLevel := gormlogger.Info
	switch level {
	case zapcore.WarnLevel:
		gormLevel = gormlogger.Warn
	case zapcore.ErrorLevel:
		gormLevel = gormlogger.Error
	}
	return NewGormLogger(zap.New(core), gormLevel, 200*time.Millisecond), recorded
}

func traceQuery(rows int64) func() (string, int64) {
	return func() (string, int64) {
		return "SELECT * FROM listings WHERE status = ?", rows
	}
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newGormObserver(t, zapcore.InfoLevel)

	quieter := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.level)
	clone, ok := quieter.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.level)
	assert.Equal(t, gl.slowThreshold, clone.slowThreshold)
}

func TestGormLogger_LevelGates(t *testing.T) {
	t.Run("info formats through", func(t *testing.T) {
		gl, recorded := newGormObserver(t, zapcore.InfoLevel)
		gl.Info(context.Background(), "migrating %s", "listings")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "migrating listings", logs[0].Message)
	})

	t.Run("silent suppresses everything", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Silent, 200*time.Millisecond)

		gl.Info(context.Background(), "ignored")
		gl.Trace(context.Background(), time.Now(), traceQuery(1), nil)

		assert.Empty(t, recorded.All())
	})
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failed query logs the error", func(t *testing.T) {
		gl, recorded := newGormObserver(t, zapcore.ErrorLevel)

		gl.Trace(context.Background(), time.Now(), traceQuery(0), errors.New("connection reset"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "query failed", logs[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("record not found is never logged", func(t *testing.T) {
		gl, recorded := newGormObserver(t, zapcore.ErrorLevel)

		gl.Trace(context.Background(), time.Now(), traceQuery(0), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("slow query warns with the configured threshold", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, time.Nanosecond)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), traceQuery(10), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "slow query", logs[0].Message)
		assert.Equal(t, time.Nanosecond, logs[0].ContextMap()["threshold"])
	})

	t.Run("zero threshold disables the slow-query check", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Info, 0)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), traceQuery(10), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "query", logs[0].Message)
	})

	t.Run("normal query logs at debug", func(t *testing.T) {
		gl, recorded := newGormObserver(t, zapcore.DebugLevel)

		gl.Trace(context.Background(), time.Now(), traceQuery(5), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "query", logs[0].Message)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
	})

	t.Run("request and account identifiers correlate query logs", func(t *testing.T) {
		gl, recorded := newGormObserver(t, zapcore.DebugLevel)

		ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
		ctx = context.WithValue(ctx, AccountIDKey, "acc-7")

		gl.Trace(ctx, time.Now(), traceQuery(1), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.Equal(t, "acc-7", fields["account_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}

func TestGormLoggerImplementsInterface(t *testing.T) {
	var _ gormlogger.Interface = NewGormLogger(zap.NewNop(), gormlogger.Info, 0)
}
