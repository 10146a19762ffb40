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

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog, _ := newObservedGormLogger(gormlogger.Info)

	clone, ok := gormLog.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
}

func TestGormLogger_Info(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Info)

	gormLog.Info(context.Background(), "migrated %d tables", 4)

	require.Len(t, recorded.All(), 1)
	assert.Equal(t, "migrated 4 tables", recorded.All()[0].Message)
}

func TestGormLogger_Silent(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Silent)

	gormLog.Info(context.Background(), "ignored")
	gormLog.Error(context.Background(), "ignored")
	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT * FROM categories", 3 }

	t.Run("logs errors with business scope", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn)
		ctx, _ := WithBusinessID(context.Background(), zap.NewNop(), "biz-9")

		gormLog.Trace(ctx, time.Now(), sqlFn, errors.New("disk I/O error"))

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Error", entries[0].Message)
		assert.Equal(t, "biz-9", entries[0].ContextMap()["business_id"])
	})

	t.Run("ignores record not found", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Info)

		gormLog.Trace(context.Background(), time.Now(), sqlFn, gormlogger.ErrRecordNotFound)

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Query", entries[0].Message)
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "Slow SQL", entries[0].Message)
	})

	t.Run("debug logs queries at info level", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Info, WithSlowThreshold(0))

		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
