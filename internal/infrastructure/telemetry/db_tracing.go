package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/qrmenu/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include query variables in spans; development only
	SlowQueryThresh time.Duration
	DBSystem        string
}

// DBTracingConfigFrom maps the application settings onto database tracing.
func DBTracingConfigFrom(cfg config.TelemetryConfig, driver string) DBTracingConfig {
	system := "sqlite"
	if driver == "postgres" {
		system = "postgresql"
	}
	return DBTracingConfig{
		Enabled:         cfg.Enabled && cfg.DBTraceEnabled,
		LogFullSQL:      cfg.DBLogFullSQL,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        system,
	}
}

// DBTracingPlugin registers otelgorm and marks slow or failed statements on their spans.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// Register installs the plugin on db. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()

	type registration struct {
		before func() error
		after  func() error
	}
	regs := []registration{
		{
			before: func() error {
				return cb.Create().Before("gorm:create").Register("qrmenu_otel:before_create", markQueryStart)
			},
			after: func() error {
				return cb.Create().After("gorm:create").Register("qrmenu_otel:after_create", p.annotateSpan)
			},
		},
		{
			before: func() error {
				return cb.Query().Before("gorm:query").Register("qrmenu_otel:before_query", markQueryStart)
			},
			after: func() error {
				return cb.Query().After("gorm:query").Register("qrmenu_otel:after_query", p.annotateSpan)
			},
		},
		{
			before: func() error {
				return cb.Update().Before("gorm:update").Register("qrmenu_otel:before_update", markQueryStart)
			},
			after: func() error {
				return cb.Update().After("gorm:update").Register("qrmenu_otel:after_update", p.annotateSpan)
			},
		},
		{
			before: func() error {
				return cb.Delete().Before("gorm:delete").Register("qrmenu_otel:before_delete", markQueryStart)
			},
			after: func() error {
				return cb.Delete().After("gorm:delete").Register("qrmenu_otel:after_delete", p.annotateSpan)
			},
		},
		{
			before: func() error {
				return cb.Row().Before("gorm:row").Register("qrmenu_otel:before_row", markQueryStart)
			},
			after: func() error {
				return cb.Row().After("gorm:row").Register("qrmenu_otel:after_row", p.annotateSpan)
			},
		},
		{
			before: func() error {
				return cb.Raw().Before("gorm:raw").Register("qrmenu_otel:before_raw", markQueryStart)
			},
			after: func() error {
				return cb.Raw().After("gorm:raw").Register("qrmenu_otel:after_raw", p.annotateSpan)
			},
		},
	}

	for _, r := range regs {
		if err := r.before(); err != nil {
			return err
		}
		if err := r.after(); err != nil {
			return err
		}
	}
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// annotateSpan adds rows, table, error and slow-query details to the statement span.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
