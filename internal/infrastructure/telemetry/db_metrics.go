package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// PoolStats is a snapshot of the database connection pool
type PoolStats struct {
	MaxOpen   int
	InUse     int
	Idle      int
	WaitCount int64
}

// PoolStatsFunc reads the current pool statistics
type PoolStatsFunc func() (PoolStats, error)

// RegisterPoolMetrics exposes connection pool statistics as observable
// gauges read on every collection:
//   - db_pool_connections{state=in_use|idle}
//   - db_pool_connections_max
//   - db_pool_wait_total
//
// Unregister the returned registration on shutdown.
func RegisterPoolMetrics(meter metric.Meter, stats PoolStatsFunc, logger *zap.Logger) (metric.Registration, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Number of connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxConnections, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Total number of connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s, err := stats()
		if err != nil {
			logger.Debug("Skipping pool stats collection", zap.Error(err))
			return nil
		}
		o.ObserveInt64(connections, int64(s.InUse), metric.WithAttributes(attribute.String("state", "in_use")))
		o.ObserveInt64(connections, int64(s.Idle), metric.WithAttributes(attribute.String("state", "idle")))
		o.ObserveInt64(maxConnections, int64(s.MaxOpen))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, connections, maxConnections, waits)
}
