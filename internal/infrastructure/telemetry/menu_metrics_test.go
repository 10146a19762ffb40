package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMenuMetrics(t *testing.T) (*telemetry.MenuMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewMenuMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestNewMenuMetrics_NilMeter(t *testing.T) {
	m, err := telemetry.NewMenuMetrics(nil)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestMenuMetrics_NilReceiver(t *testing.T) {
	var m *telemetry.MenuMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordMenuView(ctx, uuid.New())
		m.RecordImageUpload(ctx, telemetry.ImageKindCategory, 10, nil)
		m.RecordImageDelete(ctx, telemetry.ImageKindCategory, nil)
		m.RecordQRGenerated(ctx, nil)
		m.RecordPosterRender(ctx, time.Second, nil)
	})
}

func TestMenuMetrics_Record(t *testing.T) {
	m, reader := newTestMenuMetrics(t)
	ctx := context.Background()
	bizID := uuid.New()

	m.RecordMenuView(ctx, bizID)
	m.RecordMenuView(ctx, bizID)
	m.RecordImageUpload(ctx, telemetry.ImageKindMenuItem, 2048, nil)
	m.RecordImageUpload(ctx, telemetry.ImageKindMenuItem, 0, errors.New("too large"))
	m.RecordImageDelete(ctx, telemetry.ImageKindCategory, nil)
	m.RecordQRGenerated(ctx, nil)
	m.RecordPosterRender(ctx, 300*time.Millisecond, nil)

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), sumFor(t, metrics["qrmenu_public_menu_views_total"],
		telemetry.AttrBusinessID.String(bizID.String())))

	uploads := metrics["qrmenu_image_uploads_total"]
	assert.Equal(t, int64(1), sumFor(t, uploads,
		telemetry.AttrImageKind.String(telemetry.ImageKindMenuItem), telemetry.AttrResult.String("success")))
	assert.Equal(t, int64(1), sumFor(t, uploads,
		telemetry.AttrImageKind.String(telemetry.ImageKindMenuItem), telemetry.AttrResult.String("failure")))

	assert.Equal(t, int64(1), sumFor(t, metrics["qrmenu_image_deletes_total"],
		telemetry.AttrImageKind.String(telemetry.ImageKindCategory), telemetry.AttrResult.String("success")))
	assert.Equal(t, int64(1), sumFor(t, metrics["qrmenu_qr_generated_total"],
		telemetry.AttrResult.String("success")))

	size, ok := metrics["qrmenu_image_upload_size_bytes"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, size.DataPoints, 1)
	assert.Equal(t, uint64(1), size.DataPoints[0].Count)
	assert.Equal(t, 2048.0, size.DataPoints[0].Sum)

	render, ok := metrics["qrmenu_poster_render_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, render.DataPoints, 1)
	assert.InDelta(t, 0.3, render.DataPoints[0].Sum, 0.0001)
}
