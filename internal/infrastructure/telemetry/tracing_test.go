package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory span recorder as the global provider.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "category", "create",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessID, "biz-1"),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "category.create", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())

	v, ok := attrValue(spans[0].Attributes(), telemetry.SpanAttrBusinessID)
	require.True(t, ok)
	assert.Equal(t, "biz-1", v.AsString())
}

func TestStartSpan_WithSpanKind(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "poster.render",
		telemetry.WithSpanKind(trace.SpanKindClient),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
}

func TestSetAttributes(t *testing.T) {
	sr := setupTestTracer(t)

	id := uuid.New()
	_, span := telemetry.StartSpan(context.Background(), "menu_item.update")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrItemID, id,
		telemetry.SpanAttrItemCount, 3,
		42, "ignored",
		"removed", true,
	)
	span.End()

	attrs := sr.Ended()[0].Attributes()

	v, ok := attrValue(attrs, telemetry.SpanAttrItemID)
	require.True(t, ok)
	assert.Equal(t, id.String(), v.AsString())

	v, ok = attrValue(attrs, telemetry.SpanAttrItemCount)
	require.True(t, ok)
	assert.Equal(t, int64(3), v.AsInt64())

	v, ok = attrValue(attrs, "removed")
	require.True(t, ok)
	assert.True(t, v.AsBool())

	assert.Len(t, attrs, 3)
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "category.delete")
	telemetry.RecordError(span, errors.New("boom"))
	telemetry.RecordError(span, nil)
	span.End()

	ended := sr.Ended()[0]
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "boom", ended.Status().Description)
	require.Len(t, ended.Events(), 1)
	assert.Equal(t, "exception", ended.Events()[0].Name)
}

func TestAddEvent(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "menu_item.delete")
	telemetry.AddEvent(span, "image_discarded", telemetry.SpanAttrImageKey, "menu-items/a.png")
	span.End()

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "image_discarded", events[0].Name)
	v, ok := attrValue(events[0].Attributes, telemetry.SpanAttrImageKey)
	require.True(t, ok)
	assert.Equal(t, "menu-items/a.png", v.AsString())
}

func TestGetTraceID(t *testing.T) {
	setupTestTracer(t)

	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "public_menu.get")
	defer span.End()
	assert.Len(t, telemetry.GetTraceID(ctx), 32)
}
