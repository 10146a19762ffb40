package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for all service spans.
const TracerName = "qrmenu-backend"

// Span attribute keys used by the menu services.
const (
	SpanAttrBusinessID   = "business_id"
	SpanAttrBusinessSlug = "business_slug"
	SpanAttrCategoryID   = "category_id"
	SpanAttrItemID       = "item_id"
	SpanAttrImageKey     = "image_key"
	SpanAttrItemCount    = "item_count"
)

type SpanOption func(*spanOptions)

type spanOptions struct {
	attributes []attribute.KeyValue
	kind       trace.SpanKind
}

func WithAttribute(key string, value interface{}) SpanOption {
	return func(o *spanOptions) { o.attributes = append(o.attributes, toAttribute(key, value)) }
}

func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(o *spanOptions) { o.kind = kind }
}

// StartSpan starts an internal span unless WithSpanKind says otherwise.
// Callers end the span.
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, trace.Span) {
	o := spanOptions{kind: trace.SpanKindInternal}
	for _, opt := range opts {
		opt(&o)
	}
	return otel.Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(o.kind),
		trace.WithAttributes(o.attributes...))
}

// StartServiceSpan names the span "<service>.<method>", e.g. "category.create".
func StartServiceSpan(ctx context.Context, service, method string, opts ...SpanOption) (context.Context, trace.Span) {
	return StartSpan(ctx, service+"."+method, opts...)
}

// SetAttributes takes alternating keys and values. Pairs whose key is not a
// string are dropped.
func SetAttributes(span trace.Span, keyValues ...interface{}) {
	if span != nil {
		span.SetAttributes(pairsToAttributes(keyValues)...)
	}
}

func SetAttribute(span trace.Span, key string, value interface{}) {
	if span != nil {
		span.SetAttributes(toAttribute(key, value))
	}
}

// RecordError records err and marks the span failed.
func RecordError(span trace.Span, err error, opts ...trace.EventOption) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}

func AddEvent(span trace.Span, name string, keyValues ...interface{}) {
	if span != nil {
		span.AddEvent(name, trace.WithAttributes(pairsToAttributes(keyValues)...))
	}
}

// GetTraceID returns "" when ctx carries no sampled span.
func GetTraceID(ctx context.Context) string {
	if id := trace.SpanContextFromContext(ctx).TraceID(); id.IsValid() {
		return id.String()
	}
	return ""
}

func pairsToAttributes(keyValues []interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		if key, ok := keyValues[i].(string); ok {
			attrs = append(attrs, toAttribute(key, keyValues[i+1]))
		}
	}
	return attrs
}

func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
