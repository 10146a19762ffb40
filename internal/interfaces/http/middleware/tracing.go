// Package middleware provides HTTP middleware for the QR menu API.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPathPrefixes are not traced, e.g. health probes and static files.
	SkipPathPrefixes []string
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:      "qrmenu-backend",
		Enabled:          true,
		SkipPathPrefixes: []string{"/health", "/swagger", "/uploads"},
	}
}

// TracingWithConfig returns the otelgin middleware. Spans are named after the
// route pattern, e.g. "GET /api/menu-items/:id", and 5xx responses are marked
// as errors by otelgin.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	base := otelgin.Middleware(cfg.ServiceName)
	return func(c *gin.Context) {
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		base(c)
	}
}

// TraceAttributes enriches the request span with request_id before the
// handler runs and with the authenticated business and user afterwards.
// It must be placed after TracingWithConfig and RequestID.
func TraceAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}

		c.Next()

		if businessID := GetJWTBusinessID(c); businessID != "" {
			span.SetAttributes(attribute.String("business_id", businessID))
		}
		if userID := GetJWTUserID(c); userID != "" {
			span.SetAttributes(attribute.String("user_id", userID))
		}
	}
}
