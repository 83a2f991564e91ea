package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gatekit-dev/gatekit/pkg/router"
	"github.com/gatekit-dev/gatekit/pkg/server"
)

// defaultTracerName is the tracer name used when none is configured.
const defaultTracerName = "gatekit"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "gatekit").
	TracerName string

	// IncludeUserID includes the user identity in spans if available.
	// May contain sensitive information - disabled by default.
	IncludeUserID bool

	// Filter determines which requests to trace.
	// Return true to trace, false to skip. If nil, everything is traced.
	Filter func(ctx server.Ctx) bool

	// AttributeExtractor extracts custom attributes from the context.
	AttributeExtractor func(ctx server.Ctx) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeUserID enables including the user identity in spans.
func WithIncludeUserID(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeUserID = include
	}
}

// WithFilter sets a filter function for traced requests.
func WithFilter(filter func(ctx server.Ctx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx server.Ctx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces guarded route handling.
//
// The middleware creates a span per request carrying the request path,
// records errors, and sets span status. The tracer uses the global
// OpenTelemetry tracer provider; configure it in main() before serving.
//
// Example:
//
//	mw := middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := OTelConfig{
		TracerName: defaultTracerName,
	}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(ctx server.Ctx, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		_, span := config.tracer.Start(ctx.StdContext(), "guard.route",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("gatekit.path", ctx.Path())),
		)
		defer span.End()

		if config.IncludeUserID {
			if user := ctx.User(); user != nil {
				span.SetAttributes(attribute.Bool("gatekit.authenticated", true))
			}
		}
		if config.AttributeExtractor != nil {
			span.SetAttributes(config.AttributeExtractor(ctx)...)
		}

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}
