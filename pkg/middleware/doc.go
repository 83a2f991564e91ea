// Package middleware provides observability middleware for guarded
// routes: Prometheus metrics and OpenTelemetry tracing.
package middleware
