package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gatekit-dev/gatekit/pkg/guard"
	"github.com/gatekit-dev/gatekit/pkg/router"
	"github.com/gatekit-dev/gatekit/pkg/server"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "gatekit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for evaluation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "gatekit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the guard toolkit.
type metrics struct {
	evaluationsTotal *prometheus.CounterVec
	redirectsTotal   prometheus.Counter
	evalDuration     *prometheus.HistogramVec
	routeErrors      *prometheus.CounterVec
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		evaluationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guard_evaluations_total",
			Help:        "Total number of guard evaluations by decision",
			ConstLabels: config.ConstLabels,
		}, []string{"decision"}),

		redirectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guard_redirects_total",
			Help:        "Total number of redirects issued on denied access",
			ConstLabels: config.ConstLabels,
		}),

		evalDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guard_eval_duration_seconds",
			Help:        "Guarded route handling duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		routeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "guard_route_errors_total",
			Help:        "Total number of guarded route errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "error_type"}),
	}
}

// Prometheus creates middleware that collects metrics for guarded routes.
//
// Metrics collected:
//   - gatekit_guard_evaluations_total: Counter of evaluations by decision
//     (fed by GuardObserver)
//   - gatekit_guard_redirects_total: Counter of redirects (RecordRedirect)
//   - gatekit_guard_eval_duration_seconds: Histogram of route duration
//   - gatekit_guard_route_errors_total: Counter of route errors by type
//
// Example:
//
//	mw := middleware.Prometheus(middleware.WithNamespace("myapp"))
//	g := guard.New(src, nav, guard.WithObserver(middleware.GuardObserver()))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return router.MiddlewareFunc(func(ctx server.Ctx, next func() error) error {
		path := ctx.Path()
		if path == "" {
			path = "/"
		}

		start := time.Now()
		err := next()
		m.evalDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

		if err != nil {
			m.routeErrors.WithLabelValues(path, categorizeError(err)).Inc()
		}

		return err
	})
}

// GuardObserver returns an observer for guard.WithObserver that counts
// evaluations by decision. Prometheus() must be called first; before
// that the observer is a no-op.
func GuardObserver() func(guard.Decision) {
	return func(d guard.Decision) {
		if globalMetrics != nil {
			globalMetrics.evaluationsTotal.WithLabelValues(d.String()).Inc()
		}
	}
}

// RecordRedirect records a redirect issued on denied access.
// Call this from transport adapters when they emit the redirect.
func RecordRedirect() {
	if globalMetrics != nil {
		globalMetrics.redirectsTotal.Inc()
	}
}

// categorizeError returns a coarse category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "unauthorized"):
		return "unauthorized"
	case strings.Contains(errStr, "forbidden"):
		return "forbidden"
	case strings.Contains(errStr, "timeout"):
		return "timeout"
	case strings.Contains(errStr, "not found"):
		return "not_found"
	default:
		return "internal"
	}
}
