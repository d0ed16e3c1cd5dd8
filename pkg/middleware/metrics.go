package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "loom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for loom.
type metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	fragmentsDeferred prometheus.Counter
	fragmentsStreamed prometheus.Counter
	fragmentWait      prometheus.Histogram
	streamTimeouts    prometheus.Counter
	liveSessions      prometheus.Gauge
	wsErrors          *prometheus.CounterVec
}

// globalMetrics is created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of server render requests",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Server render request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		fragmentsDeferred: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fragments_deferred_total",
			Help:        "Total number of boundaries deferred past the initial render pass",
			ConstLabels: config.ConstLabels,
		}),

		fragmentsStreamed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fragments_streamed_total",
			Help:        "Total number of deferred fragments flushed to clients",
			ConstLabels: config.ConstLabels,
		}),

		fragmentWait: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fragment_wait_seconds",
			Help:        "Time from initial flush to fragment delivery",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),

		streamTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stream_timeouts_total",
			Help:        "Total number of streams closed with fragments still pending",
			ConstLabels: config.ConstLabels,
		}),

		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates middleware that records request counts and duration
// for every server render.
//
// Metrics collected:
//   - loom_requests_total: Counter of requests by path and status code
//   - loom_request_duration_seconds: Histogram of render duration
//   - loom_fragments_deferred_total: Counter of deferred boundaries
//   - loom_fragments_streamed_total: Counter of flushed fragments
//   - loom_fragment_wait_seconds: Histogram of fragment resolution latency
//   - loom_stream_timeouts_total: Counter of streams closed while pending
//   - loom_live_sessions: Gauge of active WebSocket sessions
//   - loom_websocket_errors_total: Counter of WebSocket errors
//
// Example:
//
//	srv := server.New(server.DefaultConfig())
//	srv.Use(middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	))
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
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

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "" {
				path = "/"
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sw, r)

			m.requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(path, strconv.Itoa(sw.code)).Inc()
		})
	}
}

// statusWriter captures the response code while preserving http.Flusher,
// which the streaming renderer depends on.
type statusWriter struct {
	http.ResponseWriter
	code  int
	wrote bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wrote {
		w.code = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RecordFragmentDeferred records a boundary deferred past the initial
// render pass.
func RecordFragmentDeferred() {
	if globalMetrics != nil {
		globalMetrics.fragmentsDeferred.Inc()
	}
}

// RecordFragmentStreamed records a deferred fragment flushed to the
// client, with the time it spent pending.
func RecordFragmentStreamed(wait time.Duration) {
	if globalMetrics != nil {
		globalMetrics.fragmentsStreamed.Inc()
		globalMetrics.fragmentWait.Observe(wait.Seconds())
	}
}

// RecordStreamTimeout records a stream closed with fragments still
// outstanding.
func RecordStreamTimeout() {
	if globalMetrics != nil {
		globalMetrics.streamTimeouts.Inc()
	}
}

// RecordSessionStart records a new live session.
func RecordSessionStart() {
	if globalMetrics != nil {
		globalMetrics.liveSessions.Inc()
	}
}

// RecordSessionEnd records a closed live session.
func RecordSessionEnd() {
	if globalMetrics != nil {
		globalMetrics.liveSessions.Dec()
	}
}

// RecordWebSocketError records a WebSocket error.
func RecordWebSocketError(errorType string) {
	if globalMetrics != nil {
		globalMetrics.wsErrors.WithLabelValues(errorType).Inc()
	}
}
