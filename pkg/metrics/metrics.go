// Package metrics exposes Prometheus instrumentation on a private
// registry.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes recorded against the submissions counter.
const (
	OutcomeAccepted = "accepted"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
)

// Manager owns the metric collectors and their registry.
type Manager struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	submissions  *prometheus.CounterVec
	reportTime   *prometheus.HistogramVec
	storeRecords prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*managerConfig)

type managerConfig struct {
	namespace string
	registry  *prometheus.Registry
	buckets   []float64
}

// WithNamespace sets the metric namespace prefix.
func WithNamespace(namespace string) Option {
	return func(c *managerConfig) {
		if namespace != "" {
			c.namespace = namespace
		}
	}
}

// WithRegistry sets a custom registry, mainly for tests.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *managerConfig) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithDurationBuckets overrides the histogram buckets (milliseconds).
func WithDurationBuckets(buckets []float64) Option {
	return func(c *managerConfig) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	}
}

// NewManager builds a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	cfg := &managerConfig{
		namespace: "gradebook",
		registry:  prometheus.NewRegistry(),
		buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manager{
		registry: cfg.registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method and status code.",
		}, []string{"endpoint", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request duration in milliseconds.",
			Buckets:   cfg.buckets,
		}, []string{"endpoint", "method"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "score_submissions_total",
			Help:      "Score submissions by outcome (accepted, conflict, invalid).",
		}, []string{"outcome"}),
		reportTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "report_duration_ms",
			Help:      "Report computation duration in milliseconds.",
			Buckets:   cfg.buckets,
		}, []string{"report"}),
		storeRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.namespace,
			Name:      "store_score_records",
			Help:      "Score records currently held by the store.",
		}),
	}

	cfg.registry.MustRegister(m.httpRequests, m.httpDuration, m.submissions, m.reportTime, m.storeRecords)
	return m
}

// Registry returns the manager's registry for serving /healthz.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

func get() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}

// GetRegistry returns the default manager's registry.
func GetRegistry() *prometheus.Registry { return get().Registry() }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	get().httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	get().httpDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// RecordSubmission counts one score submission by outcome.
func RecordSubmission(outcome string) {
	get().submissions.WithLabelValues(outcome).Inc()
}

// RecordReportDuration observes one report computation.
func RecordReportDuration(report string, durationMs float64) {
	get().reportTime.WithLabelValues(report).Observe(durationMs)
}

// UpdateStoreRecords sets the score record gauge.
func UpdateStoreRecords(count int) {
	get().storeRecords.Set(float64(count))
}
