// Package metrics provides Prometheus metrics for the judge service:
// HTTP request metrics and code execution / sandbox pool metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	instance *Metrics
)

// Metrics holds all Prometheus metric collectors for the judge service.
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPResponseSize     *prometheus.HistogramVec

	// Code Execution Metrics
	CodeExecutionsTotal   *prometheus.CounterVec
	CodeExecutionDuration *prometheus.HistogramVec
	ExecutionsInFlight    prometheus.Gauge
	ExecutionQueueLength  prometheus.Gauge

	// Sandbox Pool Metrics
	SandboxesIdle    prometheus.Gauge
	SandboxesRunning prometheus.Gauge
	SandboxesError   prometheus.Gauge

	// System Metrics
	BuildInfo    *prometheus.GaugeVec
	StartupTime  prometheus.Gauge
	GoroutineNum prometheus.Gauge
}

// Get returns the singleton Metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = newMetrics()
	})
	return instance
}

// newMetrics creates and registers all Prometheus metrics
func newMetrics() *Metrics {
	m := &Metrics{}

	// HTTP Metrics
	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pecan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint, method, and status code",
		},
		[]string{"endpoint", "method", "status"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pecan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method"},
	)

	m.HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)

	m.HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pecan",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"endpoint"},
	)

	// Code Execution Metrics
	m.CodeExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pecan",
			Subsystem: "execution",
			Name:      "total",
			Help:      "Total number of code executions by language and verdict",
		},
		[]string{"language", "verdict"},
	)

	m.CodeExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pecan",
			Subsystem: "execution",
			Name:      "duration_seconds",
			Help:      "Code execution duration in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"language"},
	)

	m.ExecutionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "execution",
			Name:      "in_flight",
			Help:      "Number of code executions currently running",
		},
	)

	m.ExecutionQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "execution",
			Name:      "queue_length",
			Help:      "Number of code executions waiting in the task queue",
		},
	)

	// Sandbox Pool Metrics
	m.SandboxesIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "sandbox",
			Name:      "idle",
			Help:      "Number of idle sandboxes in the pool",
		},
	)

	m.SandboxesRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "sandbox",
			Name:      "running",
			Help:      "Number of sandboxes currently executing a request",
		},
	)

	m.SandboxesError = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "sandbox",
			Name:      "error",
			Help:      "Number of sandboxes awaiting janitor repair",
		},
	)

	// System Metrics
	m.BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "build",
			Name:      "info",
			Help:      "Build information",
		},
		[]string{"version", "commit", "build_date"},
	)

	m.StartupTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "server",
			Name:      "startup_timestamp",
			Help:      "Server startup timestamp",
		},
	)

	m.GoroutineNum = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pecan",
			Subsystem: "server",
			Name:      "goroutines",
			Help:      "Current number of goroutines",
		},
	)

	// Set startup time
	m.StartupTime.Set(float64(time.Now().Unix()))

	return m
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(endpoint, method string, statusCode int, duration time.Duration, responseSize int) {
	status := statusCodeToLabel(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(endpoint).Observe(float64(responseSize))
}

// RecordCodeExecution records a graded code execution.
func (m *Metrics) RecordCodeExecution(language, verdict string, duration time.Duration) {
	m.CodeExecutionsTotal.WithLabelValues(language, verdict).Inc()
	m.CodeExecutionDuration.WithLabelValues(language).Observe(duration.Seconds())
}

// RecordQueueLength reports the current task queue depth.
func (m *Metrics) RecordQueueLength(n int) {
	m.ExecutionQueueLength.Set(float64(n))
}

// RecordSandboxCounts reports the current pool composition.
func (m *Metrics) RecordSandboxCounts(idle, running, errored int) {
	m.SandboxesIdle.Set(float64(idle))
	m.SandboxesRunning.Set(float64(running))
	m.SandboxesError.Set(float64(errored))
}

// SetBuildInfo sets build information.
func (m *Metrics) SetBuildInfo(version, commit, buildDate string) {
	m.BuildInfo.WithLabelValues(version, commit, buildDate).Set(1)
}

// Helper function to convert status code to label
func statusCodeToLabel(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
