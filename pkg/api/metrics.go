package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API server
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Log operation metrics
	logOperationsTotal   *prometheus.CounterVec
	logOperationDuration *prometheus.HistogramVec
	corruptionsTotal     prometheus.Counter
	appendedBytesTotal   prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recordio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recordio_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		logOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recordio_log_operations_total",
				Help: "Total number of log operations",
			},
			[]string{"operation", "status"},
		),

		logOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recordio_log_operation_duration_seconds",
				Help:    "Log operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		corruptionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recordio_corruptions_total",
				Help: "Total number of corrupted regions skipped by scans",
			},
		),

		appendedBytesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recordio_appended_bytes_total",
				Help: "Total logical record bytes appended",
			},
		),
	}
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordLogOperation records metrics for an append or scan
func (m *Metrics) RecordLogOperation(operation string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.logOperationsTotal.WithLabelValues(operation, status).Inc()
	m.logOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// AddCorruptions adds to the corruption counter
func (m *Metrics) AddCorruptions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.corruptionsTotal.Add(float64(n))
}

// AddAppendedBytes adds to the appended bytes counter
func (m *Metrics) AddAppendedBytes(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.appendedBytesTotal.Add(float64(n))
}

// InstrumentHandler wraps an HTTP handler to record request metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
