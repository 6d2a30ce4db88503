package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records request counts and latencies per route label.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates request collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdfdesk_http_requests_total",
				Help: "Total HTTP requests by module, method, and status code",
			},
			[]string{"module", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pdfdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds by module and method",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"module", "method"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Middleware returns request instrumentation labelled with the module name.
func (m *Metrics) Middleware(moduleName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			m.requests.WithLabelValues(moduleName, r.Method, strconv.Itoa(rec.status)).Inc()
			m.duration.WithLabelValues(moduleName, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
