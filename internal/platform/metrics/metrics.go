package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// CascadeOrphans counts patient deletions whose clinical status cleanup
	// failed. Operators reconcile orphaned records from this signal.
	CascadeOrphans prometheus.Counter
}

// New creates and registers all metrics with the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests register against a fresh
// prometheus.NewRegistry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vitalsd_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vitalsd_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CascadeOrphans: factory.NewCounter(prometheus.CounterOpts{
			Name: "vitalsd_cascade_orphans_total",
			Help: "Patient deletions that left an orphaned clinical status record",
		}),
	}
}
