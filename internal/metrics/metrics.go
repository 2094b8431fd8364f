package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	migrations       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())

	return &Metrics{
		reg: reg,

		upstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bookdesk_upstream_requests_total",
			Help: "Requests sent to upstream APIs by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookdesk_upstream_request_duration_seconds",
			Help:    "Latency of upstream API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		migrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bookdesk_migrations_total",
			Help: "Abandoned order migrations by terminal state",
		}, []string{"state"}),
	}
}

func (m *Metrics) ObserveUpstream(endpoint string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

func (m *Metrics) MigrationFinished(state string) {
	if m == nil {
		return
	}
	m.migrations.WithLabelValues(state).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.InstrumentMetricHandler(m.reg, promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
}
