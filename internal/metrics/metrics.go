package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics for the dashboard pipeline.
type Metrics struct {
	RefreshTotal    *prometheus.CounterVec // labels: result=ok|error
	RefreshDuration prometheus.Histogram
	FetchDuration   prometheus.Histogram
	FetchErrors     *prometheus.CounterVec // labels: reason
	LastRefresh     *prometheus.GaugeVec   // labels: symbol, interval
}

// New registers and returns the dashboard metrics. Callers pass the
// registry, so tests can use a private one and never collide with the
// process default.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_refresh_total",
			Help: "Snapshot refreshes by result",
		}, []string{"result"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_refresh_duration_seconds",
			Help:    "Fetch plus enrich latency per snapshot refresh",
			Buckets: prometheus.DefBuckets,
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_fetch_duration_seconds",
			Help:    "Upstream klines request latency",
			Buckets: prometheus.DefBuckets,
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_fetch_errors_total",
			Help: "Upstream fetch failures by reason",
		}, []string{"reason"}),
		LastRefresh: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dashboard_last_refresh_unixtime",
			Help: "Unix time of the newest snapshot per symbol and interval",
		}, []string{"symbol", "interval"}),
	}

	reg.MustRegister(
		m.RefreshTotal,
		m.RefreshDuration,
		m.FetchDuration,
		m.FetchErrors,
		m.LastRefresh,
	)
	return m
}

// ObserveRefresh records one snapshot refresh outcome.
func (m *Metrics) ObserveRefresh(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.RefreshTotal.WithLabelValues(result).Inc()
	m.RefreshDuration.Observe(d.Seconds())
}

// ObserveFetch records one upstream klines request.
func (m *Metrics) ObserveFetch(d time.Duration) {
	m.FetchDuration.Observe(d.Seconds())
}

// CountFetchError tallies a failed upstream request by reason.
func (m *Metrics) CountFetchError(reason string) {
	m.FetchErrors.WithLabelValues(reason).Inc()
}

// MarkSnapshot records when a snapshot was last rebuilt.
func (m *Metrics) MarkSnapshot(symbol, interval string, at time.Time) {
	m.LastRefresh.WithLabelValues(symbol, interval).Set(float64(at.Unix()))
}
