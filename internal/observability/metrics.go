package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "air_alerts"

// Metrics holds the Prometheus counters, histograms, and gauges for the alert monitor.
type Metrics struct {
	RefreshesTotal       *prometheus.CounterVec // labels: outcome={success,fetch_error,anomaly}
	RefreshesSkipped     prometheus.Counter
	RefreshDuration      prometheus.Histogram
	MonitorRunning       prometheus.Gauge
	LastSuccessTimestamp prometheus.Gauge

	// Upstream API metrics.
	FetchErrors        *prometheus.CounterVec   // labels: reason={status,timeout,decode,network}
	APIRequestDuration *prometheus.HistogramVec // labels: source={alerts,iot}

	// Data metrics.
	DataAnomalies *prometheus.CounterVec // labels: kind
	ActiveRegions *prometheus.GaugeVec   // labels: kind={full,partial,excluded,hidden}
}

// NewMetrics creates and registers all monitor metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RefreshesTotal,
		m.RefreshesSkipped,
		m.RefreshDuration,
		m.MonitorRunning,
		m.LastSuccessTimestamp,
		m.FetchErrors,
		m.APIRequestDuration,
		m.DataAnomalies,
		m.ActiveRegions,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Refresh cycles by outcome.",
		}, []string{"outcome"}),
		RefreshesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_skipped_total",
			Help:      "Refresh requests dropped because another refresh was in flight.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-reconcile-format cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "monitor_running",
			Help:      "1 while the refresh loop is active, 0 when stopped.",
		}),
		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last refresh that produced an alert panel.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed API requests by reason.",
		}, []string{"reason"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "alerts.in.ua request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		DataAnomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_anomalies_total",
			Help:      "Unexpected values normalized during decoding or duration computation.",
		}, []string{"kind"}),
		ActiveRegions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_regions",
			Help:      "Regions with an active alert in the last successful refresh.",
		}, []string{"kind"}),
	}
}
