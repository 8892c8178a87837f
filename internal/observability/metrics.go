package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the bridge.
type Metrics struct {
	ReportsReceived  prometheus.Counter
	ReportsRejected  *prometheus.CounterVec // labels: reason={bad_credentials,busy}
	SamplesPublished prometheus.Counter
	FieldErrors      *prometheus.CounterVec // labels: reason={missing,unparseable}
	PublishErrors    prometheus.Counter

	// Kafka forwarding metrics.
	ReportsForwarded prometheus.Counter
	ForwardErrors    prometheus.Counter

	LastReportTimestamp prometheus.Gauge
}

// NewMetrics creates and registers all bridge metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bridge",
			Name:      "reports_received_total",
			Help:      "Total station reports received on /update_weather.",
		}),
		ReportsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bridge",
			Name:      "reports_rejected_total",
			Help:      "Station reports rejected before any field was published, by reason.",
		}, []string{"reason"}),
		SamplesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bridge",
			Name:      "samples_published_total",
			Help:      "Total sensor samples published to the broker.",
		}),
		FieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bridge",
			Name:      "field_errors_total",
			Help:      "Station fields skipped during a report, by reason.",
		}, []string{"reason"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bridge",
			Name:      "publish_errors_total",
			Help:      "Broker publish failures; the report continues regardless.",
		}),
		ReportsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bridge",
			Name:      "reports_forwarded_total",
			Help:      "Raw reports forwarded to the Kafka archive topic.",
		}),
		ForwardErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bridge",
			Name:      "forward_errors_total",
			Help:      "Kafka forwarding failures.",
		}),
		LastReportTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_bridge",
			Name:      "last_report_timestamp_seconds",
			Help:      "Unix time of the last successfully processed report.",
		}),
	}

	prometheus.MustRegister(
		m.ReportsReceived,
		m.ReportsRejected,
		m.SamplesPublished,
		m.FieldErrors,
		m.PublishErrors,
		m.ReportsForwarded,
		m.ForwardErrors,
		m.LastReportTimestamp,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReportsReceived:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bridge", Name: "reports_received_total"}),
		ReportsRejected:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_bridge", Name: "reports_rejected_total"}, []string{"reason"}),
		SamplesPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bridge", Name: "samples_published_total"}),
		FieldErrors:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_bridge", Name: "field_errors_total"}, []string{"reason"}),
		PublishErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bridge", Name: "publish_errors_total"}),
		ReportsForwarded:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bridge", Name: "reports_forwarded_total"}),
		ForwardErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_bridge", Name: "forward_errors_total"}),
		LastReportTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_bridge", Name: "last_report_timestamp_seconds"}),
	}
}
