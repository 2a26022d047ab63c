package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the corridor backend.
type Metrics struct {
	EventUpdates *prometheus.CounterVec // label: type
	EventActive  prometheus.Gauge

	KPIReads            prometheus.Counter
	SegmentReads        prometheus.Counter
	SegmentReadFailures prometheus.Counter

	StreamClients prometheus.Gauge
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cityops",
			Name:      "event_updates_total",
			Help:      "Accepted event updates by event type.",
		}, []string{"type"}),
		EventActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cityops",
			Name:      "event_active",
			Help:      "1 while a corridor event is active, 0 when clear.",
		}),
		KPIReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cityops",
			Name:      "kpi_reads_total",
			Help:      "Total KPI reads over HTTP.",
		}),
		SegmentReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cityops",
			Name:      "segment_reads_total",
			Help:      "Total annotated corridor map reads.",
		}),
		SegmentReadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cityops",
			Name:      "segment_read_failures_total",
			Help:      "Corridor map reads that failed to load the map file.",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cityops",
			Name:      "stream_clients",
			Help:      "Currently connected WebSocket stream clients.",
		}),
	}

	reg.MustRegister(
		m.EventUpdates,
		m.EventActive,
		m.KPIReads,
		m.SegmentReads,
		m.SegmentReadFailures,
		m.StreamClients,
	)
	return m
}
