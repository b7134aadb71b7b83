// Package telemetry wires the antenna checker's run-time metrics and
// tracing: a small set of Prometheus counters registered through
// promauto, and an OpenTelemetry span per net check (spec.md §10.3).
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the antenna checker's Prometheus surface. A nil
// *Metrics is safe to call methods on — every method is a no-op — so
// callers that never configured a registerer pay nothing.
type Metrics struct {
	netViolations      prometheus.Counter
	pinViolations      prometheus.Counter
	diodeInsertions    prometheus.Counter
	repairSaturations  prometheus.Counter
	checkNetDuration   prometheus.Histogram
}

// New registers the antenna checker's metrics against reg. Passing
// nil returns nil, which every caller in this package treats as
// "metrics disabled".
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	return &Metrics{
		netViolations: f.NewCounter(prometheus.CounterOpts{
			Name: "antenna_net_violations_total",
			Help: "Nets with at least one antenna ratio violation.",
		}),
		pinViolations: f.NewCounter(prometheus.CounterOpts{
			Name: "antenna_pin_violations_total",
			Help: "Individual (layer, connectivity set) antenna ratio violations.",
		}),
		diodeInsertions: f.NewCounter(prometheus.CounterOpts{
			Name: "antenna_diode_insertions_total",
			Help: "Diodes estimated as needed to repair a violation.",
		}),
		repairSaturations: f.NewCounter(prometheus.CounterOpts{
			Name: "antenna_repair_saturation_total",
			Help: "Violations whose diode-count estimate hit the configured cap.",
		}),
		checkNetDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name: "antenna_checknet_duration_seconds",
			Help: "Wall-clock time spent checking one net.",
		}),
	}
}

func (m *Metrics) ObserveNetViolation() {
	if m == nil {
		return
	}
	m.netViolations.Inc()
}

func (m *Metrics) ObservePinViolations(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pinViolations.Add(float64(n))
}

func (m *Metrics) ObserveDiodeInsertions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.diodeInsertions.Add(float64(n))
}

func (m *Metrics) ObserveRepairSaturation() {
	if m == nil {
		return
	}
	m.repairSaturations.Inc()
}

func (m *Metrics) ObserveCheckNetDuration(seconds float64) {
	if m == nil {
		return
	}
	m.checkNetDuration.Observe(seconds)
}
