package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded besides error codes.
const (
	OutcomeOK     = "ok"
	OutcomeAbsent = "absent"
)

// Collector bundles the prometheus collectors describing metric evaluation.
type Collector struct {
	Evaluations *prometheus.CounterVec
	LastValue   *prometheus.GaugeVec
}

func New(registry prometheus.Registerer) *Collector {
	c := &Collector{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vitalstats",
			Name:      "evaluations_total",
			Help:      "Total number of metric evaluations by outcome.",
		}, []string{"metric", "outcome"}),
		LastValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "vitalstats",
			Name:      "last_raw_value",
			Help:      "Most recent raw value of a metric in its native unit.",
		}, []string{"metric", "unit"}),
	}

	registry.MustRegister(c.Evaluations, c.LastValue)

	return c
}

// Observe counts one evaluation of metric with the given outcome.
func (c *Collector) Observe(metric, outcome string) {
	c.Evaluations.WithLabelValues(metric, outcome).Inc()
}

// ObserveValue records the raw value of metric.
func (c *Collector) ObserveValue(metric, unit string, raw float64) {
	c.LastValue.WithLabelValues(metric, unit).Set(raw)
}
