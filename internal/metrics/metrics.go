package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collector's Prometheus counters.
type Metrics struct {
	AlertsIngested *prometheus.CounterVec
	InvalidEvents  prometheus.Counter
}

// New registers and returns the collector metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AlertsIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_ingested_total",
			Help: "Total number of alerts persisted, by recomputed suspicion level",
		}, []string{"level"}),
		InvalidEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "events_invalid_total",
			Help: "Total number of structurally invalid events rejected at ingestion",
		}),
	}
}
