package compliance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summary cache lookup results.
const (
	resultHit    = "hit"
	resultMiss   = "miss"
	resultBypass = "bypass"
)

// Metrics provides observability for the summary cache.
type Metrics struct {
	SummaryLookups *prometheus.CounterVec
	Invalidations  *prometheus.CounterVec
}

// NewMetrics registers the compliance metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SummaryLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "schemereg_summary_cache_lookups_total",
			Help: "Compliance scheme summary lookups by cache result",
		}, []string{"result"}), // result: "hit", "miss", "bypass"
		Invalidations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "schemereg_summary_cache_invalidations_total",
			Help: "Summary cache entries removed after a membership change, by cause",
		}, []string{"cause"}),
	}
}

func (m *Metrics) incLookup(result string) {
	if m != nil {
		m.SummaryLookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) incInvalidation(cause string) {
	if m != nil {
		m.Invalidations.WithLabelValues(cause).Inc()
	}
}
