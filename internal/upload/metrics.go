package upload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the upload pipeline.
type Metrics struct {
	Accepted  prometheus.Counter
	Rejected  *prometheus.CounterVec
	FileBytes prometheus.Histogram
	Forwarded *prometheus.CounterVec
}

// NewMetrics registers the upload metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Accepted: f.NewCounter(prometheus.CounterOpts{
			Name: "schemereg_upload_accepted_total",
			Help: "Uploads that passed validation",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "schemereg_upload_rejected_total",
			Help: "Uploads rejected by validation, by reason",
		}, []string{"reason"}),
		FileBytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "schemereg_upload_file_bytes",
			Help:    "Size of accepted uploads in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),
		Forwarded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "schemereg_upload_forwarded_total",
			Help: "Accepted uploads forwarded to the gateway, by submission type and outcome",
		}, []string{"type", "outcome"}),
	}
}

// IncRejected records a rejection.
func (m *Metrics) IncRejected(reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(reason).Inc()
	}
}

// ObserveAccepted records an accepted file of n bytes.
func (m *Metrics) ObserveAccepted(n int) {
	if m != nil {
		m.Accepted.Inc()
		m.FileBytes.Observe(float64(n))
	}
}

// IncForwarded records the outcome of a gateway upload.
func (m *Metrics) IncForwarded(submissionType, outcome string) {
	if m != nil {
		m.Forwarded.WithLabelValues(submissionType, outcome).Inc()
	}
}
