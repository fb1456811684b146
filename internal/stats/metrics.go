package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bwlife/internal/classify"
)

// Metrics exports collector updates to prometheus.
type Metrics struct {
	trials      *prometheus.CounterVec
	failures    *prometheus.CounterVec
	interesting *prometheus.CounterVec
	period      prometheus.Histogram
	transient   prometheus.Histogram
	indegree    prometheus.Histogram
}

// NewMetrics registers the sweep metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		trials: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bwlife_trials_total",
			Help: "Classified boards by class",
		}, []string{"class"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bwlife_failures_total",
			Help: "Abandoned trials and searches by reason",
		}, []string{"reason"}),
		interesting: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bwlife_interesting_total",
			Help: "Records flagged as interesting by flag",
		}, []string{"flag"}),
		period: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bwlife_period",
			Help:    "Cycle period of classified boards",
			Buckets: prometheus.LinearBuckets(1, 4, 34),
		}),
		transient: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bwlife_transient",
			Help:    "Steps before the cycle of classified boards",
			Buckets: prometheus.LinearBuckets(0, 8, 56),
		}),
		indegree: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bwlife_predecessors",
			Help:    "Number of predecessors of searched boards",
			Buckets: prometheus.ExponentialBuckets(1, 4, 16),
		}),
	}
}

func (m *Metrics) observe(rec classify.Record, in Interest) {
	m.trials.WithLabelValues(rec.Class.String()).Inc()
	m.period.Observe(float64(rec.Period))
	m.transient.Observe(float64(rec.Transient))
	for _, name := range in.Names() {
		m.interesting.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) observeError(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeIndegree(n uint64) {
	m.indegree.Observe(float64(n))
}
