package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/objectledger-lab/objectledger/helper/metrics"
)

const subsystem = "storage"

// Metrics represents the object store metrics
type Metrics struct {
	// Object reads
	readNum prometheus.Counter
	// Committed effects records
	commitNum prometheus.Counter
	// Objects written per commit
	commitObjects prometheus.Histogram
}

func (m *Metrics) ReadObserve() {
	if m == nil {
		return
	}

	metrics.CounterInc(m.readNum)
}

func (m *Metrics) CommitObserve(objects int) {
	if m == nil {
		return
	}

	metrics.CounterInc(m.commitNum)
	metrics.HistogramObserve(m.commitObjects, float64(objects))
}

// GetPrometheusMetrics return the object store metrics instance
func GetPrometheusMetrics(namespace string, labelsWithValues ...string) *Metrics {
	constLabels := metrics.ParseLabels(labelsWithValues...)

	m := &Metrics{
		readNum: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "read_total",
			Help:        "object read count",
			ConstLabels: constLabels,
		}),
		commitNum: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "commit_total",
			Help:        "committed effects record count",
			ConstLabels: constLabels,
		}),
		commitObjects: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "commit_objects",
			Help:        "objects written per commit",
			ConstLabels: constLabels,
		}),
	}

	prometheus.MustRegister(
		m.readNum,
		m.commitNum,
		m.commitObjects,
	)

	return m
}
