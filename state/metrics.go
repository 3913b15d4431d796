package state

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/objectledger-lab/objectledger/helper/metrics"
	"github.com/objectledger-lab/objectledger/state/stypes"
)

const subsystem = "executor"

// Metrics represents the executor metrics
type Metrics struct {
	// Executed transactions
	transactionNum prometheus.Counter
	// Transactions that ran and failed
	failureNum prometheus.Counter
	// Objects touched per effects record
	effectsObjects prometheus.Histogram
}

func (m *Metrics) TransactionExecuted() {
	if m == nil {
		return
	}

	metrics.CounterInc(m.transactionNum)
}

func (m *Metrics) ExecutionFailed() {
	if m == nil {
		return
	}

	metrics.CounterInc(m.failureNum)
}

func (m *Metrics) EffectsObserved(e *stypes.EffectsRecord) {
	if m == nil {
		return
	}

	touched := len(e.Created) + len(e.Mutated) + len(e.Unwrapped) +
		len(e.Wrapped) + len(e.Deleted) + len(e.UnwrappedThenDeleted)

	metrics.HistogramObserve(m.effectsObjects, float64(touched))
}

// GetPrometheusMetrics return the executor metrics instance
func GetPrometheusMetrics(namespace string, labelsWithValues ...string) *Metrics {
	constLabels := metrics.ParseLabels(labelsWithValues...)

	m := &Metrics{
		transactionNum: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "transaction_total",
			Help:        "executed transaction count",
			ConstLabels: constLabels,
		}),
		failureNum: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "transaction_failure_total",
			Help:        "transactions that ran and failed",
			ConstLabels: constLabels,
		}),
		effectsObjects: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "effects_objects",
			Help:        "objects touched per effects record",
			ConstLabels: constLabels,
		}),
	}

	prometheus.MustRegister(
		m.transactionNum,
		m.failureNum,
		m.effectsObjects,
	)

	return m
}
