package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by a PooledMapper.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Items         *prometheus.CounterVec
	ItemDuration  prometheus.Histogram
	ActiveWorkers prometheus.Gauge
	Batches       prometheus.Counter
	BatchDuration prometheus.Histogram
}

// NewMetrics creates the collectors under the given namespace and registers
// them with reg. Pass prometheus.DefaultRegisterer for the global registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "items_total",
			Help:      "Number of processed inputs by outcome",
		}, []string{"status"}),
		ItemDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "item_duration_seconds",
			Help:      "Time spent applying the function to one input",
			Buckets:   prometheus.DefBuckets,
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "active_workers",
			Help:      "Workers currently alive across running batches",
		}),
		Batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "batches_total",
			Help:      "Number of completed batches",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock time of a batch from pool creation to teardown",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Items, m.ItemDuration, m.ActiveWorkers, m.Batches, m.BatchDuration)
	}
	return m
}

func (m *Metrics) observeItem(ev CompletionEvent) {
	if m == nil {
		return
	}
	status := "ok"
	if ev.Err != nil {
		status = "failed"
	}
	m.Items.WithLabelValues(status).Inc()
	m.ItemDuration.Observe(ev.Duration.Seconds())
}

func (m *Metrics) workerUp() {
	if m != nil {
		m.ActiveWorkers.Inc()
	}
}

func (m *Metrics) workerDown() {
	if m != nil {
		m.ActiveWorkers.Dec()
	}
}

func (m *Metrics) observeBatch(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Batches.Inc()
	m.BatchDuration.Observe(elapsed.Seconds())
}
