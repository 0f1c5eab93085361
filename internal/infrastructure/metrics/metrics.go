package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Ledger metrics
	LedgerOperations *prometheus.CounterVec
	PaymentAmount    prometheus.Histogram
	PersistFailures  prometheus.Counter
	LedgerLoads      prometheus.Counter

	// Snapshot gauges
	Debts      *prometheus.GaugeVec
	OwedAmount *prometheus.GaugeVec
	NetBalance prometheus.Gauge
}

// New creates all metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		LedgerOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debtnet_ledger_operations_total",
				Help: "Total ledger mutations by operation",
			},
			[]string{"operation"},
		),
		PaymentAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "debtnet_payment_amount",
			Help:    "Applied payment amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "debtnet_persist_failures_total",
			Help: "Total failed ledger writes",
		}),
		LedgerLoads: factory.NewCounter(prometheus.CounterOpts{
			Name: "debtnet_ledger_loads_total",
			Help: "Total ledger loads",
		}),

		Debts: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "debtnet_debts",
				Help: "Number of debts by state",
			},
			[]string{"state"},
		),
		OwedAmount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "debtnet_owed_amount",
				Help: "Outstanding principal by direction",
			},
			[]string{"direction", "interest"},
		),
		NetBalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "debtnet_net_balance",
			Help: "Owed to the user minus owed by the user",
		}),
	}
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
