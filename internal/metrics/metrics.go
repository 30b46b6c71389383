// Package metrics holds the Prometheus collectors of the transaction engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Transaction metrics
	transactionsTotal   *prometheus.CounterVec
	applyDuration       *prometheus.HistogramVec
	invariantViolations prometheus.Counter

	// Tax metrics
	taxedTransfersTotal *prometheus.CounterVec
	withheldTokens      *prometheus.CounterVec
	withheldBalance     prometheus.Gauge
	cycleRejections     *prometheus.CounterVec

	// Distribution metrics
	distributionsTotal *prometheus.CounterVec
	distributedTokens  *prometheus.CounterVec

	// Journal metrics
	journalEntries prometheus.Gauge
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		transactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxledger_transactions_total",
				Help: "Total number of submitted transactions by type and result code",
			},
			[]string{"type", "result"},
		),
		applyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taxledger_apply_duration_seconds",
				Help:    "Duration of transaction application in seconds",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
			[]string{"type"},
		),
		invariantViolations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "taxledger_invariant_violations_total",
				Help: "Transactions discarded because a ledger invariant failed",
			},
		),

		taxedTransfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxledger_transfers_total",
				Help: "Applied transfers by category",
			},
			[]string{"category"},
		),
		withheldTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxledger_withheld_tokens_total",
				Help: "Tax withheld on the contract account, in whole tokens",
			},
			[]string{"category"},
		),
		withheldBalance: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "taxledger_withheld_balance_tokens",
				Help: "Current withheld balance of the contract account, in whole tokens",
			},
		),
		cycleRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxledger_cycle_rejections_total",
				Help: "Sells rejected by the sell-cycle limiter",
			},
			[]string{"scope"},
		),

		distributionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxledger_distributions_total",
				Help: "Distribution triggers by outcome",
			},
			[]string{"outcome"},
		),
		distributedTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxledger_distributed_tokens_total",
				Help: "Tokens paid to beneficiary wallets, in whole tokens",
			},
			[]string{"role"},
		),

		journalEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "taxledger_journal_entries",
				Help: "Number of results held in the receipt journal",
			},
		),
	}
}

// Transaction metric helpers

// RecordTransaction records one submitted transaction and how long it took.
func (m *Metrics) RecordTransaction(txType, result string, duration float64) {
	if m == nil {
		return
	}
	m.transactionsTotal.WithLabelValues(txType, result).Inc()
	m.applyDuration.WithLabelValues(txType).Observe(duration)
}

// RecordInvariantViolation records a transaction discarded by an invariant check.
func (m *Metrics) RecordInvariantViolation() {
	if m == nil {
		return
	}
	m.invariantViolations.Inc()
}

// Tax metric helpers

// RecordTransfer records an applied transfer and the tax it withheld.
func (m *Metrics) RecordTransfer(category string, withheld float64) {
	if m == nil {
		return
	}
	m.taxedTransfersTotal.WithLabelValues(category).Inc()
	if withheld > 0 {
		m.withheldTokens.WithLabelValues(category).Add(withheld)
	}
}

// SetWithheldBalance records the contract's current withheld balance.
func (m *Metrics) SetWithheldBalance(tokens float64) {
	if m == nil {
		return
	}
	m.withheldBalance.Set(tokens)
}

// RecordCycleRejection records a sell refused by the limiter.
// scope is "address" or "group".
func (m *Metrics) RecordCycleRejection(scope string) {
	if m == nil {
		return
	}
	m.cycleRejections.WithLabelValues(scope).Inc()
}

// Distribution metric helpers

// RecordDistribution records a trigger outcome ("distributed" or "skipped").
func (m *Metrics) RecordDistribution(outcome string) {
	if m == nil {
		return
	}
	m.distributionsTotal.WithLabelValues(outcome).Inc()
}

// RecordShare records tokens paid to one beneficiary role.
func (m *Metrics) RecordShare(role string, tokens float64) {
	if m == nil {
		return
	}
	m.distributedTokens.WithLabelValues(role).Add(tokens)
}

// Journal metric helpers

// SetJournalEntries records the journal size.
func (m *Metrics) SetJournalEntries(n int) {
	if m == nil {
		return
	}
	m.journalEntries.Set(float64(n))
}
