package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordTransaction("Transfer", "tesSUCCESS", 0.0001)
	m.RecordTransaction("Transfer", "tesSUCCESS", 0.0002)
	m.RecordTransaction("Transfer", "tecUNFUNDED_PAYMENT", 0.0001)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transactionsTotal.WithLabelValues("Transfer", "tesSUCCESS")))

	m.RecordTransfer("sell", 30)
	m.RecordTransfer("normal", 0)
	assert.Equal(t, 30.0, testutil.ToFloat64(m.withheldTokens.WithLabelValues("sell")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.taxedTransfersTotal.WithLabelValues("normal")))

	m.SetWithheldBalance(12.5)
	assert.Equal(t, 12.5, testutil.ToFloat64(m.withheldBalance))

	m.RecordDistribution("skipped")
	m.RecordShare("dev", 4)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.distributionsTotal.WithLabelValues("skipped")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.distributedTokens.WithLabelValues("dev")))

	m.RecordCycleRejection("group")
	m.RecordInvariantViolation()
	m.SetJournalEntries(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.journalEntries))
}

func TestNilMetricsIsNoOp(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTransaction("Transfer", "tesSUCCESS", 0)
		m.RecordTransfer("buy", 1)
		m.SetWithheldBalance(1)
		m.RecordCycleRejection("address")
		m.RecordDistribution("distributed")
		m.RecordShare("dev", 1)
		m.RecordInvariantViolation()
		m.SetJournalEntries(1)
	})
}
