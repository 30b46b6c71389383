package token

import (
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
)

// EventHooks lets callers observe the token without wrapping every method.
// Hooks run synchronously on the submitting goroutine, after the engine
// released its lock.
type EventHooks struct {
	// OnTransaction is called for every submission, rejected ones included.
	OnTransaction func(res tx.ApplyResult)

	// OnDistribution is called when a trigger moved tokens.
	OnDistribution func(d *tax.Distribution)
}

// DefaultEventHooks returns hooks that do nothing.
func DefaultEventHooks() *EventHooks {
	return &EventHooks{}
}

// SetOnTransaction sets the transaction handler
func (h *EventHooks) SetOnTransaction(handler func(tx.ApplyResult)) {
	h.OnTransaction = handler
}

// SetOnDistribution sets the distribution handler
func (h *EventHooks) SetOnDistribution(handler func(*tax.Distribution)) {
	h.OnDistribution = handler
}

func (h *EventHooks) publish(res tx.ApplyResult) {
	if h.OnTransaction != nil {
		h.OnTransaction(res)
	}
	if h.OnDistribution != nil && res.Applied && res.Distribution != nil && !res.Distribution.Skipped {
		h.OnDistribution(res.Distribution)
	}
}
