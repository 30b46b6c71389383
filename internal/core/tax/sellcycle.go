package tax

import (
	"errors"
	"fmt"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/keylet"
)

var (
	// ErrCycleAllowanceExceeded is returned when a sell would push an
	// address, or its linked group, over the per-cycle allowance.
	ErrCycleAllowanceExceeded = errors.New("cycle allowance exceeded")

	// ErrGroupAllowanceExceeded is the linked-group flavor of
	// ErrCycleAllowanceExceeded and matches it with errors.Is.
	ErrGroupAllowanceExceeded = fmt.Errorf("%w by linked group", ErrCycleAllowanceExceeded)
)

// SellLimiter caps cumulative sells per address and per linked group within
// a rolling cycle. Accumulators live in the view, so a discarded sandbox
// discards the recorded sell as well.
type SellLimiter struct {
	registry    *Registry
	totalSupply amount.Amount
}

// NewSellLimiter returns a limiter over reg's limit settings.
func NewSellLimiter(reg *Registry, supply amount.Amount) *SellLimiter {
	return &SellLimiter{registry: reg, totalSupply: supply}
}

// Allowance returns the per-cycle sell allowance, and false when the
// limiter is disabled.
func (l *SellLimiter) Allowance() (amount.Amount, bool, error) {
	bps := l.registry.Limits().SellAllowanceBps
	if bps == 0 {
		return amount.Zero(), false, nil
	}
	a, err := l.totalSupply.MulDiv(bps, BasisPoints)
	return a, true, err
}

// CheckAndRecord adds amt to seller's accumulators if both stay within the
// allowance. On error nothing is written.
func (l *SellLimiter) CheckAndRecord(v ledger.View, seller account.Address, amt amount.Amount, now time.Time) error {
	allowance, enabled, err := l.Allowance()
	if err != nil || !enabled {
		return err
	}
	cycle := l.registry.Limits().CycleLength

	own := keylet.SellCycle(seller)
	ownCycle, err := l.current(v, own, now, cycle)
	if err != nil {
		return err
	}
	ownSold, err := ownCycle.Sold.Add(amt)
	if err != nil {
		return err
	}
	if ownSold.GreaterThan(allowance) {
		return fmt.Errorf("%w: %s would sell %s this cycle, allowance %s",
			ErrCycleAllowanceExceeded, seller, ownSold, allowance)
	}

	var (
		groupKey   keylet.Keylet
		groupCycle *entry.SellCycle
	)
	group, linked := l.registry.Group(seller)
	if linked {
		groupKey = keylet.SellGroup(group)
		if groupCycle, err = l.current(v, groupKey, now, cycle); err != nil {
			return err
		}
		groupSold, err := groupCycle.Sold.Add(amt)
		if err != nil {
			return err
		}
		if groupSold.GreaterThan(allowance) {
			return fmt.Errorf("%w: combined cycle sell amount of group %q would be %s, allowance %s",
				ErrGroupAllowanceExceeded, group, groupSold, allowance)
		}
		groupCycle.Sold = groupSold
	}

	ownCycle.Sold = ownSold
	if err := ledger.WriteSellCycle(v, own, ownCycle); err != nil {
		return err
	}
	if linked {
		return ledger.WriteSellCycle(v, groupKey, groupCycle)
	}
	return nil
}

// Remaining returns how much seller may still sell in the current cycle,
// taking its group into account. It does not write.
func (l *SellLimiter) Remaining(v ledger.View, seller account.Address, now time.Time) (amount.Amount, error) {
	allowance, enabled, err := l.Allowance()
	if err != nil {
		return amount.Zero(), err
	}
	if !enabled {
		return l.totalSupply, nil
	}
	cycle := l.registry.Limits().CycleLength

	sc, err := l.current(v, keylet.SellCycle(seller), now, cycle)
	if err != nil {
		return amount.Zero(), err
	}
	sold := sc.Sold
	if group, ok := l.registry.Group(seller); ok {
		gc, err := l.current(v, keylet.SellGroup(group), now, cycle)
		if err != nil {
			return amount.Zero(), err
		}
		if gc.Sold.GreaterThan(sold) {
			sold = gc.Sold
		}
	}
	if sold.GreaterThan(allowance) {
		return amount.Zero(), nil
	}
	return allowance.Sub(sold)
}

// current reads the accumulator at k and rolls it forward to the cycle
// containing now.
func (l *SellLimiter) current(v ledger.View, k keylet.Keylet, now time.Time, cycle time.Duration) (*entry.SellCycle, error) {
	sc, err := ledger.ReadSellCycle(v, k)
	if err != nil {
		return nil, err
	}
	Roll(sc, now, cycle)
	return sc, nil
}

// Roll resets sc if now lies in a later cycle. The new start stays aligned
// to the first cycle: it advances by whole cycles, so a late sell does not
// stretch the window. A fresh accumulator starts at now.
func Roll(sc *entry.SellCycle, now time.Time, cycle time.Duration) {
	ts := now.Unix()
	length := int64(cycle / time.Second)
	if length <= 0 {
		length = 1
	}
	if sc.CycleStart == 0 {
		sc.CycleStart = ts
		sc.Sold = amount.Zero()
		return
	}
	elapsed := ts - sc.CycleStart
	if elapsed < length {
		return
	}
	sc.CycleStart += (elapsed / length) * length
	sc.Sold = amount.Zero()
}
