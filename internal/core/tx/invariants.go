package tx

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/entry"
)

// ErrInvariantViolated is returned when staged changes would break a
// ledger invariant.
var ErrInvariantViolated = errors.New("invariant violated")

// CheckInvariants inspects the staged changes of sb before commit. Token
// balances may only move between accounts: the sum of balances before and
// after must match.
func CheckInvariants(sb *ledger.Sandbox) error {
	before, after := amount.Zero(), amount.Zero()

	err := sb.Changes(func(e ledger.TrackedEntry) error {
		if e.Keylet.Type != entry.TypeAccountRoot {
			return nil
		}
		var err error
		if e.Original != nil {
			if before, err = addBalance(before, e.Original); err != nil {
				return err
			}
		}
		if e.Action != ledger.ActionErase {
			if after, err = addBalance(after, e.Current); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if before != after {
		return fmt.Errorf("%w: balances before %s, after %s", ErrInvariantViolated, before, after)
	}
	return nil
}

func addBalance(sum amount.Amount, data []byte) (amount.Amount, error) {
	var root entry.AccountRoot
	if err := entry.Decode(data, &root); err != nil {
		return sum, err
	}
	return sum.Add(root.Balance)
}
