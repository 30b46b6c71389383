package tax

import (
	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
)

// Share is one beneficiary's cut of a distribution.
type Share struct {
	Role    WalletRole      `json:"role"`
	Address account.Address `json:"address"`
	Percent uint64          `json:"percent"`
	Amount  amount.Amount   `json:"amount"`
}

// Distribution reports what a trigger moved. Skipped is set when the
// withheld balance was below the minimum trigger and nothing moved.
type Distribution struct {
	Withheld    amount.Amount `json:"withheld"`
	Shares      []Share       `json:"shares,omitempty"`
	Distributed amount.Amount `json:"distributed"`
	Remainder   amount.Amount `json:"remainder"`
	Skipped     bool          `json:"skipped"`
}

// Distribute pays each configured beneficiary floor(W*pct/100) of the
// contract's withheld balance W. The remainder stays on the contract.
func Distribute(v ledger.View, reg *Registry, contract account.Address) (*Distribution, error) {
	withheld, err := ledger.Balance(v, contract)
	if err != nil {
		return nil, err
	}
	d := &Distribution{Withheld: withheld, Distributed: amount.Zero(), Remainder: withheld}

	if withheld.IsZero() || withheld.LessThan(reg.Distribution().MinTrigger) {
		d.Skipped = true
		return d, nil
	}

	for _, w := range reg.Wallets() {
		if w.Address.IsZero() || w.Percent == 0 {
			continue
		}
		share, err := withheld.MulDiv(w.Percent, MaxRate)
		if err != nil {
			return nil, err
		}
		if share.IsZero() {
			continue
		}
		if err := ledger.Debit(v, contract, share); err != nil {
			return nil, err
		}
		if err := ledger.Credit(v, w.Address, share); err != nil {
			return nil, err
		}
		if d.Distributed, err = d.Distributed.Add(share); err != nil {
			return nil, err
		}
		d.Shares = append(d.Shares, Share{Role: w.Role, Address: w.Address, Percent: w.Percent, Amount: share})
	}

	d.Remainder, err = withheld.Sub(d.Distributed)
	if err != nil {
		return nil, err
	}
	return d, nil
}
