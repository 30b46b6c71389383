// Package distribution implements TriggerTax, which pays the withheld tax
// out to the beneficiary wallets.
package distribution

import (
	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeTriggerTax, func() tx.Transaction {
		return &TriggerTax{BaseTx: *tx.NewBaseTx(tx.TypeTriggerTax, account.Zero)}
	})
}

// TriggerTax distributes the contract's withheld balance. Below the
// minimum trigger it succeeds without moving anything.
type TriggerTax struct {
	tx.BaseTx `yaml:",inline"`
}

// NewTriggerTax creates a new TriggerTax transaction
func NewTriggerTax(caller account.Address) *TriggerTax {
	return &TriggerTax{BaseTx: *tx.NewBaseTx(tx.TypeTriggerTax, caller)}
}

// Authorize admits anyone when the policy is permissionless and only the
// operator otherwise.
func (t *TriggerTax) Authorize(reg *tax.Registry, caller account.Address) tx.Result {
	if reg.Distribution().Permissionless || reg.IsOperator(caller) {
		return tx.TesSUCCESS
	}
	return tx.TecNO_PERMISSION
}

// Apply runs the distribution
func (t *TriggerTax) Apply(ctx *tx.ApplyContext) tx.Result {
	d, err := tax.Distribute(ctx.View, ctx.Registry, ctx.Contract)
	if err != nil {
		ctx.Err = err
		return tx.ResultFromError(err)
	}
	ctx.Distribution = d
	return tx.TesSUCCESS
}
