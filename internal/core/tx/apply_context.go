package tx

import (
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"go.uber.org/zap"
)

// ApplyContext provides all the state and helpers needed to apply a transaction.
// It is passed to Transaction.Apply() instead of individual parameters.
type ApplyContext struct {
	// View provides read/write access to ledger state (a Sandbox)
	View ledger.View

	// Registry is the tax configuration. For registry writers it is a
	// working copy committed only on success.
	Registry *tax.Registry

	// Caller is the account that submitted the transaction
	Caller account.Address

	// Contract is the account holding withheld tax
	Contract account.Address

	// TotalSupply is fixed at genesis
	TotalSupply amount.Amount

	// Now is the engine clock reading for this transaction
	Now time.Time

	// Logger is scoped to the transaction
	Logger *zap.Logger

	// Transfer is set by transactions that moved tokens
	Transfer *tax.Quote

	// Distribution is set by TriggerTax
	Distribution *tax.Distribution

	// Err is the error behind a failed result, reported in the journal
	Err error
}

// TaxEngine returns a tax engine over the context's registry.
func (ctx *ApplyContext) TaxEngine() *tax.Engine {
	return tax.NewEngine(ctx.Registry, ctx.Contract, ctx.TotalSupply)
}

// DoTransfer runs a taxed transfer through the staged view and records its
// quote. The result code reflects the first failed check.
func (ctx *ApplyContext) DoTransfer(sender, receiver account.Address, amt amount.Amount) Result {
	q, err := ctx.TaxEngine().Transfer(ctx.View, sender, receiver, amt, ctx.Now)
	if err != nil {
		ctx.Logger.Debug("transfer refused",
			zap.Stringer("sender", sender),
			zap.Stringer("receiver", receiver),
			zap.Stringer("amount", amt),
			zap.Error(err),
		)
		ctx.Err = err
		return ResultFromError(err)
	}
	ctx.Transfer = &q
	return TesSUCCESS
}

// SetRegistry applies a registry mutation and maps its error.
func (ctx *ApplyContext) SetRegistry(fn func(r *tax.Registry) error) Result {
	if err := fn(ctx.Registry); err != nil {
		ctx.Logger.Debug("configuration refused", zap.Error(err))
		ctx.Err = err
		return ResultFromError(err)
	}
	return TesSUCCESS
}
