// Package transfer implements the token-moving transactions: Transfer,
// TransferFrom and Approve.
package transfer

import (
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeTransfer, func() tx.Transaction {
		return &Transfer{BaseTx: *tx.NewBaseTx(tx.TypeTransfer, account.Zero)}
	})
	tx.Register(tx.TypeTransferFrom, func() tx.Transaction {
		return &TransferFrom{BaseTx: *tx.NewBaseTx(tx.TypeTransferFrom, account.Zero)}
	})
	tx.Register(tx.TypeApprove, func() tx.Transaction {
		return &Approve{BaseTx: *tx.NewBaseTx(tx.TypeApprove, account.Zero)}
	})
}

// Transfer moves Amount from the caller to Destination. Buys and sells
// are taxed; the withheld part lands on the contract account.
type Transfer struct {
	tx.BaseTx `yaml:",inline"`

	Destination account.Address `json:"to" yaml:"to"`
	Amount      amount.Amount   `json:"amount" yaml:"amount"`
}

// NewTransfer creates a new Transfer transaction
func NewTransfer(caller, destination account.Address, amt amount.Amount) *Transfer {
	return &Transfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeTransfer, caller),
		Destination: destination,
		Amount:      amt,
	}
}

// Validate checks the transfer fields
func (t *Transfer) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if err := tx.ValidateAddress("destination", t.Destination); err != nil {
		return err
	}
	return tx.ValidateAmount("amount", t.Amount)
}

// Apply runs the taxed transfer
func (t *Transfer) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.DoTransfer(ctx.Caller, t.Destination, t.Amount)
}

// TransferFrom moves Amount out of Owner's account on the caller's
// allowance. The allowance is charged the gross amount before the
// transfer runs; if the transfer fails the charge is discarded with it.
type TransferFrom struct {
	tx.BaseTx `yaml:",inline"`

	Owner       account.Address `json:"from" yaml:"from"`
	Destination account.Address `json:"to" yaml:"to"`
	Amount      amount.Amount   `json:"amount" yaml:"amount"`
}

// NewTransferFrom creates a new TransferFrom transaction
func NewTransferFrom(caller, owner, destination account.Address, amt amount.Amount) *TransferFrom {
	return &TransferFrom{
		BaseTx:      *tx.NewBaseTx(tx.TypeTransferFrom, caller),
		Owner:       owner,
		Destination: destination,
		Amount:      amt,
	}
}

// Validate checks the transfer fields
func (t *TransferFrom) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if err := tx.ValidateAddress("owner", t.Owner); err != nil {
		return err
	}
	if err := tx.ValidateAddress("destination", t.Destination); err != nil {
		return err
	}
	return tx.ValidateAmount("amount", t.Amount)
}

// Apply spends the allowance, then runs the taxed transfer from the owner
func (t *TransferFrom) Apply(ctx *tx.ApplyContext) tx.Result {
	if err := ledger.SpendAllowance(ctx.View, t.Owner, ctx.Caller, t.Amount); err != nil {
		ctx.Err = err
		return tx.ResultFromError(err)
	}
	return ctx.DoTransfer(t.Owner, t.Destination, t.Amount)
}

// Approve sets the caller's allowance for Spender. It overwrites any
// previous allowance; zero revokes it.
type Approve struct {
	tx.BaseTx `yaml:",inline"`

	Spender account.Address `json:"spender" yaml:"spender"`
	Amount  amount.Amount   `json:"amount" yaml:"amount"`
}

// NewApprove creates a new Approve transaction
func NewApprove(caller, spender account.Address, amt amount.Amount) *Approve {
	return &Approve{
		BaseTx:  *tx.NewBaseTx(tx.TypeApprove, caller),
		Spender: spender,
		Amount:  amt,
	}
}

// Validate checks the approve fields
func (a *Approve) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	return tx.ValidateAddress("spender", a.Spender)
}

// Apply overwrites the allowance
func (a *Approve) Apply(ctx *tx.ApplyContext) tx.Result {
	if ctx.Caller == ctx.Contract {
		ctx.Err = fmt.Errorf("%w: contract cannot approve spenders", tax.ErrContractFunds)
		return tx.TecNO_PERMISSION
	}
	if err := ledger.SetAllowance(ctx.View, ctx.Caller, a.Spender, a.Amount); err != nil {
		ctx.Err = err
		return tx.ResultFromError(err)
	}
	return tx.TesSUCCESS
}
