package token

import (
	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	"github.com/google/uuid"
)

// Name returns the token name
func (t *Token) Name() string {
	return t.engine.Header().Name
}

// Symbol returns the token symbol
func (t *Token) Symbol() string {
	return t.engine.Header().Symbol
}

// Decimals returns the token precision
func (t *Token) Decimals() uint8 {
	return t.engine.Header().Decimals
}

// TotalSupply returns the supply in smallest units. It never changes.
func (t *Token) TotalSupply() amount.Amount {
	return t.engine.Header().TotalSupply
}

// Contract returns the account holding withheld tax.
func (t *Token) Contract() account.Address {
	return t.engine.Header().Contract
}

// Sequence returns the number of committed transactions.
func (t *Token) Sequence() uint64 {
	return t.engine.Header().Sequence
}

// BalanceOf returns the balance of addr.
func (t *Token) BalanceOf(addr account.Address) (amount.Amount, error) {
	var bal amount.Amount
	err := t.engine.Read(func(v ledger.View, _ *tax.Registry) error {
		var err error
		bal, err = ledger.Balance(v, addr)
		return err
	})
	return bal, err
}

// Allowance returns what spender may still move out of owner's account.
func (t *Token) Allowance(owner, spender account.Address) (amount.Amount, error) {
	var out amount.Amount
	err := t.engine.Read(func(v ledger.View, _ *tax.Registry) error {
		var err error
		out, err = ledger.Allowance(v, owner, spender)
		return err
	})
	return out, err
}

// WithheldBalance returns the tax held by the contract awaiting distribution.
func (t *Token) WithheldBalance() (amount.Amount, error) {
	return t.BalanceOf(t.Contract())
}

// Balances returns the balance of every account the ledger has seen, the
// contract included.
func (t *Token) Balances() (map[account.Address]amount.Amount, error) {
	var out map[account.Address]amount.Amount
	err := t.engine.Read(func(v ledger.View, _ *tax.Registry) error {
		var err error
		out, err = ledger.Balances(v)
		return err
	})
	return out, err
}

// Registry returns a snapshot of the tax configuration.
func (t *Token) Registry() *tax.Registry {
	return t.engine.Registry()
}

// Quote previews the tax of a transfer without checking balances or limits.
func (t *Token) Quote(sender, receiver account.Address, amt amount.Amount) (tax.Quote, error) {
	h := t.engine.Header()
	var q tax.Quote
	err := t.engine.Read(func(_ ledger.View, reg *tax.Registry) error {
		var err error
		q, err = tax.NewEngine(reg, h.Contract, h.TotalSupply).Quote(sender, receiver, amt)
		return err
	})
	return q, err
}

// SellAllowanceRemaining returns how much seller may still sell in the
// current cycle, its linked group taken into account.
func (t *Token) SellAllowanceRemaining(seller account.Address) (amount.Amount, error) {
	now := t.engine.Clock().Now()
	supply := t.TotalSupply()
	var out amount.Amount
	err := t.engine.Read(func(v ledger.View, reg *tax.Registry) error {
		var err error
		out, err = tax.NewSellLimiter(reg, supply).Remaining(v, seller, now)
		return err
	})
	return out, err
}

// Receipt returns the journaled result of a submission.
func (t *Token) Receipt(id uuid.UUID) (tx.ApplyResult, bool) {
	return t.engine.Journal().Get(id)
}

// Receipts returns up to n recent results, newest last.
func (t *Token) Receipts(n int) []tx.ApplyResult {
	return t.engine.Journal().Recent(n)
}
