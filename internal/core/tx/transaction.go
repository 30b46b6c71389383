package tx

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
)

// Common errors
var (
	ErrMissingCaller = errors.New("missing caller")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks the transaction without looking at the ledger.
	// Errors are mapped to tem codes.
	Validate() error

	// Apply runs the transaction against the staged state in ctx.
	Apply(ctx *ApplyContext) Result
}

// Authorizer is implemented by transactions that restrict who may submit
// them. The engine calls Authorize before preflight.
type Authorizer interface {
	Authorize(reg *tax.Registry, caller account.Address) Result
}

// RegistryWriter is implemented by transactions that change the tax
// registry. The engine hands them a working copy and commits it on success.
type RegistryWriter interface {
	WritesRegistry()
}

// Common contains fields common to all transaction types
type Common struct {
	// Caller is the account submitting the transaction; for transfers it is
	// the implicit sender.
	Caller account.Address `json:"caller" yaml:"caller"`

	// Memo is free text carried into the journal.
	Memo string `json:"memo,omitempty" yaml:"memo,omitempty"`
}

// BaseTx provides the common fields and the default validation.
type BaseTx struct {
	Common `yaml:",inline"`
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common transaction fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the base transaction
func (b *BaseTx) Validate() error {
	if b.Caller.IsZero() {
		return fmt.Errorf("%w: %w", TemMALFORMED, ErrMissingCaller)
	}
	return nil
}

// NewBaseTx creates a new BaseTx
func NewBaseTx(txType Type, caller account.Address) *BaseTx {
	return &BaseTx{
		Common: Common{Caller: caller},
		txType: txType,
	}
}

// OperatorTx is embedded by transactions only the registry operator may submit.
type OperatorTx struct {
	BaseTx `yaml:",inline"`
}

// NewOperatorTx creates a new OperatorTx
func NewOperatorTx(txType Type, caller account.Address) *OperatorTx {
	return &OperatorTx{BaseTx: *NewBaseTx(txType, caller)}
}

// Authorize rejects every caller but the operator.
func (o *OperatorTx) Authorize(reg *tax.Registry, caller account.Address) Result {
	if !reg.IsOperator(caller) {
		return TecNO_PERMISSION
	}
	return TesSUCCESS
}

// WritesRegistry marks operator transactions as registry writers.
func (o *OperatorTx) WritesRegistry() {}

// ValidateAmount rejects zero amounts.
func ValidateAmount(field string, amt amount.Amount) error {
	if amt.IsZero() {
		return fmt.Errorf("%w: %w: %s must be positive", TemBAD_AMOUNT, ErrInvalidAmount, field)
	}
	return nil
}

// ValidateAddress rejects the zero address.
func ValidateAddress(field string, addr account.Address) error {
	if addr.IsZero() {
		return fmt.Errorf("%w: %s is the zero address", TemMALFORMED, field)
	}
	return nil
}
