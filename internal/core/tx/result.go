package tx

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
)

// Result represents a transaction result code
type Result int

// Transaction result codes, organized by category: tes, tec, tef, tem
const (
	// tesSUCCESS (0)
	TesSUCCESS Result = 0

	// tec codes (100-199)
	// The transaction was well formed but the ledger refused it
	TecUNFUNDED_PAYMENT         Result = 104
	TecNO_PERMISSION            Result = 139
	TecALLOWANCE_EXCEEDED       Result = 174
	TecEXCEEDS_LIMIT            Result = 175
	TecCYCLE_ALLOWANCE_EXCEEDED Result = 176

	// tef codes (-199 to -100)
	// The engine failed; nothing was applied
	TefINTERNAL         Result = -192
	TefINVARIANT_FAILED Result = -182

	// tem codes (-299 to -200)
	// Malformed transaction
	TemMALFORMED      Result = -299
	TemBAD_AMOUNT     Result = -298
	TemBAD_TAX_RATE   Result = -251
	TemINVALID_CONFIG Result = -250
)

// String returns the string representation of the result code
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecUNFUNDED_PAYMENT:
		return "tecUNFUNDED_PAYMENT"
	case TecNO_PERMISSION:
		return "tecNO_PERMISSION"
	case TecALLOWANCE_EXCEEDED:
		return "tecALLOWANCE_EXCEEDED"
	case TecEXCEEDS_LIMIT:
		return "tecEXCEEDS_LIMIT"
	case TecCYCLE_ALLOWANCE_EXCEEDED:
		return "tecCYCLE_ALLOWANCE_EXCEEDED"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TefINVARIANT_FAILED:
		return "tefINVARIANT_FAILED"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemBAD_TAX_RATE:
		return "temBAD_TAX_RATE"
	case TemINVALID_CONFIG:
		return "temINVALID_CONFIG"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// Message returns a human-readable message for the result code
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecUNFUNDED_PAYMENT:
		return "Insufficient balance to send."
	case TecNO_PERMISSION:
		return "No permission to perform requested operation."
	case TecALLOWANCE_EXCEEDED:
		return "Spender allowance is insufficient."
	case TecEXCEEDS_LIMIT:
		return "Transfer exceeds the max wallet or max transaction limit."
	case TecCYCLE_ALLOWANCE_EXCEEDED:
		return "Sell exceeds the allowance of the current cycle."
	case TefINTERNAL:
		return "Internal error."
	case TefINVARIANT_FAILED:
		return "A ledger invariant failed; the transaction was discarded."
	case TemMALFORMED:
		return "Malformed transaction."
	case TemBAD_AMOUNT:
		return "Can only send positive amounts."
	case TemBAD_TAX_RATE:
		return "Tax rate out of range or below its sub-allocations."
	case TemINVALID_CONFIG:
		return "Configuration value out of range."
	default:
		return "Unknown result."
	}
}

// Error makes Result usable as an error, so callers can match codes with
// errors.Is.
func (r Result) Error() string {
	return r.String()
}

// MarshalText encodes the result as its code name
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ResultFromName returns the result code for a name such as "tesSUCCESS"
func ResultFromName(name string) (Result, bool) {
	for _, r := range allResults {
		if r.String() == name {
			return r, true
		}
	}
	return 0, false
}

var allResults = []Result{
	TesSUCCESS,
	TecUNFUNDED_PAYMENT, TecNO_PERMISSION, TecALLOWANCE_EXCEEDED, TecEXCEEDS_LIMIT, TecCYCLE_ALLOWANCE_EXCEEDED,
	TefINTERNAL, TefINVARIANT_FAILED,
	TemMALFORMED, TemBAD_AMOUNT, TemBAD_TAX_RATE, TemINVALID_CONFIG,
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (claimed cost) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsApplied returns true if the transaction changed the ledger.
// Unlike a fee-charging network, a tec result leaves no trace here.
func (r Result) IsApplied() bool {
	return r == TesSUCCESS
}

// ResultFromError maps an error from the ledger or tax packages onto a
// result code. Unrecognized errors are internal failures.
func ResultFromError(err error) Result {
	var r Result
	switch {
	case err == nil:
		return TesSUCCESS
	case errors.As(err, &r):
		return r
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return TecUNFUNDED_PAYMENT
	case errors.Is(err, ledger.ErrInsufficientAllowance):
		return TecALLOWANCE_EXCEEDED
	case errors.Is(err, tax.ErrExceedsLimit):
		return TecEXCEEDS_LIMIT
	case errors.Is(err, tax.ErrCycleAllowanceExceeded):
		return TecCYCLE_ALLOWANCE_EXCEEDED
	case errors.Is(err, tax.ErrContractFunds):
		return TecNO_PERMISSION
	case errors.Is(err, tax.ErrInvalidRate):
		return TemBAD_TAX_RATE
	case errors.Is(err, tax.ErrInvalidConfiguration):
		return TemINVALID_CONFIG
	case errors.Is(err, amount.ErrOverflow), errors.Is(err, amount.ErrInvalidAmount):
		return TemBAD_AMOUNT
	default:
		return TefINTERNAL
	}
}
