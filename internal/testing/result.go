package testing

import "github.com/LeJamon/goTaxLedger/internal/core/tx"

// TxResult represents the result of applying a transaction.
type TxResult struct {
	// Code is the transaction engine result code (e.g., "tesSUCCESS").
	Code string

	// Success indicates whether the transaction was successfully applied.
	Success bool

	// Message provides additional details about the result.
	Message string

	// Apply is the full engine result, quote and distribution included.
	Apply tx.ApplyResult
}

// Common transaction result codes.
const (
	TesSUCCESS                  = "tesSUCCESS"
	TecUNFUNDED_PAYMENT         = "tecUNFUNDED_PAYMENT"
	TecNO_PERMISSION            = "tecNO_PERMISSION"
	TecALLOWANCE_EXCEEDED       = "tecALLOWANCE_EXCEEDED"
	TecEXCEEDS_LIMIT            = "tecEXCEEDS_LIMIT"
	TecCYCLE_ALLOWANCE_EXCEEDED = "tecCYCLE_ALLOWANCE_EXCEEDED"
	TefINTERNAL                 = "tefINTERNAL"
	TefINVARIANT_FAILED         = "tefINVARIANT_FAILED"
	TemMALFORMED                = "temMALFORMED"
	TemBAD_AMOUNT               = "temBAD_AMOUNT"
	TemBAD_TAX_RATE             = "temBAD_TAX_RATE"
	TemINVALID_CONFIG           = "temINVALID_CONFIG"
)

func resultFrom(r tx.ApplyResult) TxResult {
	return TxResult{
		Code:    r.Result.String(),
		Success: r.Result.IsSuccess(),
		Message: r.Message,
		Apply:   r,
	}
}

// IsSuccess returns true if the transaction succeeded.
func (r TxResult) IsSuccess() bool {
	return r.Code == TesSUCCESS
}

// IsClaimed returns true if the ledger refused a well-formed transaction (tec codes).
func (r TxResult) IsClaimed() bool {
	return r.Apply.Result.IsTec()
}

// IsMalformed returns true if the transaction was malformed (tem codes).
func (r TxResult) IsMalformed() bool {
	return r.Apply.Result.IsTem()
}

// IsFailed returns true if the engine failed (tef codes).
func (r TxResult) IsFailed() bool {
	return r.Apply.Result.IsTef()
}
