package header

import (
	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
)

// LedgerHeader describes the token a ledger tracks. Everything except
// Sequence is fixed at genesis.
type LedgerHeader struct {
	Name     string
	Symbol   string
	Decimals uint8

	// TotalSupply never changes after genesis; the sum of every balance,
	// the contract's included, must equal it.
	TotalSupply amount.Amount

	// Contract is the token contract's own account, which holds withheld tax.
	Contract account.Address

	// Sequence counts committed transactions.
	Sequence uint64
}
