// Package entry defines the ledger state entries and their encoding.
package entry

import (
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	TypeAccountRoot Type = 0x0061 // Balances
	TypeAllowance   Type = 0x006c // Delegated spending allowances
	TypeSellCycle   Type = 0x0063 // Sell-cycle accumulators (per address and per seller group)
)

// String returns the entry type name
func (t Type) String() string {
	switch t {
	case TypeAccountRoot:
		return "AccountRoot"
	case TypeAllowance:
		return "Allowance"
	case TypeSellCycle:
		return "SellCycle"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
	}
}

// AccountRoot holds an account's balance. The token contract's own account
// is an ordinary AccountRoot; its balance is the withheld tax.
type AccountRoot struct {
	Account account.Address `codec:"account"`
	Balance amount.Amount   `codec:"balance"`
}

// Allowance is the remaining amount Spender may move out of Owner's account.
type Allowance struct {
	Owner   account.Address `codec:"owner"`
	Spender account.Address `codec:"spender"`
	Amount  amount.Amount   `codec:"amount"`
}

// SellCycle accumulates sell volume within the cycle starting at CycleStart
// (unix seconds).
type SellCycle struct {
	Sold       amount.Amount `codec:"sold"`
	CycleStart int64         `codec:"cycle_start"`
}
