package testing

import (
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
)

// Account represents a named test account. The address is derived from the
// name, so the same name always yields the same account.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// Address is the ledger address derived from Name.
	Address account.Address
}

// NewAccount creates a new test account with a deterministic address derived from the name.
func NewAccount(name string) *Account {
	return &Account{Name: name, Address: account.FromName(name)}
}

// OperatorAccount returns the account that receives the supply in the
// default genesis ledger.
func OperatorAccount() *Account {
	return NewAccount(genesis.OperatorSeed)
}

// ContractAccount returns the default contract account.
func ContractAccount() *Account {
	return NewAccount(genesis.ContractSeed)
}

// Human returns the "@name" alias that account.Parse resolves to Address.
func (a *Account) Human() string {
	return "@" + a.Name
}

// String returns a string representation of the account.
func (a *Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Address.Short())
}
