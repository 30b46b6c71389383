package testing

import (
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
)

// Tokens converts whole tokens to smallest units at the default precision.
// For example, Tokens(1) returns 10^18 units.
func Tokens(n uint64) amount.Amount {
	return amount.Units(n, genesis.DefaultDecimals)
}

// Units returns n smallest units.
// This is a convenience function for clarity when specifying raw amounts.
func Units(n uint64) amount.Amount {
	return amount.New(n)
}

// Percent returns floor(a*pct/100), the withheld part of a at a tax rate.
func Percent(a amount.Amount, pct uint64) amount.Amount {
	out, err := a.MulDiv(pct, 100)
	if err != nil {
		panic(err)
	}
	return out
}

// Sub returns a-b and panics on underflow.
func Sub(a, b amount.Amount) amount.Amount {
	out, err := a.Sub(b)
	if err != nil {
		panic(err)
	}
	return out
}
