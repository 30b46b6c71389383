package tax

import "github.com/LeJamon/goTaxLedger/internal/core/account"

// Category is the kind of a transfer as seen by the tax engine.
type Category int

const (
	// Normal transfers do not touch an LP address, or touch LPs on both sides.
	Normal Category = iota
	// Buy transfers come out of an LP address.
	Buy
	// Sell transfers go into an LP address.
	Sell
)

// String returns the category name
func (c Category) String() string {
	switch c {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "normal"
	}
}

// MarshalText encodes the category name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify labels a transfer from sender to receiver. LP to LP is Normal.
func (r *Registry) Classify(sender, receiver account.Address) Category {
	fromLP, toLP := r.IsLP(sender), r.IsLP(receiver)
	switch {
	case fromLP && !toLP:
		return Buy
	case toLP && !fromLP:
		return Sell
	default:
		return Normal
	}
}

// RateFor returns the total rate a transfer from sender to receiver pays.
// Normal transfers and transfers with a fee-exempt party pay nothing.
func (r *Registry) RateFor(sender, receiver account.Address) (Category, uint64) {
	cat := r.Classify(sender, receiver)
	if r.Exemptions(sender).Fee || r.Exemptions(receiver).Fee {
		return cat, 0
	}
	switch cat {
	case Buy:
		return cat, r.buy.Total
	case Sell:
		return cat, r.sell.Total
	default:
		return cat, 0
	}
}
