// Package ledger is the ledger store: balances, allowances and sell-cycle
// accumulators kept as encoded entries under keylet keys.
//
// Ledger is the committed base state. Every operation works on a Sandbox
// stacked on top of it and only reaches the Ledger through Sandbox.Apply,
// so a rejected operation leaves nothing behind.
package ledger

import (
	"bytes"
	"slices"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/header"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/keylet"
)

type stateItem struct {
	keylet keylet.Keylet
	data   []byte
}

// Ledger is the in-memory committed state of the token.
type Ledger struct {
	Header header.LedgerHeader
	state  map[[32]byte]stateItem
}

// New creates an empty ledger for the given header. Genesis funds the
// initial holder; see package genesis.
func New(h header.LedgerHeader) *Ledger {
	return &Ledger{
		Header: h,
		state:  make(map[[32]byte]stateItem),
	}
}

// Sequence returns the number of committed transactions.
func (l *Ledger) Sequence() uint64 {
	return l.Header.Sequence
}

// Advance bumps the sequence after a commit.
func (l *Ledger) Advance() {
	l.Header.Sequence++
}

// TotalSupply returns the fixed supply.
func (l *Ledger) TotalSupply() amount.Amount {
	return l.Header.TotalSupply
}

// Contract returns the token contract's own address.
func (l *Ledger) Contract() account.Address {
	return l.Header.Contract
}

// Read implements View.
func (l *Ledger) Read(k keylet.Keylet) ([]byte, error) {
	item, ok := l.state[k.Key]
	if !ok {
		return nil, nil
	}
	return item.data, nil
}

// Exists implements View.
func (l *Ledger) Exists(k keylet.Keylet) (bool, error) {
	_, ok := l.state[k.Key]
	return ok, nil
}

// Insert implements View.
func (l *Ledger) Insert(k keylet.Keylet, data []byte) error {
	if _, ok := l.state[k.Key]; ok {
		return ErrEntryExists
	}
	l.state[k.Key] = stateItem{keylet: k, data: data}
	return nil
}

// Update implements View.
func (l *Ledger) Update(k keylet.Keylet, data []byte) error {
	item, ok := l.state[k.Key]
	if !ok {
		return ErrEntryNotFound
	}
	item.data = data
	l.state[k.Key] = item
	return nil
}

// Erase implements View.
func (l *Ledger) Erase(k keylet.Keylet) error {
	if _, ok := l.state[k.Key]; !ok {
		return ErrEntryNotFound
	}
	delete(l.state, k.Key)
	return nil
}

// ForEach implements View.
func (l *Ledger) ForEach(fn func(k keylet.Keylet, data []byte) bool) error {
	keys := make([][32]byte, 0, len(l.state))
	for key := range l.state {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b [32]byte) int { return bytes.Compare(a[:], b[:]) })

	for _, key := range keys {
		item := l.state[key]
		if !fn(item.keylet, item.data) {
			return nil
		}
	}
	return nil
}

// Len returns the number of state entries.
func (l *Ledger) Len() int {
	return len(l.state)
}
