package ledger

import (
	"errors"

	"github.com/LeJamon/goTaxLedger/internal/core/ledger/keylet"
)

var (
	// ErrEntryExists is returned by Insert when the key is already present.
	ErrEntryExists = errors.New("entry already exists")

	// ErrEntryNotFound is returned by Update and Erase for absent keys.
	ErrEntryNotFound = errors.New("entry not found")
)

// View provides read/write access to ledger state
type View interface {
	// Read reads a ledger entry. It returns nil, nil for absent entries.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries in key order.
	// If fn returns false, iteration stops early
	ForEach(fn func(k keylet.Keylet, data []byte) bool) error
}
