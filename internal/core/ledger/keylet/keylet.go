package keylet

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/entry"
)

// Space identifiers for keylet generation
const (
	spaceAccount   uint16 = 'a' // Account root
	spaceAllowance uint16 = 'l' // Allowance (owner, spender)
	spaceSellCycle uint16 = 'c' // Per-address sell accumulator
	spaceSellGroup uint16 = 'g' // Linked seller group accumulator
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key as the first half of SHA-512 over the
// 2-byte big-endian space followed by the provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	h := sha512.New()
	var spaceBytes [2]byte
	binary.BigEndian.PutUint16(spaceBytes[:], space)
	h.Write(spaceBytes[:])
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Account returns the keylet for an account root entry.
func Account(addr account.Address) Keylet {
	return Keylet{
		Type: entry.TypeAccountRoot,
		Key:  indexHash(spaceAccount, addr[:]),
	}
}

// Allowance returns the keylet for the allowance owner granted spender.
func Allowance(owner, spender account.Address) Keylet {
	return Keylet{
		Type: entry.TypeAllowance,
		Key:  indexHash(spaceAllowance, owner[:], spender[:]),
	}
}

// SellCycle returns the keylet for an address's own sell accumulator.
func SellCycle(addr account.Address) Keylet {
	return Keylet{
		Type: entry.TypeSellCycle,
		Key:  indexHash(spaceSellCycle, addr[:]),
	}
}

// SellGroup returns the keylet for the combined accumulator of a linked
// seller group.
func SellGroup(group string) Keylet {
	return Keylet{
		Type: entry.TypeSellCycle,
		Key:  indexHash(spaceSellGroup, []byte(group)),
	}
}
