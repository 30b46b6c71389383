// Package account defines ledger account addresses.
package account

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// AddressLength is the size of an account address in bytes.
const AddressLength = 20

// ErrInvalidAddress is returned when address text cannot be decoded.
var ErrInvalidAddress = errors.New("invalid address")

// Address identifies an account. The zero value is the zero address, which
// never holds a balance.
type Address [AddressLength]byte

// Zero is the zero address.
var Zero Address

// FromName derives a deterministic address from a name. The same name always
// yields the same address, which keeps scenarios and tests reproducible.
func FromName(name string) Address {
	sum := sha512.Sum512([]byte(name))
	var a Address
	copy(a[:], sum[:AddressLength])
	return a
}

// Parse decodes "0x"-prefixed hex, bare hex, or an "@name" alias (see FromName).
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "@"); ok {
		if name == "" {
			return Address{}, fmt.Errorf("%w: empty alias", ErrInvalidAddress)
		}
		return FromName(name), nil
	}

	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != AddressLength*2 {
		return Address{}, fmt.Errorf("%w %q: expected %d hex characters", ErrInvalidAddress, s, AddressLength*2)
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(raw)); err != nil {
		return Address{}, fmt.Errorf("%w %q: %v", ErrInvalidAddress, s, err)
	}
	return a, nil
}

// MustParse is Parse that panics on error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Zero
}

// String returns the lowercase "0x"-prefixed hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Short returns an abbreviated form for log lines.
func (a Address) Short() string {
	s := hex.EncodeToString(a[:])
	return "0x" + s[:6] + ".." + s[len(s)-4:]
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and accepts every form
// Parse accepts.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
