// Package amount implements the token amount type used across the ledger.
//
// Amounts are unsigned 256-bit integers counted in the token's smallest
// unit. A supply of one trillion tokens with 18 decimals does not fit in a
// uint64, so the type wraps github.com/holiman/uint256 and exposes checked
// arithmetic only.
package amount

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow is returned when an operation exceeds 2^256-1.
	ErrOverflow = errors.New("amount overflow")

	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("amount underflow")

	// ErrDivisionByZero is returned by MulDiv with a zero denominator.
	ErrDivisionByZero = errors.New("amount division by zero")

	// ErrInvalidAmount is returned when parsing malformed text.
	ErrInvalidAmount = errors.New("invalid amount")
)

// MaxDecimals bounds token precision so that any uint64 count of whole
// tokens still fits after scaling.
const MaxDecimals = 57

// Amount is a non-negative token quantity in smallest units.
// The zero value is zero and Amounts are comparable with ==.
type Amount struct {
	v uint256.Int
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

// New returns an amount of n smallest units.
func New(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// Units returns whole * 10^decimals. It panics if decimals exceeds
// MaxDecimals, which is the only way the product can overflow.
func Units(whole uint64, decimals uint8) Amount {
	a, err := New(whole).Scale(decimals)
	if err != nil {
		panic(fmt.Sprintf("amount.Units(%d, %d): %v", whole, decimals, err))
	}
	return a
}

// Parse reads a decimal integer, optionally followed by an exponent
// ("10000000000e18"). Underscores are accepted as digit separators.
func Parse(s string) (Amount, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	mantissa, exp := s, ""
	i := strings.IndexAny(s, "eE")
	if i >= 0 {
		mantissa, exp = s[:i], s[i+1:]
	}

	v, err := uint256.FromDecimal(mantissa)
	if err != nil {
		return Amount{}, fmt.Errorf("%w %q: %v", ErrInvalidAmount, s, err)
	}
	a := Amount{v: *v}

	if i < 0 {
		return a, nil
	}
	if exp == "" {
		return Amount{}, fmt.Errorf("%w %q: missing exponent", ErrInvalidAmount, s)
	}
	e, err := strconv.ParseUint(exp, 10, 8)
	if err != nil {
		return Amount{}, fmt.Errorf("%w %q: bad exponent", ErrInvalidAmount, s)
	}
	scaled, err := a.Scale(uint8(e))
	if err != nil {
		return Amount{}, fmt.Errorf("%w %q: %v", ErrInvalidAmount, s, err)
	}
	return scaled, nil
}

// MustParse is Parse that panics on error. Intended for tests and constants.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) (Amount, error) {
	var r Amount
	if _, overflow := r.v.AddOverflow(&a.v, &b.v); overflow {
		return Amount{}, ErrOverflow
	}
	return r, nil
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) (Amount, error) {
	var r Amount
	if _, underflow := r.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, ErrUnderflow
	}
	return r, nil
}

// MulDiv returns floor(a * num / den). The intermediate product is 512 bits
// wide so only the final quotient can overflow.
func (a Amount) MulDiv(num, den uint64) (Amount, error) {
	if den == 0 {
		return Amount{}, ErrDivisionByZero
	}
	var r Amount
	n, d := uint256.NewInt(num), uint256.NewInt(den)
	if _, overflow := r.v.MulDivOverflow(&a.v, n, d); overflow {
		return Amount{}, ErrOverflow
	}
	return r, nil
}

// Scale returns a * 10^decimals.
func (a Amount) Scale(decimals uint8) (Amount, error) {
	if decimals > 77 {
		return Amount{}, ErrOverflow
	}
	var factor uint256.Int
	factor.Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
	var r Amount
	if _, overflow := r.v.MulOverflow(&a.v, &factor); overflow {
		return Amount{}, ErrOverflow
	}
	return r, nil
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.v.Lt(&b.v)
}

// GreaterThan reports whether a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a.v.Gt(&b.v)
}

// IsZero reports whether a is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Float64 returns the nearest float64. Only for metrics and display.
func (a Amount) Float64() float64 {
	return a.v.Float64()
}

// String returns the decimal representation in smallest units.
func (a Amount) String() string {
	return a.v.Dec()
}

// Format renders the amount in whole tokens with the given precision,
// trimming trailing zeros ("9700000000", "0.5").
func (a Amount) Format(decimals uint8) string {
	s := a.v.Dec()
	if decimals == 0 {
		return s
	}
	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	whole, frac := s[:len(s)-d], strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// MarshalBinary encodes the amount as 32 big-endian bytes.
func (a Amount) MarshalBinary() ([]byte, error) {
	b := a.v.Bytes32()
	return b[:], nil
}

// UnmarshalBinary decodes 32 big-endian bytes.
func (a *Amount) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidAmount, len(data))
	}
	a.v.SetBytes32(data)
	return nil
}

// MarshalText encodes the amount in decimal.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.v.Dec()), nil
}

// UnmarshalText accepts everything Parse accepts.
func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
