package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "plain", input: "12345", expected: "12345"},
		{name: "separators", input: "1_000_000", expected: "1000000"},
		{name: "exponent", input: "97e8", expected: "9700000000"},
		{name: "token units", input: "1e18", expected: "1000000000000000000"},
		{name: "one trillion tokens", input: "1000000000000e18", expected: "1000000000000000000000000000000"},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "fraction", input: "1.5", wantErr: true},
		{name: "bad exponent", input: "1ex", wantErr: true},
		{name: "missing exponent", input: "1e", wantErr: true},
		{name: "missing exponent upper", input: "5E", wantErr: true},
		{name: "exponent overflow", input: "1e78", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a, b := New(700), New(300)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, New(1000), sum)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, New(400), diff)

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, ErrUnderflow)

	max := MustParse("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	_, err = max.Add(New(1))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMulDivTruncates(t *testing.T) {
	tests := []struct {
		amount   uint64
		num, den uint64
		expected uint64
	}{
		{amount: 10_000, num: 3, den: 100, expected: 300},
		{amount: 99, num: 3, den: 100, expected: 2},
		{amount: 1, num: 99, den: 100, expected: 0},
		{amount: 12_345, num: 100, den: 10_000, expected: 123},
		{amount: 0, num: 50, den: 100, expected: 0},
	}

	for _, tt := range tests {
		got, err := New(tt.amount).MulDiv(tt.num, tt.den)
		require.NoError(t, err)
		assert.Equal(t, New(tt.expected), got, "%d * %d / %d", tt.amount, tt.num, tt.den)
	}

	_, err := New(1).MulDiv(1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestMulDivWideIntermediate(t *testing.T) {
	// a*num exceeds 256 bits here; only the quotient has to fit.
	big := MustParse("1e76")
	got, err := big.MulDiv(100, 1000)
	require.NoError(t, err)
	assert.Equal(t, MustParse("1e75"), got)
}

func TestUnits(t *testing.T) {
	assert.Equal(t, MustParse("9700000000000000000000000000"), Units(9_700_000_000, 18))
	assert.Equal(t, New(5), Units(5, 0))
	assert.Panics(t, func() { Units(1, 78) })
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "9700000000", Units(9_700_000_000, 18).Format(18))
	assert.Equal(t, "0.5", New(5).Format(1))
	assert.Equal(t, "0.000000001", New(1).Format(9))
	assert.Equal(t, "12", New(12).Format(0))
	assert.Equal(t, "0", Zero().Format(18))
}

func TestCompare(t *testing.T) {
	assert.True(t, New(1).LessThan(New(2)))
	assert.True(t, New(3).GreaterThan(New(2)))
	assert.Equal(t, 0, New(2).Cmp(New(2)))
	assert.True(t, Zero().IsZero())
	assert.False(t, New(1).IsZero())
}

func TestBinaryAndTextEncoding(t *testing.T) {
	a := Units(300_000_000, 18)

	bin, err := a.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, bin, 32)

	var decoded Amount
	require.NoError(t, decoded.UnmarshalBinary(bin))
	assert.Equal(t, a, decoded)
	assert.Error(t, decoded.UnmarshalBinary([]byte{1, 2, 3}))

	text, err := a.MarshalText()
	require.NoError(t, err)
	var fromText Amount
	require.NoError(t, fromText.UnmarshalText(text))
	assert.Equal(t, a, fromText)
	assert.NoError(t, fromText.UnmarshalText([]byte("3e8")))
	assert.Equal(t, New(300_000_000), fromText)
}
