package entry

import (
	"testing"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Amount keeps its value in an unexported field, so the codec must go
// through MarshalBinary; a silent struct encode would lose the balance.
func TestAccountRootKeepsBalance(t *testing.T) {
	root := AccountRoot{
		Account: account.FromName("alice"),
		Balance: amount.MustParse("9700000000e18"),
	}

	data, err := Encode(&root)
	require.NoError(t, err)

	var decoded AccountRoot
	require.NoError(t, Decode(data, &decoded))
	assert.Equal(t, root, decoded)
}

func TestCanonicalEncoding(t *testing.T) {
	a := Allowance{Owner: account.FromName("a"), Spender: account.FromName("b"), Amount: amount.New(42)}

	first, err := Encode(&a)
	require.NoError(t, err)
	second, err := Encode(&a)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeGarbage(t *testing.T) {
	var sc SellCycle
	assert.Error(t, Decode([]byte{0xc1}, &sc))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "AccountRoot", TypeAccountRoot.String())
	assert.Equal(t, "SellCycle", TypeSellCycle.String())
	assert.Equal(t, "Unknown(0x0001)", Type(1).String())
}
