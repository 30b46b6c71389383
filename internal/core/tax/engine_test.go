package tax

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	contract = account.FromName("contract")
	now      = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

const supply = 1_000_000

// newTestEngine funds alice with the whole supply and marks pool as an LP.
func newTestEngine(t *testing.T) (*Engine, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(header.LedgerHeader{
		Name:        "Test",
		Symbol:      "TST",
		TotalSupply: amount.New(supply),
		Contract:    contract,
	})
	require.NoError(t, ledger.Credit(l, alice, amount.New(supply)))

	reg := NewRegistry(operator)
	require.NoError(t, reg.SetLP(pool, true))
	return NewEngine(reg, contract, amount.New(supply)), l
}

func balance(t *testing.T, v ledger.View, addr account.Address) amount.Amount {
	t.Helper()
	b, err := ledger.Balance(v, addr)
	require.NoError(t, err)
	return b
}

func TestClassify(t *testing.T) {
	r := NewRegistry(operator)
	require.NoError(t, r.SetLP(pool, true))
	require.NoError(t, r.SetLP(pool2, true))

	tests := []struct {
		name     string
		from, to account.Address
		want     Category
	}{
		{"user to user", alice, bob, Normal},
		{"lp to user", pool, alice, Buy},
		{"user to lp", alice, pool, Sell},
		{"lp to lp", pool, pool2, Normal},
		{"self", alice, alice, Normal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(tt.from, tt.to))
		})
	}
}

func TestQuoteRates(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Registry.SetTax(DirectionBuy, 2))
	require.NoError(t, e.Registry.SetTax(DirectionSell, 3))

	q, err := e.Quote(alice, bob, amount.New(1000))
	require.NoError(t, err)
	assert.Equal(t, Normal, q.Category)
	assert.True(t, q.Withheld.IsZero())
	assert.Equal(t, amount.New(1000), q.Net)

	q, err = e.Quote(pool, alice, amount.New(1000))
	require.NoError(t, err)
	assert.Equal(t, Buy, q.Category)
	assert.Equal(t, amount.New(20), q.Withheld)

	q, err = e.Quote(alice, pool, amount.New(1000))
	require.NoError(t, err)
	assert.Equal(t, Sell, q.Category)
	assert.Equal(t, uint64(3), q.Rate)
	assert.Equal(t, amount.New(30), q.Withheld)
	assert.Equal(t, amount.New(970), q.Net)
}

func TestQuoteFeeExemptEitherSide(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Registry.SetTax(DirectionSell, 10))
	require.NoError(t, e.Registry.SetTax(DirectionBuy, 10))

	require.NoError(t, e.Registry.SetExemptions(alice, Exemptions{Fee: true}))
	q, err := e.Quote(alice, pool, amount.New(500))
	require.NoError(t, err)
	assert.Equal(t, Sell, q.Category)
	assert.True(t, q.Withheld.IsZero())

	require.NoError(t, e.Registry.SetExemptions(alice, Exemptions{}))
	require.NoError(t, e.Registry.SetExemptions(pool, Exemptions{Fee: true}))
	q, err = e.Quote(alice, pool, amount.New(500))
	require.NoError(t, err)
	assert.True(t, q.Withheld.IsZero(), "an exempt pool exempts its counterparty")
}

func TestQuoteRoundingProperty(t *testing.T) {
	e, _ := newTestEngine(t)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		rate := rng.Uint64N(101)
		require.NoError(t, e.Registry.SetAllocation(DirectionSell, 0, 0, 0))
		require.NoError(t, e.Registry.SetTax(DirectionSell, rate))

		raw := rng.Uint64N(1 << 40)
		q, err := e.Quote(alice, pool, amount.New(raw))
		require.NoError(t, err)

		assert.Equal(t, amount.New(raw*rate/100), q.Withheld, "amount=%d rate=%d", raw, rate)
		sum, err := q.Net.Add(q.Withheld)
		require.NoError(t, err)
		assert.Equal(t, amount.New(raw), sum)
	}
}

func TestQuoteTruncatesTowardReceiver(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Registry.SetTax(DirectionSell, 3))

	q, err := e.Quote(alice, pool, amount.New(99))
	require.NoError(t, err)
	assert.Equal(t, amount.New(2), q.Withheld)
	assert.Equal(t, amount.New(97), q.Net)
}

func TestTransferMovesNetAndWithheld(t *testing.T) {
	e, l := newTestEngine(t)
	require.NoError(t, e.Registry.SetTax(DirectionSell, 3))

	q, err := e.Transfer(l, alice, pool, amount.New(10_000), now)
	require.NoError(t, err)
	assert.Equal(t, amount.New(300), q.Withheld)

	assert.Equal(t, amount.New(supply-10_000), balance(t, l, alice))
	assert.Equal(t, amount.New(9_700), balance(t, l, pool))
	assert.Equal(t, amount.New(300), balance(t, l, contract))

	total, err := ledger.SumBalances(l)
	require.NoError(t, err)
	assert.Equal(t, amount.New(supply), total)
}

func TestTransferInsufficientBalance(t *testing.T) {
	e, l := newTestEngine(t)

	_, err := e.Transfer(l, bob, alice, amount.New(1), now)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	_, err = e.Transfer(l, alice, bob, amount.New(supply+1), now)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.Equal(t, amount.New(supply), balance(t, l, alice))
}

func TestTransferFromContractRefused(t *testing.T) {
	e, l := newTestEngine(t)
	require.NoError(t, ledger.Debit(l, alice, amount.New(10)))
	require.NoError(t, ledger.Credit(l, contract, amount.New(10)))

	_, err := e.Transfer(l, contract, bob, amount.New(10), now)
	assert.ErrorIs(t, err, ErrContractFunds)
	assert.Equal(t, amount.New(10), balance(t, l, contract))
	assert.True(t, balance(t, l, bob).IsZero())
}

func TestMaxTxLimit(t *testing.T) {
	e, l := newTestEngine(t)
	require.NoError(t, e.Registry.SetLimits(0, 100)) // 1% = 10_000

	_, err := e.Transfer(l, alice, bob, amount.New(10_000), now)
	require.NoError(t, err)

	_, err = e.Transfer(l, alice, bob, amount.New(10_001), now)
	assert.ErrorIs(t, err, ErrExceedsLimit)

	require.NoError(t, e.Registry.SetExemptions(bob, Exemptions{MaxTx: true}))
	_, err = e.Transfer(l, alice, bob, amount.New(10_001), now)
	assert.NoError(t, err, "receiver exemption covers the transfer")
}

func TestMaxWalletLimit(t *testing.T) {
	e, l := newTestEngine(t)
	require.NoError(t, e.Registry.SetLimits(200, 0)) // 2% = 20_000

	_, err := e.Transfer(l, alice, bob, amount.New(20_000), now)
	require.NoError(t, err)
	_, err = e.Transfer(l, alice, bob, amount.New(1), now)
	assert.ErrorIs(t, err, ErrExceedsLimit)
	assert.Equal(t, amount.New(20_000), balance(t, l, bob))

	// Pools and exempt wallets may hold more
	_, err = e.Transfer(l, alice, pool, amount.New(50_000), now)
	require.NoError(t, err)
	require.NoError(t, e.Registry.SetExemptions(carol, Exemptions{MaxWallet: true}))
	_, err = e.Transfer(l, alice, carol, amount.New(50_000), now)
	require.NoError(t, err)
}

func TestMaxWalletCountsNetOnly(t *testing.T) {
	e, l := newTestEngine(t)
	require.NoError(t, e.Registry.SetTax(DirectionBuy, 10))
	_, err := e.Transfer(l, alice, pool, amount.New(100_000), now)
	require.NoError(t, err)
	require.NoError(t, e.Registry.SetLimits(100, 0)) // 10_000

	// 11_000 gross buys 9_900 net
	_, err = e.Transfer(l, pool, bob, amount.New(11_000), now)
	require.NoError(t, err)
	assert.Equal(t, amount.New(9_900), balance(t, l, bob))
	assert.Equal(t, amount.New(1_100), balance(t, l, contract))
}

func TestFailedTransferInSandboxLeavesBaseUntouched(t *testing.T) {
	e, l := newTestEngine(t)
	require.NoError(t, e.Registry.SetTax(DirectionSell, 5))
	require.NoError(t, e.Registry.SetSellAllowance(1)) // 100

	sb := ledger.NewSandbox(l)
	_, err := e.Transfer(sb, alice, pool, amount.New(101), now)
	assert.ErrorIs(t, err, ErrCycleAllowanceExceeded)
	sb.Discard()

	assert.Equal(t, amount.New(supply), balance(t, l, alice))
	assert.Equal(t, 1, l.Len())
}
