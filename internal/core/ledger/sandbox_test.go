package ledger

import (
	"testing"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/header"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/keylet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = account.FromName("alice")
	bob   = account.FromName("bob")
)

func newFundedLedger(t *testing.T, balance uint64) *Ledger {
	t.Helper()
	l := New(header.LedgerHeader{Name: "Test", Symbol: "TST", TotalSupply: amount.New(balance)})
	require.NoError(t, Credit(l, alice, amount.New(balance)))
	return l
}

func TestSandboxStagesUntilApply(t *testing.T) {
	l := newFundedLedger(t, 1000)
	sb := NewSandbox(l)

	require.NoError(t, Debit(sb, alice, amount.New(400)))
	require.NoError(t, Credit(sb, bob, amount.New(400)))

	// Base untouched
	got, err := Balance(l, alice)
	require.NoError(t, err)
	assert.Equal(t, amount.New(1000), got)
	exists, err := l.Exists(keylet.Account(bob))
	require.NoError(t, err)
	assert.False(t, exists)

	// Sandbox sees its own writes
	got, err = Balance(sb, bob)
	require.NoError(t, err)
	assert.Equal(t, amount.New(400), got)

	meta, err := sb.Apply()
	require.NoError(t, err)
	require.Len(t, meta.AffectedNodes, 2)

	got, err = Balance(l, bob)
	require.NoError(t, err)
	assert.Equal(t, amount.New(400), got)
	got, err = Balance(l, alice)
	require.NoError(t, err)
	assert.Equal(t, amount.New(600), got)
}

func TestSandboxDiscard(t *testing.T) {
	l := newFundedLedger(t, 1000)
	sb := NewSandbox(l)

	require.NoError(t, Debit(sb, alice, amount.New(1000)))
	require.NoError(t, Credit(sb, bob, amount.New(1000)))
	sb.Discard()

	meta, err := sb.Apply()
	require.NoError(t, err)
	assert.Empty(t, meta.AffectedNodes)
	got, err := Balance(l, alice)
	require.NoError(t, err)
	assert.Equal(t, amount.New(1000), got)
}

func TestSandboxNoOpUpdateIsNotAChange(t *testing.T) {
	l := newFundedLedger(t, 1000)
	sb := NewSandbox(l)

	require.NoError(t, Debit(sb, alice, amount.New(10)))
	require.NoError(t, Credit(sb, alice, amount.New(10)))

	changes := 0
	require.NoError(t, sb.Changes(func(TrackedEntry) error { changes++; return nil }))
	assert.Zero(t, changes)
}

func TestSandboxInsertThenErase(t *testing.T) {
	l := newFundedLedger(t, 1000)
	sb := NewSandbox(l)

	require.NoError(t, SetAllowance(sb, alice, bob, amount.New(5)))
	require.NoError(t, SetAllowance(sb, alice, bob, amount.Zero()))

	meta, err := sb.Apply()
	require.NoError(t, err)
	assert.Empty(t, meta.AffectedNodes)
	exists, err := l.Exists(keylet.Allowance(alice, bob))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSandboxEraseSemantics(t *testing.T) {
	l := newFundedLedger(t, 1000)
	require.NoError(t, SetAllowance(l, alice, bob, amount.New(5)))
	k := keylet.Allowance(alice, bob)

	sb := NewSandbox(l)
	require.NoError(t, sb.Erase(k))
	assert.ErrorIs(t, sb.Erase(k), ErrEntryNotFound)
	assert.ErrorIs(t, sb.Update(k, []byte{1}), ErrEntryNotFound)

	data, err := sb.Read(k)
	require.NoError(t, err)
	assert.Nil(t, data)

	// Re-insert after erase becomes a modify of the base entry
	require.NoError(t, sb.Insert(k, []byte{1}))
	assert.ErrorIs(t, sb.Insert(k, []byte{2}), ErrEntryExists)
}

func TestSandboxForEachMergesStagedState(t *testing.T) {
	l := newFundedLedger(t, 1000)
	sb := NewSandbox(l)
	require.NoError(t, Debit(sb, alice, amount.New(250)))
	require.NoError(t, Credit(sb, bob, amount.New(250)))

	balances, err := Balances(sb)
	require.NoError(t, err)
	assert.Equal(t, map[account.Address]amount.Amount{
		alice: amount.New(750),
		bob:   amount.New(250),
	}, balances)

	total, err := SumBalances(sb)
	require.NoError(t, err)
	assert.Equal(t, amount.New(1000), total)
}

func TestBaseRejectsBadWrites(t *testing.T) {
	l := newFundedLedger(t, 1)
	assert.ErrorIs(t, l.Insert(keylet.Account(alice), []byte{1}), ErrEntryExists)
	assert.ErrorIs(t, l.Update(keylet.Account(bob), []byte{1}), ErrEntryNotFound)
	assert.ErrorIs(t, l.Erase(keylet.Account(bob)), ErrEntryNotFound)
	assert.Equal(t, 1, l.Len())
}
