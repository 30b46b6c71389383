package testing

import (
	"testing"

	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/stretchr/testify/require"
)

// RequireBalance asserts that an account has the expected balance in smallest units.
// This is a convenience wrapper around require.Equal for balance checks.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, expected amount.Amount) {
	t.Helper()
	actual := env.Balance(acc)
	require.Equal(t, expected.String(), actual.String(),
		"Account %s balance mismatch", acc.Name)
}

// RequireBalanceTokens asserts that an account holds the expected number of whole tokens.
func RequireBalanceTokens(t *testing.T, env *TestEnv, acc *Account, tokens uint64) {
	t.Helper()
	RequireBalance(t, env, acc, env.Tokens(tokens))
}

// RequireWithheld asserts the contract's withheld balance.
func RequireWithheld(t *testing.T, env *TestEnv, expected amount.Amount) {
	t.Helper()
	require.Equal(t, expected.String(), env.Withheld().String(), "withheld balance mismatch")
}

// RequireConserved asserts that the balances, the contract's included, add
// up to the total supply.
func RequireConserved(t *testing.T, env *TestEnv) {
	t.Helper()
	require.Equal(t, env.TotalSupply().String(), env.TotalBalance().String(),
		"sum of balances differs from total supply")
}

// RequireTxSuccess asserts that a transaction result indicates success.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected transaction success, got %s: %s", result.Code, result.Message)
	require.Equal(t, TesSUCCESS, result.Code,
		"Expected tesSUCCESS, got %s: %s", result.Code, result.Message)
}

// RequireTxFail asserts that a transaction result indicates failure with a specific code.
func RequireTxFail(t *testing.T, result TxResult, expectedCode string) {
	t.Helper()
	require.False(t, result.Success,
		"Expected transaction failure with code %s, but transaction succeeded", expectedCode)
	require.Equal(t, expectedCode, result.Code,
		"Expected failure code %s, got %s: %s", expectedCode, result.Code, result.Message)
}

// AssertBalanceChange runs a function and asserts the balance of acc moved
// by exactly delta in the given direction.
func AssertBalanceChange(t *testing.T, env *TestEnv, acc *Account, delta amount.Amount, increase bool, fn func()) {
	t.Helper()
	before := env.Balance(acc)
	fn()
	after := env.Balance(acc)

	var want amount.Amount
	var err error
	if increase {
		want, err = before.Add(delta)
	} else {
		want, err = before.Sub(delta)
	}
	require.NoError(t, err)
	require.Equal(t, want.String(), after.String(),
		"Account %s balance change mismatch (before: %s, after: %s)", acc.Name, before, after)
}

// AssertNoBalanceChange runs a function and asserts the balance stays the same.
func AssertNoBalanceChange(t *testing.T, env *TestEnv, acc *Account, fn func()) {
	t.Helper()
	AssertBalanceChange(t, env, acc, amount.Zero(), true, fn)
}
