// Package testing provides test infrastructure for tax ledger transaction testing.
//
// It provides a jtx-like API for creating deterministic test environments.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: A test environment over a genesis ledger and transaction engine
//   - Account: Deterministic named test accounts
//   - Amount helpers: Functions for token and unit amounts
//   - Assertions: Test assertion helpers for common checks
//
// # Basic Usage
//
//	func TestSell(t *testing.T) {
//	    env := testing.NewTestEnv(t)
//
//	    alice := env.Account("alice")
//	    pool := env.Account("pool")
//
//	    env.SetLP(pool)
//	    env.SetTax(0, 3)
//	    env.Fund(testing.Tokens(1000), alice)
//
//	    result := env.Transfer(alice, pool, testing.Tokens(100))
//	    testing.RequireTxSuccess(t, result)
//	    testing.RequireBalanceTokens(t, env, pool, 97)
//	    testing.RequireWithheld(t, env, testing.Tokens(3))
//	}
//
// # TestEnv
//
// TestEnv creates a genesis ledger whose operator holds the whole supply.
// Every submission goes through the same engine the token facade uses, so
// authorization, staging and invariant checks all apply.
//
//	env := testing.NewTestEnv(t)
//	env.Fund(testing.Tokens(500), bob)  // Transfer from the operator
//	env.Balance(alice)                  // Balance in smallest units
//	env.Withheld()                      // Contract balance
//	env.Now()                           // Current clock time
//
// # Clock Control
//
// The engine reads a ManualClock that tests control:
//
//	env.AdvanceTime(24 * time.Hour)
//	env.SetTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
package testing
