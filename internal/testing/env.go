package testing

import (
	"testing"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	_ "github.com/LeJamon/goTaxLedger/internal/core/tx/all"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/distribution"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/taxconfig"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/transfer"
	"go.uber.org/zap/zaptest"
)

// ManualClock is the engine clock tests drive by hand.
type ManualClock = tx.StepClock

// NewManualClock returns a ManualClock reading tx.Epoch.
func NewManualClock() *ManualClock {
	return tx.NewStepClock(tx.Epoch)
}

// TestEnv manages a test ledger environment for transaction testing.
// It provides a simplified interface for funding accounts, configuring the
// tax registry, submitting transactions, and verifying results.
type TestEnv struct {
	t        *testing.T
	engine   *tx.Engine
	clock    *ManualClock
	accounts map[string]*Account

	operator *Account
	contract *Account
	decimals uint8
}

// NewTestEnv creates a new test environment with the default genesis ledger:
// the operator holds the full supply, there is no tax and no limit.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithConfig(t, genesis.DefaultConfig())
}

// NewTestEnvWithConfig creates a new test environment with custom genesis configuration.
// Operator and contract accounts are named "owner" and "contract" unless cfg
// overrides the addresses.
func NewTestEnvWithConfig(t *testing.T, cfg genesis.Config) *TestEnv {
	t.Helper()

	g, err := genesis.Create(cfg)
	if err != nil {
		t.Fatalf("Failed to create genesis ledger: %v", err)
	}

	clock := NewManualClock()
	engine, err := tx.NewEngine(g.Ledger, g.Registry, tx.EngineConfig{
		Clock:  clock,
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	env := &TestEnv{
		t:        t,
		engine:   engine,
		clock:    clock,
		accounts: make(map[string]*Account),
		operator: &Account{Name: genesis.OperatorSeed, Address: g.Operator},
		contract: &Account{Name: genesis.ContractSeed, Address: g.Contract},
		decimals: cfg.Decimals,
	}
	env.accounts[env.operator.Name] = env.operator
	env.accounts[env.contract.Name] = env.contract
	return env
}

// Account returns the named account, creating it on first use.
func (e *TestEnv) Account(name string) *Account {
	if acc, ok := e.accounts[name]; ok {
		return acc
	}
	acc := NewAccount(name)
	e.accounts[name] = acc
	return acc
}

// Operator returns the registry operator, which holds the supply at genesis.
func (e *TestEnv) Operator() *Account {
	return e.operator
}

// Contract returns the account holding withheld tax.
func (e *TestEnv) Contract() *Account {
	return e.contract
}

// Engine returns the transaction engine.
func (e *TestEnv) Engine() *tx.Engine {
	return e.engine
}

// Tokens converts whole tokens to smallest units at the ledger's precision.
func (e *TestEnv) Tokens(n uint64) amount.Amount {
	return amount.Units(n, e.decimals)
}

// Submit applies a transaction and returns its result.
func (e *TestEnv) Submit(txn tx.Transaction) TxResult {
	e.t.Helper()
	return resultFrom(e.engine.Apply(txn))
}

// Fund transfers amt from the operator to each account. The operator is not
// an LP, so funding is untaxed unless a limit refuses it.
func (e *TestEnv) Fund(amt amount.Amount, accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		result := e.Submit(transfer.NewTransfer(e.operator.Address, acc.Address, amt))
		if !result.Success {
			e.t.Fatalf("Failed to fund %s: %s %s", acc.Name, result.Code, result.Message)
		}
	}
}

// Transfer submits a transfer from one account to another.
func (e *TestEnv) Transfer(from, to *Account, amt amount.Amount) TxResult {
	e.t.Helper()
	return e.Submit(transfer.NewTransfer(from.Address, to.Address, amt))
}

// Approve submits an approval from owner to spender.
func (e *TestEnv) Approve(owner, spender *Account, amt amount.Amount) TxResult {
	e.t.Helper()
	return e.Submit(transfer.NewApprove(owner.Address, spender.Address, amt))
}

// TransferFrom submits a transfer out of owner's account on spender's allowance.
func (e *TestEnv) TransferFrom(spender, owner, to *Account, amt amount.Amount) TxResult {
	e.t.Helper()
	return e.Submit(transfer.NewTransferFrom(spender.Address, owner.Address, to.Address, amt))
}

// TriggerTax submits a distribution trigger.
func (e *TestEnv) TriggerTax(caller *Account) TxResult {
	e.t.Helper()
	return e.Submit(distribution.NewTriggerTax(caller.Address))
}

// SetLP marks accounts as liquidity pools.
func (e *TestEnv) SetLP(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.mustSubmit(taxconfig.NewSetLPAddress(e.operator.Address, acc.Address, true))
	}
}

// SetTax sets both directions' total rates.
func (e *TestEnv) SetTax(buy, sell uint64) {
	e.t.Helper()
	e.mustSubmit(taxconfig.NewSetTax(e.operator.Address, tax.DirectionBuy, buy))
	e.mustSubmit(taxconfig.NewSetTax(e.operator.Address, tax.DirectionSell, sell))
}

// Exempt sets the exemption flags of acc.
func (e *TestEnv) Exempt(acc *Account, ex tax.Exemptions) {
	e.t.Helper()
	e.mustSubmit(taxconfig.NewSetExemptions(e.operator.Address, acc.Address, ex))
}

// SetWallet points a beneficiary role at acc.
func (e *TestEnv) SetWallet(role tax.WalletRole, acc *Account, percent uint64) {
	e.t.Helper()
	e.mustSubmit(taxconfig.NewSetWallet(e.operator.Address, role, acc.Address, percent))
}

// SetSellAllowance sets the per-cycle sell allowance in basis points.
func (e *TestEnv) SetSellAllowance(bps uint64) {
	e.t.Helper()
	e.mustSubmit(taxconfig.NewSetSellAllowance(e.operator.Address, bps))
}

// LinkSellers puts accounts in one seller group.
func (e *TestEnv) LinkSellers(group string, accounts ...*Account) {
	e.t.Helper()
	addrs := make([]account.Address, len(accounts))
	for i, acc := range accounts {
		addrs[i] = acc.Address
	}
	e.mustSubmit(taxconfig.NewLinkSellers(e.operator.Address, group, addrs...))
}

func (e *TestEnv) mustSubmit(txn tx.Transaction) {
	e.t.Helper()
	result := e.Submit(txn)
	if !result.Success {
		e.t.Fatalf("%s failed: %s %s", txn.TxType(), result.Code, result.Message)
	}
}

// Balance returns the token balance of an account in smallest units.
func (e *TestEnv) Balance(acc *Account) amount.Amount {
	e.t.Helper()
	var bal amount.Amount
	err := e.engine.Read(func(v ledger.View, _ *tax.Registry) error {
		var err error
		bal, err = ledger.Balance(v, acc.Address)
		return err
	})
	if err != nil {
		e.t.Fatalf("Failed to read balance of %s: %v", acc.Name, err)
	}
	return bal
}

// Withheld returns the contract's withheld balance.
func (e *TestEnv) Withheld() amount.Amount {
	e.t.Helper()
	return e.Balance(e.contract)
}

// Allowance returns what spender may still move out of owner's account.
func (e *TestEnv) Allowance(owner, spender *Account) amount.Amount {
	e.t.Helper()
	var out amount.Amount
	err := e.engine.Read(func(v ledger.View, _ *tax.Registry) error {
		var err error
		out, err = ledger.Allowance(v, owner.Address, spender.Address)
		return err
	})
	if err != nil {
		e.t.Fatalf("Failed to read allowance: %v", err)
	}
	return out
}

// TotalBalance returns the sum of every balance, the contract's included.
func (e *TestEnv) TotalBalance() amount.Amount {
	e.t.Helper()
	var sum amount.Amount
	err := e.engine.Read(func(v ledger.View, _ *tax.Registry) error {
		var err error
		sum, err = ledger.SumBalances(v)
		return err
	})
	if err != nil {
		e.t.Fatalf("Failed to sum balances: %v", err)
	}
	return sum
}

// TotalSupply returns the supply fixed at genesis.
func (e *TestEnv) TotalSupply() amount.Amount {
	return e.engine.Header().TotalSupply
}

// Registry returns a copy of the committed tax registry.
func (e *TestEnv) Registry() *tax.Registry {
	return e.engine.Registry()
}

// LedgerSeq returns the number of committed transactions.
func (e *TestEnv) LedgerSeq() uint64 {
	return e.engine.Header().Sequence
}

// Now returns the current test time.
func (e *TestEnv) Now() time.Time {
	return e.clock.Now()
}

// AdvanceTime moves the test clock forward.
func (e *TestEnv) AdvanceTime(d time.Duration) {
	e.clock.Advance(d)
}

// SetTime sets the test clock.
func (e *TestEnv) SetTime(t time.Time) {
	e.clock.Set(t)
}
