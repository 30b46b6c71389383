package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/taxconfig"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func tokens(n uint64) amount.Amount {
	return amount.Units(n, genesis.DefaultDecimals)
}

func newRunner(t *testing.T) *Runner {
	return NewRunner(Options{
		Genesis: genesis.DefaultConfig(),
		Logger:  zaptest.NewLogger(t),
	})
}

func balanceOf(t *testing.T, r *Report, name string) amount.Amount {
	t.Helper()
	for _, b := range r.Balances {
		if b.Name == name {
			return b.Amount
		}
	}
	t.Fatalf("no balance for %s", name)
	return amount.Zero()
}

func TestSellTaxScenario(t *testing.T) {
	sc, err := Load("testdata/sell_tax.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sell tax through an allowance", sc.Name)

	report, err := newRunner(t).Run(context.Background(), sc)
	require.NoError(t, err)
	require.Empty(t, report.Failed())
	require.Len(t, report.Steps, 9)

	sell := report.Steps[4]
	require.NotNil(t, sell.Result)
	assert.Equal(t, "sell into the pool", sell.Name)
	require.NotNil(t, sell.Result.Transfer)
	assert.Equal(t, tax.Sell, sell.Result.Transfer.Category)
	assert.Equal(t, tokens(300_000_000), sell.Result.Transfer.Withheld)

	advance := report.Steps[7]
	assert.Nil(t, advance.Result)
	assert.Equal(t, tx.Epoch.Add(time.Hour), advance.Time)

	assert.Equal(t, tokens(9_700_000_000), balanceOf(t, report, "addr2"))
	assert.True(t, balanceOf(t, report, "addr1").IsZero())
	assert.Equal(t, tokens(180_000_000), balanceOf(t, report, "dev"))
	assert.Equal(t, tokens(120_000_000), balanceOf(t, report, "marketing"))
	assert.True(t, report.Withheld.IsZero())
}

func TestSellCycleScenario(t *testing.T) {
	sc, err := Load("testdata/sell_cycle.yaml")
	require.NoError(t, err)

	report, err := newRunner(t).Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Empty(t, report.Failed())

	rejected := report.Steps[6].Result
	require.NotNil(t, rejected)
	assert.Equal(t, tx.TecCYCLE_ALLOWANCE_EXCEEDED, rejected.Result)
	assert.Contains(t, rejected.Message, "combined cycle sell amount")

	assert.Equal(t, tokens(400_000_000), balanceOf(t, report, "alice"))
	assert.Equal(t, tokens(400_000_000), balanceOf(t, report, "bob"))
	assert.Equal(t, tokens(1_200_000_000), balanceOf(t, report, "pool"))
}

func TestUnexpectedResultIsReported(t *testing.T) {
	sc, err := Parse([]byte(`
accounts: [alice]
steps:
  - type: Transfer
    caller: "@alice"
    to: "@bob"
    amount: "1"
    expect: tesSUCCESS
`))
	require.NoError(t, err)

	report, err := newRunner(t).Run(context.Background(), sc)
	require.NoError(t, err)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, tx.TecUNFUNDED_PAYMENT, failed[0].Result.Result)

	var out bytes.Buffer
	require.NoError(t, report.WriteText(&out))
	assert.Contains(t, out.String(), "tecUNFUNDED_PAYMENT (expected tesSUCCESS)")
	assert.Contains(t, out.String(), "1 step(s) did not match")
}

func TestStepTransaction(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - type: SetExemptions
    caller: "@owner"
    address: "0x00000000000000000000000000000000000000aa"
    fee: true
    sell_limit: true
  - type: SetCycleLength
    caller: "@owner"
    length: 12h
  - type: Transfer
    caller: "@owner"
    to: "@alice"
    amount: 5e18
    memo: airdrop
`))
	require.NoError(t, err)

	txn, err := sc.Steps[0].Transaction()
	require.NoError(t, err)
	ex, ok := txn.(*taxconfig.SetExemptions)
	require.True(t, ok)
	assert.Equal(t, account.FromName("owner"), ex.Caller)
	assert.Equal(t, account.MustParse("0x00000000000000000000000000000000000000aa"), ex.Address)
	assert.True(t, ex.Fee)
	assert.False(t, ex.MaxTx)
	assert.True(t, ex.SellLimit)

	txn, err = sc.Steps[1].Transaction()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, txn.(*taxconfig.SetCycleLength).Length)

	txn, err = sc.Steps[2].Transaction()
	require.NoError(t, err)
	tr := txn.(*transfer.Transfer)
	assert.Equal(t, tokens(5), tr.Amount)
	assert.Equal(t, "airdrop", tr.Memo)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"no steps", "accounts: [alice]\n", "no steps"},
		{"empty step", "steps:\n  - expect: tesSUCCESS\n", "neither type nor advance"},
		{"unknown type", "steps:\n  - type: Mint\n", "unknown transaction type"},
		{"unknown result", "steps:\n  - type: TriggerTax\n    expect: tesMAYBE\n", "unknown result"},
		{"expect without type", "steps:\n  - advance: 1h\n    expect: tesSUCCESS\n", "submits nothing"},
		{"negative advance", "steps:\n  - advance: -1h\n", "advances by"},
		{"not yaml", "steps: [", "invalid scenario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScenario)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBadFieldStopsTheRun(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - type: SetTax
    caller: "@owner"
    direction: sideways
    rate: 3
`))
	require.NoError(t, err)

	_, err = newRunner(t).Run(context.Background(), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
}

func TestRunHonorsContext(t *testing.T) {
	sc, err := Load("testdata/sell_cycle.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := newRunner(t).Run(ctx, sc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Steps)
}

func TestReportJSON(t *testing.T) {
	sc, err := Load("testdata/sell_tax.yaml")
	require.NoError(t, err)
	report, err := newRunner(t).Run(context.Background(), sc)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, report.WriteJSON(&out))

	var decoded struct {
		Scenario string `json:"scenario"`
		Steps    []struct {
			Type   string `json:"type"`
			Passed bool   `json:"passed"`
			Result *struct {
				Result string `json:"result"`
			} `json:"result"`
		} `json:"steps"`
		Withheld string `json:"withheld"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "sell tax through an allowance", decoded.Scenario)
	require.Len(t, decoded.Steps, 9)
	assert.Equal(t, "TransferFrom", decoded.Steps[4].Type)
	assert.Equal(t, "tesSUCCESS", decoded.Steps[4].Result.Result)
	assert.Nil(t, decoded.Steps[7].Result)
	assert.Equal(t, "0", decoded.Withheld)
}
