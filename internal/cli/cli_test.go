package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, debug, quiet = "", false, false
	scenarioFile, jsonOutput, printMetrics, inspectJSON = "", false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--quiet"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "goTaxLedger version 0.1.0-dev")
	assert.Contains(t, out, "Transaction types: 17")
}

func TestSimulate(t *testing.T) {
	out, err := execute(t, "simulate", "--scenario", "../scenario/testdata/sell_tax.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario: sell tax through an allowance")
	assert.Contains(t, out, "sell into the pool: TransferFrom")
	assert.Contains(t, out, "sell, withheld 300000000")
	assert.Contains(t, out, "advance 1h0m0s")
}

func TestSimulateJSONWithMetrics(t *testing.T) {
	out, err := execute(t, "simulate", "-s", "../scenario/testdata/sell_cycle.yaml", "--json", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, `"scenario": "linked sellers share one allowance"`)
	assert.Contains(t, out, `taxledger_cycle_rejections_total{scope="group"} 1`)
	assert.Contains(t, out, `taxledger_transactions_total{result="tesSUCCESS",type="Transfer"} 4`)
}

func TestSimulateFailsOnUnexpectedResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  - type: SetTax
    caller: "@alice"
    direction: buy
    rate: 5
    expect: tesSUCCESS
`), 0644))

	out, err := execute(t, "simulate", "--scenario", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 step(s) did not match")
	assert.Contains(t, out, "tecNO_PERMISSION (expected tesSUCCESS)")
}

func TestSimulateUsesConfiguration(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "taxledger.toml")
	require.NoError(t, os.WriteFile(conf, []byte(`
lp_addresses = ["@pool"]

[token]
decimals = 0
total_supply = 1000

[tax]
buy = 10
`), 0644))
	sc := filepath.Join(dir, "buy.yaml")
	require.NoError(t, os.WriteFile(sc, []byte(`
accounts: [pool, alice]
steps:
  - type: Transfer
    caller: "@owner"
    to: "@pool"
    amount: "500"
  - type: Transfer
    caller: "@pool"
    to: "@alice"
    amount: "100"
    expect: tesSUCCESS
`), 0644))

	out, err := execute(t, "--conf", conf, "simulate", "--scenario", sc, "--json")
	require.NoError(t, err)

	var report struct {
		Balances []struct {
			Name   string `json:"name"`
			Amount string `json:"amount"`
		} `json:"balances"`
		Withheld string `json:"withheld"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Balances, 2)
	assert.Equal(t, "400", report.Balances[0].Amount)
	assert.Equal(t, "90", report.Balances[1].Amount)
	assert.Equal(t, "10", report.Withheld)
}

func TestSimulateRequiresScenarioFile(t *testing.T) {
	_, err := execute(t, "simulate", "--scenario", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario")
}

func TestInspectConfig(t *testing.T) {
	t.Setenv("TAXLEDGER_TAX_SELL", "4")

	out, err := execute(t, "inspect-config")
	require.NoError(t, err)

	var printed struct {
		Token struct {
			Symbol string `yaml:"symbol"`
		} `yaml:"token"`
		Tax struct {
			Sell uint64 `yaml:"sell"`
		} `yaml:"tax"`
		Limits struct {
			CycleLength string `yaml:"cycle_length"`
		} `yaml:"limits"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &printed))
	assert.Equal(t, "TAX", printed.Token.Symbol)
	assert.Equal(t, uint64(4), printed.Tax.Sell)
	assert.Equal(t, "24h0m0s", printed.Limits.CycleLength)

	out, err = execute(t, "inspect-config", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"symbol": "TAX"`)
}

func TestInvalidConfiguration(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "taxledger.toml")
	require.NoError(t, os.WriteFile(conf, []byte("[tax]\nsell = 120\n"), 0644))

	_, err := execute(t, "--conf", conf, "inspect-config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sell rate 120")
}
