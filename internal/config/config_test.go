package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	mainConfigContent := `
lp_addresses = ["@pool"]

[token]
name = "Test Token"
symbol = "TST"
decimals = 9
total_supply = 1000000

[tax]
buy = 5
sell = 10
buyback = 1

[tax.sell_allocation]
dev = 4
marketing = 3
product_dev = 2

[wallets.dev]
address = "@dev"
percent = 50

[wallets.marketing]
address = "0x00000000000000000000000000000000000000aa"
percent = 30

[limits]
max_wallet_bps = 200
max_tx_bps = 100
sell_allowance_bps = 10
cycle_length = "12h"

[distribution]
min_trigger = "1e9"
permissionless = false

[[exemptions]]
address = "@owner"
fee = true
max_wallet = true

[seller_groups]
team = ["@alice", "@bob"]

[logging]
level = "debug"

[journal]
size = 16
`
	path := writeConfig(t, "taxledger.toml", mainConfigContent)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, path, config.GetConfigPath())

	assert.Equal(t, "Test Token", config.Token.Name)
	assert.Equal(t, "TST", config.Token.Symbol)
	assert.Equal(t, uint8(9), config.Token.Decimals)
	assert.Equal(t, uint64(1_000_000), config.Token.TotalSupply)
	// Defaults fill what the file leaves out
	assert.Equal(t, "@owner", config.Token.Operator)

	assert.Equal(t, uint64(10), config.Tax.Sell)
	assert.Equal(t, AllocationConfig{Dev: 4, Marketing: 3, ProductDev: 2}, config.Tax.SellAllocation)
	assert.Equal(t, WalletConfig{Address: "@dev", Percent: 50}, config.Wallets.Dev)
	assert.Equal(t, 12*time.Hour, config.Limits.CycleLength)
	assert.Equal(t, []string{"@pool"}, config.LPAddresses)
	require.Len(t, config.Exemptions, 1)
	assert.True(t, config.Exemptions[0].Fee)
	assert.False(t, config.Exemptions[0].SellLimit)
	assert.Equal(t, []string{"@alice", "@bob"}, config.SellerGroups["team"])
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 16, config.Journal.Size)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "taxledger.yaml", `
token:
  symbol: YML
tax:
  sell: 3
lp_addresses:
  - "@addr2"
limits:
  cycle_length: 30m
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "YML", config.Token.Symbol)
	assert.Equal(t, genesis.DefaultName, config.Token.Name)
	assert.Equal(t, uint64(3), config.Tax.Sell)
	assert.Equal(t, 30*time.Minute, config.Limits.CycleLength)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := Default()
	require.NoError(t, err)

	assert.Equal(t, genesis.DefaultSymbol, config.Token.Symbol)
	assert.Equal(t, uint64(genesis.DefaultSupply), config.Token.TotalSupply)
	assert.Equal(t, tax.DefaultCycleLength, config.Limits.CycleLength)
	assert.True(t, config.Distribution.Permissionless)
	assert.Empty(t, config.GetConfigPath())

	g, err := config.ToGenesis()
	require.NoError(t, err)
	want := genesis.DefaultConfig()
	assert.Equal(t, want.Operator, g.Operator)
	assert.Equal(t, want.Contract, g.Contract)
	assert.Equal(t, want.Supply, g.Supply)
	assert.Equal(t, want.Limits, g.Limits)
	assert.True(t, g.Distribution.MinTrigger.IsZero())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("TAXLEDGER_TAX_SELL", "7")
	t.Setenv("TAXLEDGER_TOKEN_SYMBOL", "ENV")
	t.Setenv("TAXLEDGER_LIMITS_CYCLE_LENGTH", "1h")

	path := writeConfig(t, "taxledger.toml", "[tax]\nsell = 3\n")
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), config.Tax.Sell)
	assert.Equal(t, "ENV", config.Token.Symbol)
	assert.Equal(t, time.Hour, config.Limits.CycleLength)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		config, err := Default()
		require.NoError(t, err)
		return config
	}
	require.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"empty name", func(c *Config) { c.Token.Name = " " }, "name cannot be empty"},
		{"zero supply", func(c *Config) { c.Token.TotalSupply = 0 }, "total_supply"},
		{"too many decimals", func(c *Config) { c.Token.Decimals = 60 }, "decimals"},
		{"bad operator", func(c *Config) { c.Token.Operator = "nope" }, "operator"},
		{"zero contract", func(c *Config) { c.Token.Contract = "0x0000000000000000000000000000000000000000" }, "zero address"},
		{"same accounts", func(c *Config) { c.Token.Contract = c.Token.Operator }, "must differ"},
		{"rate over 100", func(c *Config) { c.Tax.Buy = 101 }, "buy rate"},
		{"allocation over rate", func(c *Config) {
			c.Tax.Sell = 5
			c.Tax.SellAllocation = AllocationConfig{Dev: 3, Marketing: 3}
		}, "sell allocations"},
		{"buyback over rate", func(c *Config) { c.Tax.Buyback = 1 }, "buyback"},
		{"wallet share without address", func(c *Config) { c.Wallets.Dev.Percent = 10 }, "no address"},
		{"wallet shares over 100", func(c *Config) {
			c.Wallets.Dev = WalletConfig{Address: "@dev", Percent: 60}
			c.Wallets.Marketing = WalletConfig{Address: "@mkt", Percent: 41}
		}, "wallet shares"},
		{"limit over 10000", func(c *Config) { c.Limits.MaxTxBps = 10_001 }, "max_tx_bps"},
		{"zero cycle", func(c *Config) { c.Limits.CycleLength = 0 }, "cycle_length"},
		{"bad min trigger", func(c *Config) { c.Distribution.MinTrigger = "lots" }, "min_trigger"},
		{"bad lp", func(c *Config) { c.LPAddresses = []string{"@"} }, "lp_addresses[0]"},
		{"empty group", func(c *Config) { c.SellerGroups = map[string][]string{"team": nil} }, "no members"},
		{"seller in two groups", func(c *Config) {
			c.SellerGroups = map[string][]string{"a": {"@alice"}, "b": {"@alice"}}
		}, "linked to both"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
		{"zero journal", func(c *Config) { c.Journal.Size = 0 }, "journal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := ValidateConfig(config)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToGenesis(t *testing.T) {
	config, err := Default()
	require.NoError(t, err)
	config.Tax = TaxConfig{
		Buy:            4,
		Sell:           10,
		Buyback:        1,
		BuyAllocation:  AllocationConfig{Dev: 2},
		SellAllocation: AllocationConfig{Dev: 4, Marketing: 3, ProductDev: 2},
	}
	config.Wallets.Dev = WalletConfig{Address: "@dev", Percent: 50}
	config.Wallets.ProductDev = WalletConfig{Address: "@product", Percent: 20}
	config.LPAddresses = []string{"@pool"}
	config.Exemptions = []ExemptionConfig{{Address: "@alice", SellLimit: true}}
	config.SellerGroups = map[string][]string{"team": {"@bob", "@carol"}, "desk": {"@dave"}}
	config.Distribution.MinTrigger = "5e18"
	require.NoError(t, ValidateConfig(config))

	g, err := config.ToGenesis()
	require.NoError(t, err)

	assert.Equal(t, tax.Rates{Total: 4, Dev: 2, Buyback: 1}, g.BuyTax)
	assert.Equal(t, tax.Rates{Total: 10, Dev: 4, Marketing: 3, ProductDev: 2, Buyback: 1}, g.SellTax)
	assert.Equal(t, []tax.Wallet{
		{Role: tax.RoleDev, Address: account.FromName("dev"), Percent: 50},
		{Role: tax.RoleProductDev, Address: account.FromName("product"), Percent: 20},
	}, g.Wallets)
	assert.Equal(t, []account.Address{account.FromName("pool")}, g.LPAddresses)
	assert.Equal(t, tax.Exemptions{SellLimit: true}, g.Exemptions[account.FromName("alice")])
	require.Len(t, g.SellerGroups, 2)
	assert.Equal(t, "desk", g.SellerGroups[0].Name)
	assert.Equal(t, []account.Address{account.FromName("bob"), account.FromName("carol")}, g.SellerGroups[1].Members)
	assert.Equal(t, amount.MustParse("5e18"), g.Distribution.MinTrigger)

	// The converted configuration must build a ledger.
	created, err := genesis.Create(g)
	require.NoError(t, err)
	assert.True(t, created.Registry.IsLP(account.FromName("pool")))
	group, linked := created.Registry.Group(account.FromName("carol"))
	assert.True(t, linked)
	assert.Equal(t, "team", group)
	assert.Equal(t, uint64(1), created.Registry.Rates(tax.DirectionSell).Buyback)
}

func TestLoggingOptions(t *testing.T) {
	config, err := Default()
	require.NoError(t, err)
	config.Logging = LoggingConfig{Level: "warn", Development: true}

	opts := config.LoggingOptions()
	assert.Equal(t, "warn", opts.Level)
	assert.True(t, opts.Development)
	assert.False(t, opts.Quiet)
}
