package config

import (
	"path/filepath"
	"time"
)

// Config represents the complete taxledger configuration
type Config struct {
	// 1. Token
	Token TokenConfig `toml:"token" mapstructure:"token" yaml:"token" json:"token"`

	// 2. Tax rates and allocations
	Tax TaxConfig `toml:"tax" mapstructure:"tax" yaml:"tax" json:"tax"`

	// 3. Beneficiaries
	Wallets WalletsConfig `toml:"wallets" mapstructure:"wallets" yaml:"wallets" json:"wallets"`

	// 4. Anti-whale limits and sell cycles
	Limits LimitsConfig `toml:"limits" mapstructure:"limits" yaml:"limits" json:"limits"`

	// 5. Distribution trigger
	Distribution DistributionConfig `toml:"distribution" mapstructure:"distribution" yaml:"distribution" json:"distribution"`

	// 6. Address sets
	LPAddresses  []string            `toml:"lp_addresses" mapstructure:"lp_addresses" yaml:"lp_addresses" json:"lp_addresses"`
	Exemptions   []ExemptionConfig   `toml:"exemptions" mapstructure:"exemptions" yaml:"exemptions" json:"exemptions"`
	SellerGroups map[string][]string `toml:"seller_groups" mapstructure:"seller_groups" yaml:"seller_groups" json:"seller_groups"`

	// 7. Diagnostics
	Logging LoggingConfig `toml:"logging" mapstructure:"logging" yaml:"logging" json:"logging"`
	Journal JournalConfig `toml:"journal" mapstructure:"journal" yaml:"journal" json:"journal"`

	// Internal fields for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// TokenConfig names the token and its genesis accounts.
type TokenConfig struct {
	Name     string `toml:"name" mapstructure:"name" yaml:"name" json:"name"`
	Symbol   string `toml:"symbol" mapstructure:"symbol" yaml:"symbol" json:"symbol"`
	Decimals uint8  `toml:"decimals" mapstructure:"decimals" yaml:"decimals" json:"decimals"`

	// TotalSupply is in whole tokens
	TotalSupply uint64 `toml:"total_supply" mapstructure:"total_supply" yaml:"total_supply" json:"total_supply"`

	// Operator and Contract take hex or "@name"
	Operator string `toml:"operator" mapstructure:"operator" yaml:"operator" json:"operator"`
	Contract string `toml:"contract" mapstructure:"contract" yaml:"contract" json:"contract"`
}

// TaxConfig holds whole-percent rates. Buyback applies to both directions.
type TaxConfig struct {
	Buy     uint64 `toml:"buy" mapstructure:"buy" yaml:"buy" json:"buy"`
	Sell    uint64 `toml:"sell" mapstructure:"sell" yaml:"sell" json:"sell"`
	Buyback uint64 `toml:"buyback" mapstructure:"buyback" yaml:"buyback" json:"buyback"`

	BuyAllocation  AllocationConfig `toml:"buy_allocation" mapstructure:"buy_allocation" yaml:"buy_allocation" json:"buy_allocation"`
	SellAllocation AllocationConfig `toml:"sell_allocation" mapstructure:"sell_allocation" yaml:"sell_allocation" json:"sell_allocation"`
}

// AllocationConfig earmarks parts of one direction's rate.
type AllocationConfig struct {
	Dev        uint64 `toml:"dev" mapstructure:"dev" yaml:"dev" json:"dev"`
	Marketing  uint64 `toml:"marketing" mapstructure:"marketing" yaml:"marketing" json:"marketing"`
	ProductDev uint64 `toml:"product_dev" mapstructure:"product_dev" yaml:"product_dev" json:"product_dev"`
}

// WalletsConfig holds the three beneficiaries.
type WalletsConfig struct {
	Dev        WalletConfig `toml:"dev" mapstructure:"dev" yaml:"dev" json:"dev"`
	Marketing  WalletConfig `toml:"marketing" mapstructure:"marketing" yaml:"marketing" json:"marketing"`
	ProductDev WalletConfig `toml:"product_dev" mapstructure:"product_dev" yaml:"product_dev" json:"product_dev"`
}

// WalletConfig is one beneficiary. An empty address leaves the role unset.
type WalletConfig struct {
	Address string `toml:"address" mapstructure:"address" yaml:"address" json:"address"`
	Percent uint64 `toml:"percent" mapstructure:"percent" yaml:"percent" json:"percent"`
}

// LimitsConfig holds caps in basis points of total supply. Zero disables.
type LimitsConfig struct {
	MaxWalletBps     uint64        `toml:"max_wallet_bps" mapstructure:"max_wallet_bps" yaml:"max_wallet_bps" json:"max_wallet_bps"`
	MaxTxBps         uint64        `toml:"max_tx_bps" mapstructure:"max_tx_bps" yaml:"max_tx_bps" json:"max_tx_bps"`
	SellAllowanceBps uint64        `toml:"sell_allowance_bps" mapstructure:"sell_allowance_bps" yaml:"sell_allowance_bps" json:"sell_allowance_bps"`
	CycleLength      time.Duration `toml:"cycle_length" mapstructure:"cycle_length" yaml:"cycle_length" json:"cycle_length"`
}

// DistributionConfig controls the trigger.
type DistributionConfig struct {
	// MinTrigger is in smallest units and accepts an exponent ("1e18")
	MinTrigger     string `toml:"min_trigger" mapstructure:"min_trigger" yaml:"min_trigger" json:"min_trigger"`
	Permissionless bool   `toml:"permissionless" mapstructure:"permissionless" yaml:"permissionless" json:"permissionless"`
}

// ExemptionConfig sets the overrides of one address.
type ExemptionConfig struct {
	Address   string `toml:"address" mapstructure:"address" yaml:"address" json:"address"`
	Fee       bool   `toml:"fee" mapstructure:"fee" yaml:"fee" json:"fee"`
	MaxWallet bool   `toml:"max_wallet" mapstructure:"max_wallet" yaml:"max_wallet" json:"max_wallet"`
	MaxTx     bool   `toml:"max_tx" mapstructure:"max_tx" yaml:"max_tx" json:"max_tx"`
	SellLimit bool   `toml:"sell_limit" mapstructure:"sell_limit" yaml:"sell_limit" json:"sell_limit"`
}

// LoggingConfig selects the zap logger.
type LoggingConfig struct {
	Level       string `toml:"level" mapstructure:"level" yaml:"level" json:"level"`
	Development bool   `toml:"development" mapstructure:"development" yaml:"development" json:"development"`
}

// JournalConfig bounds the receipt journal.
type JournalConfig struct {
	Size int `toml:"size" mapstructure:"size" yaml:"size" json:"size"`
}

// DefaultConfigPath returns the configuration file looked up in dir
func DefaultConfigPath(dir string) string {
	return filepath.Join(dir, "taxledger.toml")
}

// GetConfigPath returns the path the configuration was read from, empty
// when only defaults and environment were used
func (c *Config) GetConfigPath() string {
	return c.configPath
}
