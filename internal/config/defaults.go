package config

import (
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	"github.com/spf13/viper"
)

// setDefaults sets the values of a fresh token: the operator holds the full
// supply, nothing is taxed and every limit is off
func setDefaults(v *viper.Viper) {
	// 1. Token defaults
	v.SetDefault("token.name", genesis.DefaultName)
	v.SetDefault("token.symbol", genesis.DefaultSymbol)
	v.SetDefault("token.decimals", genesis.DefaultDecimals)
	v.SetDefault("token.total_supply", genesis.DefaultSupply)
	v.SetDefault("token.operator", "@"+genesis.OperatorSeed)
	v.SetDefault("token.contract", "@"+genesis.ContractSeed)

	// 2. Tax defaults
	v.SetDefault("tax.buy", 0)
	v.SetDefault("tax.sell", 0)
	v.SetDefault("tax.buyback", 0)

	// 4. Limit defaults
	v.SetDefault("limits.max_wallet_bps", 0)
	v.SetDefault("limits.max_tx_bps", 0)
	v.SetDefault("limits.sell_allowance_bps", 0)
	v.SetDefault("limits.cycle_length", tax.DefaultCycleLength)

	// 5. Distribution defaults
	v.SetDefault("distribution.min_trigger", "0")
	v.SetDefault("distribution.permissionless", true)

	// 7. Diagnostics defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
	v.SetDefault("journal.size", tx.DefaultJournalSize)
}
