package config

import (
	"fmt"
	"sort"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/genesis"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/logging"
)

// ToGenesis converts a validated configuration into a genesis
// configuration. Seller groups are emitted in name order.
func (c *Config) ToGenesis() (genesis.Config, error) {
	operator, err := parseAddress("operator", c.Token.Operator)
	if err != nil {
		return genesis.Config{}, err
	}
	contract, err := parseAddress("contract", c.Token.Contract)
	if err != nil {
		return genesis.Config{}, err
	}
	minTrigger, err := amount.Parse(c.Distribution.MinTrigger)
	if err != nil {
		return genesis.Config{}, fmt.Errorf("%w: min_trigger: %w", ErrInvalidConfig, err)
	}

	g := genesis.Config{
		Name:     c.Token.Name,
		Symbol:   c.Token.Symbol,
		Decimals: c.Token.Decimals,
		Supply:   c.Token.TotalSupply,
		Operator: operator,
		Contract: contract,
		BuyTax:   rates(c.Tax.Buy, c.Tax.Buyback, c.Tax.BuyAllocation),
		SellTax:  rates(c.Tax.Sell, c.Tax.Buyback, c.Tax.SellAllocation),
		Limits: tax.Limits{
			MaxWalletBps:     c.Limits.MaxWalletBps,
			MaxTxBps:         c.Limits.MaxTxBps,
			SellAllowanceBps: c.Limits.SellAllowanceBps,
			CycleLength:      c.Limits.CycleLength,
		},
		Distribution: tax.DistributionPolicy{
			MinTrigger:     minTrigger,
			Permissionless: c.Distribution.Permissionless,
		},
		Exemptions: make(map[account.Address]tax.Exemptions, len(c.Exemptions)),
	}

	for _, w := range []struct {
		role tax.WalletRole
		cfg  WalletConfig
	}{
		{tax.RoleDev, c.Wallets.Dev},
		{tax.RoleMarketing, c.Wallets.Marketing},
		{tax.RoleProductDev, c.Wallets.ProductDev},
	} {
		if w.cfg.Address == "" {
			continue
		}
		addr, err := parseAddress(w.role.String()+" wallet", w.cfg.Address)
		if err != nil {
			return genesis.Config{}, err
		}
		g.Wallets = append(g.Wallets, tax.Wallet{Role: w.role, Address: addr, Percent: w.cfg.Percent})
	}

	for i, lp := range c.LPAddresses {
		addr, err := parseAddress(fmt.Sprintf("lp_addresses[%d]", i), lp)
		if err != nil {
			return genesis.Config{}, err
		}
		g.LPAddresses = append(g.LPAddresses, addr)
	}

	for i, ex := range c.Exemptions {
		addr, err := parseAddress(fmt.Sprintf("exemptions[%d]", i), ex.Address)
		if err != nil {
			return genesis.Config{}, err
		}
		g.Exemptions[addr] = tax.Exemptions{
			Fee:       ex.Fee,
			MaxWallet: ex.MaxWallet,
			MaxTx:     ex.MaxTx,
			SellLimit: ex.SellLimit,
		}
	}

	names := make([]string, 0, len(c.SellerGroups))
	for name := range c.SellerGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		group := genesis.SellerGroup{Name: name}
		for i, m := range c.SellerGroups[name] {
			addr, err := parseAddress(fmt.Sprintf("seller_groups.%s[%d]", name, i), m)
			if err != nil {
				return genesis.Config{}, err
			}
			group.Members = append(group.Members, addr)
		}
		g.SellerGroups = append(g.SellerGroups, group)
	}

	return g, nil
}

// LoggingOptions converts the logging section for logging.New.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Development: c.Logging.Development,
	}
}

func rates(total, buyback uint64, alloc AllocationConfig) tax.Rates {
	return tax.Rates{
		Total:      total,
		Dev:        alloc.Dev,
		Marketing:  alloc.Marketing,
		ProductDev: alloc.ProductDev,
		Buyback:    buyback,
	}
}
