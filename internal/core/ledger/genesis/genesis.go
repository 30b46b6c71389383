// Package genesis builds the initial ledger and tax registry of a token.
package genesis

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/header"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
)

const (
	// DefaultName and DefaultSymbol label the token when none is configured.
	DefaultName   = "Tax Token"
	DefaultSymbol = "TAX"

	// DefaultDecimals is the token precision.
	DefaultDecimals = 18

	// DefaultSupply is the total supply in whole tokens: one trillion.
	DefaultSupply = 1_000_000_000_000

	// GenesisSequence is the sequence of the genesis ledger.
	GenesisSequence = 0

	// ContractSeed derives the contract address when none is configured.
	ContractSeed = "contract"

	// OperatorSeed derives the operator address when none is configured.
	OperatorSeed = "owner"
)

// ErrInvalidGenesis is returned for a config that cannot produce a ledger.
var ErrInvalidGenesis = errors.New("invalid genesis configuration")

// SellerGroup links sellers that share one sell-cycle allowance.
type SellerGroup struct {
	Name    string
	Members []account.Address
}

// Config holds the configuration for creating a genesis ledger. The zero
// values of the tax fields reproduce a registry with no tax, no exemptions,
// no LP addresses and all limits disabled.
type Config struct {
	Name     string
	Symbol   string
	Decimals uint8

	// Supply is the total supply in whole tokens. The operator receives it all.
	Supply uint64

	Operator account.Address
	Contract account.Address

	BuyTax  tax.Rates
	SellTax tax.Rates

	Wallets      []tax.Wallet
	LPAddresses  []account.Address
	Exemptions   map[account.Address]tax.Exemptions
	Limits       tax.Limits
	SellerGroups []SellerGroup
	Distribution tax.DistributionPolicy
}

// DefaultConfig returns the default genesis configuration
func DefaultConfig() Config {
	return Config{
		Name:     DefaultName,
		Symbol:   DefaultSymbol,
		Decimals: DefaultDecimals,
		Supply:   DefaultSupply,
		Operator: account.FromName(OperatorSeed),
		Contract: account.FromName(ContractSeed),
		Limits:   tax.Limits{CycleLength: tax.DefaultCycleLength},
		Distribution: tax.DistributionPolicy{
			Permissionless: true,
		},
	}
}

// Genesis is a freshly created ledger with its registry.
type Genesis struct {
	Ledger   *ledger.Ledger
	Registry *tax.Registry
	Operator account.Address
	Contract account.Address
}

// Create builds the genesis ledger: the operator holds the full supply and
// the registry carries the configured tax settings.
func Create(cfg Config) (*Genesis, error) {
	if cfg.Operator.IsZero() {
		return nil, fmt.Errorf("%w: operator is the zero address", ErrInvalidGenesis)
	}
	if cfg.Contract.IsZero() {
		return nil, fmt.Errorf("%w: contract is the zero address", ErrInvalidGenesis)
	}
	if cfg.Operator == cfg.Contract {
		return nil, fmt.Errorf("%w: operator and contract must differ", ErrInvalidGenesis)
	}
	if cfg.Supply == 0 {
		return nil, fmt.Errorf("%w: zero supply", ErrInvalidGenesis)
	}
	if cfg.Decimals > amount.MaxDecimals {
		return nil, fmt.Errorf("%w: %d decimals exceeds %d", ErrInvalidGenesis, cfg.Decimals, amount.MaxDecimals)
	}

	supply := amount.Units(cfg.Supply, cfg.Decimals)

	reg, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	l := ledger.New(header.LedgerHeader{
		Name:        cfg.Name,
		Symbol:      cfg.Symbol,
		Decimals:    cfg.Decimals,
		TotalSupply: supply,
		Contract:    cfg.Contract,
		Sequence:    GenesisSequence,
	})
	if err := ledger.Credit(l, cfg.Operator, supply); err != nil {
		return nil, fmt.Errorf("fund operator: %w", err)
	}

	return &Genesis{
		Ledger:   l,
		Registry: reg,
		Operator: cfg.Operator,
		Contract: cfg.Contract,
	}, nil
}

func buildRegistry(cfg Config) (*tax.Registry, error) {
	reg := tax.NewRegistry(cfg.Operator)

	for _, side := range []struct {
		dir   tax.Direction
		rates tax.Rates
	}{{tax.DirectionBuy, cfg.BuyTax}, {tax.DirectionSell, cfg.SellTax}} {
		if err := reg.SetTax(side.dir, side.rates.Total); err != nil {
			return nil, err
		}
		if err := reg.SetAllocation(side.dir, side.rates.Dev, side.rates.Marketing, side.rates.ProductDev); err != nil {
			return nil, err
		}
	}
	if cfg.BuyTax.Buyback != cfg.SellTax.Buyback {
		return nil, fmt.Errorf("%w: buyback must be equal on both sides", ErrInvalidGenesis)
	}
	if err := reg.SetBuyback(cfg.BuyTax.Buyback); err != nil {
		return nil, err
	}

	for _, w := range cfg.Wallets {
		if err := reg.SetWallet(w.Role, w.Address, w.Percent); err != nil {
			return nil, err
		}
	}
	for _, lp := range cfg.LPAddresses {
		if err := reg.SetLP(lp, true); err != nil {
			return nil, err
		}
	}
	for addr, ex := range cfg.Exemptions {
		if err := reg.SetExemptions(addr, ex); err != nil {
			return nil, err
		}
	}

	if err := reg.SetLimits(cfg.Limits.MaxWalletBps, cfg.Limits.MaxTxBps); err != nil {
		return nil, err
	}
	if err := reg.SetSellAllowance(cfg.Limits.SellAllowanceBps); err != nil {
		return nil, err
	}
	if cfg.Limits.CycleLength != 0 {
		if err := reg.SetCycleLength(cfg.Limits.CycleLength); err != nil {
			return nil, err
		}
	}
	for _, g := range cfg.SellerGroups {
		if err := reg.LinkSellers(g.Name, g.Members...); err != nil {
			return nil, err
		}
	}
	reg.SetDistributionPolicy(cfg.Distribution)
	return reg, nil
}
