package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/logging"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidateConfig performs comprehensive validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := validateToken(&config.Token); err != nil {
		return fmt.Errorf("token config validation failed: %w", err)
	}

	if err := validateTax(&config.Tax); err != nil {
		return fmt.Errorf("tax config validation failed: %w", err)
	}

	if err := validateWallets(&config.Wallets); err != nil {
		return fmt.Errorf("wallets config validation failed: %w", err)
	}

	if err := validateLimits(&config.Limits); err != nil {
		return fmt.Errorf("limits config validation failed: %w", err)
	}

	if _, err := amount.Parse(config.Distribution.MinTrigger); err != nil {
		return fmt.Errorf("distribution config validation failed: %w: min_trigger: %w", ErrInvalidConfig, err)
	}

	if err := validateAddressSets(config); err != nil {
		return fmt.Errorf("address sets validation failed: %w", err)
	}

	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("logging config validation failed: %w: %w", ErrInvalidConfig, err)
	}

	if config.Journal.Size <= 0 {
		return fmt.Errorf("journal config validation failed: %w: size must be positive, got %d", ErrInvalidConfig, config.Journal.Size)
	}

	// Cross-validation checks
	if err := validateCrossReferences(config); err != nil {
		return fmt.Errorf("cross-validation failed: %w", err)
	}

	return nil
}

// validateToken validates the token section
func validateToken(t *TokenConfig) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("%w: symbol cannot be empty", ErrInvalidConfig)
	}
	if t.Decimals > amount.MaxDecimals {
		return fmt.Errorf("%w: decimals %d exceeds %d", ErrInvalidConfig, t.Decimals, amount.MaxDecimals)
	}
	if t.TotalSupply == 0 {
		return fmt.Errorf("%w: total_supply must be positive", ErrInvalidConfig)
	}
	if _, err := parseAddress("operator", t.Operator); err != nil {
		return err
	}
	if _, err := parseAddress("contract", t.Contract); err != nil {
		return err
	}
	return nil
}

// validateTax validates rates. The registry re-checks them at genesis; this
// catches the mistakes early with a path to the offending key.
func validateTax(t *TaxConfig) error {
	for _, side := range []struct {
		name  string
		total uint64
		alloc AllocationConfig
	}{
		{"buy", t.Buy, t.BuyAllocation},
		{"sell", t.Sell, t.SellAllocation},
	} {
		if side.total > tax.MaxRate {
			return fmt.Errorf("%w: %s rate %d exceeds %d", ErrInvalidConfig, side.name, side.total, tax.MaxRate)
		}
		allocated := side.alloc.Dev + side.alloc.Marketing + side.alloc.ProductDev + t.Buyback
		if allocated > side.total {
			return fmt.Errorf("%w: %s allocations plus buyback (%d) exceed the %s rate %d",
				ErrInvalidConfig, side.name, allocated, side.name, side.total)
		}
	}
	return nil
}

// validateWallets validates the beneficiaries
func validateWallets(w *WalletsConfig) error {
	var total uint64
	for _, wallet := range []struct {
		name string
		cfg  WalletConfig
	}{
		{"dev", w.Dev},
		{"marketing", w.Marketing},
		{"product_dev", w.ProductDev},
	} {
		if wallet.cfg.Percent > 0 && wallet.cfg.Address == "" {
			return fmt.Errorf("%w: %s wallet has a share but no address", ErrInvalidConfig, wallet.name)
		}
		if wallet.cfg.Address != "" {
			if _, err := parseAddress(wallet.name+" wallet", wallet.cfg.Address); err != nil {
				return err
			}
		}
		total += wallet.cfg.Percent
	}
	if total > tax.MaxRate {
		return fmt.Errorf("%w: wallet shares total %d, at most %d allowed", ErrInvalidConfig, total, tax.MaxRate)
	}
	return nil
}

// validateLimits validates the anti-whale section
func validateLimits(l *LimitsConfig) error {
	for name, bps := range map[string]uint64{
		"max_wallet_bps":     l.MaxWalletBps,
		"max_tx_bps":         l.MaxTxBps,
		"sell_allowance_bps": l.SellAllowanceBps,
	} {
		if bps > tax.BasisPoints {
			return fmt.Errorf("%w: %s %d exceeds %d", ErrInvalidConfig, name, bps, tax.BasisPoints)
		}
	}
	if l.CycleLength <= 0 {
		return fmt.Errorf("%w: cycle_length must be positive, got %s", ErrInvalidConfig, l.CycleLength)
	}
	return nil
}

// validateAddressSets checks every address list parses
func validateAddressSets(config *Config) error {
	for i, lp := range config.LPAddresses {
		if _, err := parseAddress(fmt.Sprintf("lp_addresses[%d]", i), lp); err != nil {
			return err
		}
	}
	for i, ex := range config.Exemptions {
		if _, err := parseAddress(fmt.Sprintf("exemptions[%d]", i), ex.Address); err != nil {
			return err
		}
	}
	for name, members := range config.SellerGroups {
		if len(members) == 0 {
			return fmt.Errorf("%w: seller group %q has no members", ErrInvalidConfig, name)
		}
		for i, m := range members {
			if _, err := parseAddress(fmt.Sprintf("seller_groups.%s[%d]", name, i), m); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateCrossReferences validates relationships between sections
func validateCrossReferences(config *Config) error {
	operator, _ := parseAddress("operator", config.Token.Operator)
	contract, _ := parseAddress("contract", config.Token.Contract)
	if operator == contract {
		return fmt.Errorf("%w: operator and contract must differ", ErrInvalidConfig)
	}

	// A seller can only be in one group
	seen := make(map[account.Address]string)
	for name, members := range config.SellerGroups {
		for _, m := range members {
			addr, _ := parseAddress("seller", m)
			if other, ok := seen[addr]; ok && other != name {
				return fmt.Errorf("%w: %s is linked to both %q and %q", ErrInvalidConfig, m, other, name)
			}
			seen[addr] = name
		}
	}
	return nil
}

func parseAddress(field, s string) (account.Address, error) {
	addr, err := account.Parse(s)
	if err != nil {
		return account.Address{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
	}
	if addr.IsZero() {
		return account.Address{}, fmt.Errorf("%w: %s is the zero address", ErrInvalidConfig, field)
	}
	return addr, nil
}
