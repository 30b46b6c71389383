// Package taxconfig implements the operator transactions that change the
// tax registry. Every type embeds tx.OperatorTx, so the engine rejects any
// caller but the operator and stages the change on a registry copy.
package taxconfig

import (
	"fmt"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeSetTax, func() tx.Transaction {
		return &SetTax{OperatorTx: *tx.NewOperatorTx(tx.TypeSetTax, account.Zero)}
	})
	tx.Register(tx.TypeSetBuybackFee, func() tx.Transaction {
		return &SetBuybackFee{OperatorTx: *tx.NewOperatorTx(tx.TypeSetBuybackFee, account.Zero)}
	})
	tx.Register(tx.TypeSetTaxAllocation, func() tx.Transaction {
		return &SetTaxAllocation{OperatorTx: *tx.NewOperatorTx(tx.TypeSetTaxAllocation, account.Zero)}
	})
	tx.Register(tx.TypeSetWallet, func() tx.Transaction {
		return &SetWallet{OperatorTx: *tx.NewOperatorTx(tx.TypeSetWallet, account.Zero)}
	})
	tx.Register(tx.TypeSetLPAddress, func() tx.Transaction {
		return &SetLPAddress{OperatorTx: *tx.NewOperatorTx(tx.TypeSetLPAddress, account.Zero)}
	})
	tx.Register(tx.TypeSetExemptions, func() tx.Transaction {
		return &SetExemptions{OperatorTx: *tx.NewOperatorTx(tx.TypeSetExemptions, account.Zero)}
	})
	tx.Register(tx.TypeSetLimits, func() tx.Transaction {
		return &SetLimits{OperatorTx: *tx.NewOperatorTx(tx.TypeSetLimits, account.Zero)}
	})
	tx.Register(tx.TypeSetSellAllowance, func() tx.Transaction {
		return &SetSellAllowance{OperatorTx: *tx.NewOperatorTx(tx.TypeSetSellAllowance, account.Zero)}
	})
	tx.Register(tx.TypeSetCycleLength, func() tx.Transaction {
		return &SetCycleLength{OperatorTx: *tx.NewOperatorTx(tx.TypeSetCycleLength, account.Zero)}
	})
	tx.Register(tx.TypeLinkSellers, func() tx.Transaction {
		return &LinkSellers{OperatorTx: *tx.NewOperatorTx(tx.TypeLinkSellers, account.Zero)}
	})
	tx.Register(tx.TypeUnlinkSeller, func() tx.Transaction {
		return &UnlinkSeller{OperatorTx: *tx.NewOperatorTx(tx.TypeUnlinkSeller, account.Zero)}
	})
	tx.Register(tx.TypeSetDistributionPolicy, func() tx.Transaction {
		return &SetDistributionPolicy{OperatorTx: *tx.NewOperatorTx(tx.TypeSetDistributionPolicy, account.Zero)}
	})
	tx.Register(tx.TypeSetOperator, func() tx.Transaction {
		return &SetOperator{OperatorTx: *tx.NewOperatorTx(tx.TypeSetOperator, account.Zero)}
	})
}

// SetTax sets the total rate of one direction.
type SetTax struct {
	tx.OperatorTx `yaml:",inline"`

	Direction tax.Direction `json:"direction" yaml:"direction"`
	Rate      uint64        `json:"rate" yaml:"rate"`
}

// NewSetTax creates a new SetTax transaction
func NewSetTax(caller account.Address, d tax.Direction, rate uint64) *SetTax {
	return &SetTax{OperatorTx: *tx.NewOperatorTx(tx.TypeSetTax, caller), Direction: d, Rate: rate}
}

// Validate checks the rate bound; the sub-allocation check needs the registry
func (s *SetTax) Validate() error {
	if err := s.OperatorTx.Validate(); err != nil {
		return err
	}
	if s.Rate > tax.MaxRate {
		return fmt.Errorf("%w: rate %d exceeds %d", tx.TemBAD_TAX_RATE, s.Rate, tax.MaxRate)
	}
	return nil
}

// Apply updates the registry copy
func (s *SetTax) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetTax(s.Direction, s.Rate)
	})
}

// SetBuybackFee sets the buyback sub-rate of both directions at once.
type SetBuybackFee struct {
	tx.OperatorTx `yaml:",inline"`

	Rate uint64 `json:"rate" yaml:"rate"`
}

// NewSetBuybackFee creates a new SetBuybackFee transaction
func NewSetBuybackFee(caller account.Address, rate uint64) *SetBuybackFee {
	return &SetBuybackFee{OperatorTx: *tx.NewOperatorTx(tx.TypeSetBuybackFee, caller), Rate: rate}
}

// Apply updates the registry copy
func (s *SetBuybackFee) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetBuyback(s.Rate)
	})
}

// SetTaxAllocation splits one direction's rate between the beneficiaries.
type SetTaxAllocation struct {
	tx.OperatorTx `yaml:",inline"`

	Direction  tax.Direction `json:"direction" yaml:"direction"`
	Dev        uint64        `json:"dev" yaml:"dev"`
	Marketing  uint64        `json:"marketing" yaml:"marketing"`
	ProductDev uint64        `json:"product_dev" yaml:"product_dev"`
}

// NewSetTaxAllocation creates a new SetTaxAllocation transaction
func NewSetTaxAllocation(caller account.Address, d tax.Direction, dev, marketing, productDev uint64) *SetTaxAllocation {
	return &SetTaxAllocation{
		OperatorTx: *tx.NewOperatorTx(tx.TypeSetTaxAllocation, caller),
		Direction:  d,
		Dev:        dev,
		Marketing:  marketing,
		ProductDev: productDev,
	}
}

// Apply updates the registry copy
func (s *SetTaxAllocation) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetAllocation(s.Direction, s.Dev, s.Marketing, s.ProductDev)
	})
}

// SetWallet points a beneficiary role at an address with a distribution share.
type SetWallet struct {
	tx.OperatorTx `yaml:",inline"`

	Role    tax.WalletRole  `json:"role" yaml:"role"`
	Address account.Address `json:"address" yaml:"address"`
	Percent uint64          `json:"percent" yaml:"percent"`
}

// NewSetWallet creates a new SetWallet transaction
func NewSetWallet(caller account.Address, role tax.WalletRole, addr account.Address, percent uint64) *SetWallet {
	return &SetWallet{
		OperatorTx: *tx.NewOperatorTx(tx.TypeSetWallet, caller),
		Role:       role,
		Address:    addr,
		Percent:    percent,
	}
}

// Apply updates the registry copy
func (s *SetWallet) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetWallet(s.Role, s.Address, s.Percent)
	})
}

// SetLPAddress adds an address to the LP set, or removes it.
type SetLPAddress struct {
	tx.OperatorTx `yaml:",inline"`

	Address account.Address `json:"address" yaml:"address"`
	LP      bool            `json:"lp" yaml:"lp"`
}

// NewSetLPAddress creates a new SetLPAddress transaction
func NewSetLPAddress(caller, addr account.Address, lp bool) *SetLPAddress {
	return &SetLPAddress{OperatorTx: *tx.NewOperatorTx(tx.TypeSetLPAddress, caller), Address: addr, LP: lp}
}

// Validate checks the address
func (s *SetLPAddress) Validate() error {
	if err := s.OperatorTx.Validate(); err != nil {
		return err
	}
	return tx.ValidateAddress("address", s.Address)
}

// Apply updates the registry copy
func (s *SetLPAddress) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetLP(s.Address, s.LP)
	})
}

// SetExemptions replaces the exemption flags of an address. Reserved is
// accepted for call compatibility and has no effect.
type SetExemptions struct {
	tx.OperatorTx `yaml:",inline"`

	Address   account.Address `json:"address" yaml:"address"`
	Fee       bool            `json:"fee" yaml:"fee"`
	MaxWallet bool            `json:"max_wallet" yaml:"max_wallet"`
	MaxTx     bool            `json:"max_tx" yaml:"max_tx"`
	SellLimit bool            `json:"sell_limit" yaml:"sell_limit"`
	Reserved  bool            `json:"reserved,omitempty" yaml:"reserved,omitempty"`
}

// NewSetExemptions creates a new SetExemptions transaction
func NewSetExemptions(caller, addr account.Address, ex tax.Exemptions) *SetExemptions {
	return &SetExemptions{
		OperatorTx: *tx.NewOperatorTx(tx.TypeSetExemptions, caller),
		Address:    addr,
		Fee:        ex.Fee,
		MaxWallet:  ex.MaxWallet,
		MaxTx:      ex.MaxTx,
		SellLimit:  ex.SellLimit,
	}
}

// Validate checks the address
func (s *SetExemptions) Validate() error {
	if err := s.OperatorTx.Validate(); err != nil {
		return err
	}
	return tx.ValidateAddress("address", s.Address)
}

// Apply updates the registry copy
func (s *SetExemptions) Apply(ctx *tx.ApplyContext) tx.Result {
	ex := tax.Exemptions{Fee: s.Fee, MaxWallet: s.MaxWallet, MaxTx: s.MaxTx, SellLimit: s.SellLimit}
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetExemptions(s.Address, ex)
	})
}

// SetLimits sets the max-wallet and max-transaction caps in basis points
// of total supply.
type SetLimits struct {
	tx.OperatorTx `yaml:",inline"`

	MaxWalletBps uint64 `json:"max_wallet_bps" yaml:"max_wallet_bps"`
	MaxTxBps     uint64 `json:"max_tx_bps" yaml:"max_tx_bps"`
}

// NewSetLimits creates a new SetLimits transaction
func NewSetLimits(caller account.Address, maxWalletBps, maxTxBps uint64) *SetLimits {
	return &SetLimits{
		OperatorTx:   *tx.NewOperatorTx(tx.TypeSetLimits, caller),
		MaxWalletBps: maxWalletBps,
		MaxTxBps:     maxTxBps,
	}
}

// Apply updates the registry copy
func (s *SetLimits) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetLimits(s.MaxWalletBps, s.MaxTxBps)
	})
}

// SetSellAllowance sets the per-cycle sell allowance multiplier.
type SetSellAllowance struct {
	tx.OperatorTx `yaml:",inline"`

	Bps uint64 `json:"bps" yaml:"bps"`
}

// NewSetSellAllowance creates a new SetMaxSellAllowanceMultiplier transaction
func NewSetSellAllowance(caller account.Address, bps uint64) *SetSellAllowance {
	return &SetSellAllowance{OperatorTx: *tx.NewOperatorTx(tx.TypeSetSellAllowance, caller), Bps: bps}
}

// Apply updates the registry copy
func (s *SetSellAllowance) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetSellAllowance(s.Bps)
	})
}

// SetCycleLength sets the sell-cycle window. Open cycles keep their start;
// the new length applies from the next roll.
type SetCycleLength struct {
	tx.OperatorTx `yaml:",inline"`

	Length time.Duration `json:"length" yaml:"length"`
}

// NewSetCycleLength creates a new SetCycleLength transaction
func NewSetCycleLength(caller account.Address, d time.Duration) *SetCycleLength {
	return &SetCycleLength{OperatorTx: *tx.NewOperatorTx(tx.TypeSetCycleLength, caller), Length: d}
}

// Validate checks the length
func (s *SetCycleLength) Validate() error {
	if err := s.OperatorTx.Validate(); err != nil {
		return err
	}
	if s.Length <= 0 {
		return fmt.Errorf("%w: cycle length %s must be positive", tx.TemINVALID_CONFIG, s.Length)
	}
	return nil
}

// Apply updates the registry copy
func (s *SetCycleLength) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetCycleLength(s.Length)
	})
}

// LinkSellers puts addresses in a group sharing one sell allowance.
type LinkSellers struct {
	tx.OperatorTx `yaml:",inline"`

	Group     string            `json:"group" yaml:"group"`
	Addresses []account.Address `json:"addresses" yaml:"addresses"`
}

// NewLinkSellers creates a new LinkSellers transaction
func NewLinkSellers(caller account.Address, group string, addrs ...account.Address) *LinkSellers {
	return &LinkSellers{
		OperatorTx: *tx.NewOperatorTx(tx.TypeLinkSellers, caller),
		Group:      group,
		Addresses:  addrs,
	}
}

// Validate checks the group has a name and members
func (s *LinkSellers) Validate() error {
	if err := s.OperatorTx.Validate(); err != nil {
		return err
	}
	if s.Group == "" || len(s.Addresses) == 0 {
		return fmt.Errorf("%w: a seller group needs a name and members", tx.TemMALFORMED)
	}
	return nil
}

// Apply updates the registry copy
func (s *LinkSellers) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.LinkSellers(s.Group, s.Addresses...)
	})
}

// UnlinkSeller removes an address from its group. Sells already recorded
// against the group stay there.
type UnlinkSeller struct {
	tx.OperatorTx `yaml:",inline"`

	Address account.Address `json:"address" yaml:"address"`
}

// NewUnlinkSeller creates a new UnlinkSeller transaction
func NewUnlinkSeller(caller, addr account.Address) *UnlinkSeller {
	return &UnlinkSeller{OperatorTx: *tx.NewOperatorTx(tx.TypeUnlinkSeller, caller), Address: addr}
}

// Validate checks the address
func (s *UnlinkSeller) Validate() error {
	if err := s.OperatorTx.Validate(); err != nil {
		return err
	}
	return tx.ValidateAddress("address", s.Address)
}

// Apply updates the registry copy
func (s *UnlinkSeller) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		r.UnlinkSeller(s.Address)
		return nil
	})
}

// SetDistributionPolicy replaces the trigger threshold and permission.
type SetDistributionPolicy struct {
	tx.OperatorTx `yaml:",inline"`

	MinTrigger     amount.Amount `json:"min_trigger" yaml:"min_trigger"`
	Permissionless bool          `json:"permissionless" yaml:"permissionless"`
}

// NewSetDistributionPolicy creates a new SetDistributionPolicy transaction
func NewSetDistributionPolicy(caller account.Address, p tax.DistributionPolicy) *SetDistributionPolicy {
	return &SetDistributionPolicy{
		OperatorTx:     *tx.NewOperatorTx(tx.TypeSetDistributionPolicy, caller),
		MinTrigger:     p.MinTrigger,
		Permissionless: p.Permissionless,
	}
}

// Apply updates the registry copy
func (s *SetDistributionPolicy) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		r.SetDistributionPolicy(tax.DistributionPolicy{MinTrigger: s.MinTrigger, Permissionless: s.Permissionless})
		return nil
	})
}

// SetOperator hands operator rights to another address.
type SetOperator struct {
	tx.OperatorTx `yaml:",inline"`

	Operator account.Address `json:"operator" yaml:"operator"`
}

// NewSetOperator creates a new SetOperator transaction
func NewSetOperator(caller, operator account.Address) *SetOperator {
	return &SetOperator{OperatorTx: *tx.NewOperatorTx(tx.TypeSetOperator, caller), Operator: operator}
}

// Validate checks the new operator
func (s *SetOperator) Validate() error {
	if err := s.OperatorTx.Validate(); err != nil {
		return err
	}
	return tx.ValidateAddress("operator", s.Operator)
}

// Apply updates the registry copy
func (s *SetOperator) Apply(ctx *tx.ApplyContext) tx.Result {
	return ctx.SetRegistry(func(r *tax.Registry) error {
		return r.SetOperator(s.Operator)
	})
}
