// Package tax holds the transfer-tax machinery: the configuration registry,
// transfer classification, the tax engine, the sell-cycle limiter and the
// distribution of withheld tax to beneficiary wallets.
package tax

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
)

const (
	// MaxRate is the upper bound of every percentage rate and share.
	MaxRate = 100

	// BasisPoints is the denominator for limits expressed in basis points
	// of total supply.
	BasisPoints = 10_000

	// DefaultCycleLength is the sell-cycle window used when none is configured.
	DefaultCycleLength = 24 * time.Hour
)

var (
	// ErrInvalidRate is returned for rates above 100% or sub-allocations
	// exceeding their direction's total.
	ErrInvalidRate = errors.New("invalid tax rate")

	// ErrInvalidConfiguration is returned for other out-of-range settings.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Direction selects the buy or sell side of the tax configuration.
type Direction int

const (
	DirectionBuy Direction = iota
	DirectionSell
)

// String returns "buy" or "sell"
func (d Direction) String() string {
	if d == DirectionSell {
		return "sell"
	}
	return "buy"
}

// MarshalText encodes the direction name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts "buy" or "sell"
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "buy":
		*d = DirectionBuy
	case "sell":
		*d = DirectionSell
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidConfiguration, text)
	}
	return nil
}

// Rates is one direction's tax. Total is what a transfer pays; the
// sub-allocations earmark parts of it and may not exceed it.
type Rates struct {
	Total      uint64 `json:"total"`
	Dev        uint64 `json:"dev"`
	Marketing  uint64 `json:"marketing"`
	ProductDev uint64 `json:"product_dev"`
	Buyback    uint64 `json:"buyback"`
}

// Allocated returns the sum of the sub-allocations.
func (r Rates) Allocated() uint64 {
	return r.Dev + r.Marketing + r.ProductDev + r.Buyback
}

func (r Rates) validate() error {
	if r.Total > MaxRate {
		return fmt.Errorf("%w: total %d exceeds %d", ErrInvalidRate, r.Total, MaxRate)
	}
	if r.Allocated() > r.Total {
		return fmt.Errorf("%w: sub-allocations %d exceed total %d", ErrInvalidRate, r.Allocated(), r.Total)
	}
	return nil
}

// Exemptions are the per-address overrides. All default to false.
type Exemptions struct {
	Fee       bool `json:"fee"`
	MaxWallet bool `json:"max_wallet"`
	MaxTx     bool `json:"max_tx"`
	SellLimit bool `json:"sell_limit"`
}

// WalletRole identifies one of the beneficiary wallets.
type WalletRole int

const (
	RoleDev WalletRole = iota
	RoleMarketing
	RoleProductDev
)

// Roles lists the beneficiary roles in distribution order.
var Roles = []WalletRole{RoleDev, RoleMarketing, RoleProductDev}

// String returns the role name
func (r WalletRole) String() string {
	switch r {
	case RoleDev:
		return "dev"
	case RoleMarketing:
		return "marketing"
	case RoleProductDev:
		return "product_dev"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// MarshalText encodes the role name
func (r WalletRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts a role name as returned by String
func (r *WalletRole) UnmarshalText(text []byte) error {
	for _, role := range Roles {
		if role.String() == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("%w: unknown wallet role %q", ErrInvalidConfiguration, text)
}

// Wallet is a beneficiary and its share of each distribution, in percent.
type Wallet struct {
	Role    WalletRole      `json:"role"`
	Address account.Address `json:"address"`
	Percent uint64          `json:"percent"`
}

// Limits are the anti-whale settings. Zero disables a limit.
type Limits struct {
	// MaxWalletBps caps a receiver's resulting balance.
	MaxWalletBps uint64 `json:"max_wallet_bps"`
	// MaxTxBps caps the gross amount of a single transfer.
	MaxTxBps uint64 `json:"max_tx_bps"`
	// SellAllowanceBps caps cumulative sells per cycle.
	SellAllowanceBps uint64 `json:"sell_allowance_bps"`
	// CycleLength is the sell-cycle window.
	CycleLength time.Duration `json:"cycle_length"`
}

// DistributionPolicy controls the distribution trigger.
type DistributionPolicy struct {
	// MinTrigger is the withheld balance below which a trigger is a no-op.
	MinTrigger amount.Amount `json:"min_trigger"`
	// Permissionless lets anyone trigger; otherwise only the operator may.
	Permissionless bool `json:"permissionless"`
}

// Registry is the configuration of the tax machinery. It is not safe for
// concurrent use; the transaction engine serializes access and stages
// changes on a Clone.
type Registry struct {
	operator     account.Address
	buy          Rates
	sell         Rates
	lps          map[account.Address]struct{}
	exemptions   map[account.Address]Exemptions
	wallets      [3]Wallet
	limits       Limits
	groups       map[account.Address]string
	distribution DistributionPolicy
}

// NewRegistry returns a registry with no tax, no exemptions, no LP
// addresses, all limits disabled and a permissionless trigger.
func NewRegistry(operator account.Address) *Registry {
	r := &Registry{
		operator:   operator,
		lps:        make(map[account.Address]struct{}),
		exemptions: make(map[account.Address]Exemptions),
		groups:     make(map[account.Address]string),
		limits:     Limits{CycleLength: DefaultCycleLength},
		distribution: DistributionPolicy{
			Permissionless: true,
		},
	}
	for _, role := range Roles {
		r.wallets[role] = Wallet{Role: role}
	}
	return r
}

// Clone returns a deep copy.
func (r *Registry) Clone() *Registry {
	c := *r
	c.lps = maps.Clone(r.lps)
	c.exemptions = maps.Clone(r.exemptions)
	c.groups = maps.Clone(r.groups)
	return &c
}

// Operator returns the address allowed to change the configuration.
func (r *Registry) Operator() account.Address {
	return r.operator
}

// IsOperator reports whether addr is the operator.
func (r *Registry) IsOperator(addr account.Address) bool {
	return addr == r.operator
}

// SetOperator hands operator rights to addr.
func (r *Registry) SetOperator(addr account.Address) error {
	if addr.IsZero() {
		return fmt.Errorf("%w: operator may not be the zero address", ErrInvalidConfiguration)
	}
	r.operator = addr
	return nil
}

// Rates returns one direction's tax configuration.
func (r *Registry) Rates(d Direction) Rates {
	if d == DirectionSell {
		return r.sell
	}
	return r.buy
}

func (r *Registry) rates(d Direction) *Rates {
	if d == DirectionSell {
		return &r.sell
	}
	return &r.buy
}

// SetTax sets a direction's total rate. It fails if the rate exceeds 100 or
// drops below the already earmarked sub-allocations.
func (r *Registry) SetTax(d Direction, rate uint64) error {
	next := r.Rates(d)
	next.Total = rate
	if err := next.validate(); err != nil {
		return fmt.Errorf("%s tax: %w", d, err)
	}
	*r.rates(d) = next
	return nil
}

// SetBuyback sets the buyback sub-rate of both directions.
func (r *Registry) SetBuyback(rate uint64) error {
	buy, sell := r.buy, r.sell
	buy.Buyback, sell.Buyback = rate, rate
	if err := buy.validate(); err != nil {
		return fmt.Errorf("buy tax: %w", err)
	}
	if err := sell.validate(); err != nil {
		return fmt.Errorf("sell tax: %w", err)
	}
	r.buy, r.sell = buy, sell
	return nil
}

// SetAllocation sets a direction's dev, marketing and product-dev sub-rates.
func (r *Registry) SetAllocation(d Direction, dev, marketing, productDev uint64) error {
	next := r.Rates(d)
	next.Dev, next.Marketing, next.ProductDev = dev, marketing, productDev
	if err := next.validate(); err != nil {
		return fmt.Errorf("%s tax: %w", d, err)
	}
	*r.rates(d) = next
	return nil
}

// IsLP reports whether addr is a liquidity-pool address.
func (r *Registry) IsLP(addr account.Address) bool {
	_, ok := r.lps[addr]
	return ok
}

// SetLP adds or removes addr from the LP set.
func (r *Registry) SetLP(addr account.Address, lp bool) error {
	if addr.IsZero() {
		return fmt.Errorf("%w: zero address cannot be an LP", ErrInvalidConfiguration)
	}
	if lp {
		r.lps[addr] = struct{}{}
	} else {
		delete(r.lps, addr)
	}
	return nil
}

// LPs returns the LP set in address order.
func (r *Registry) LPs() []account.Address {
	return sortedAddresses(slices.Collect(maps.Keys(r.lps)))
}

// Exemptions returns addr's exemption flags.
func (r *Registry) Exemptions(addr account.Address) Exemptions {
	return r.exemptions[addr]
}

// SetExemptions overwrites addr's four exemption flags.
func (r *Registry) SetExemptions(addr account.Address, ex Exemptions) error {
	if addr.IsZero() {
		return fmt.Errorf("%w: zero address cannot hold exemptions", ErrInvalidConfiguration)
	}
	if ex == (Exemptions{}) {
		delete(r.exemptions, addr)
		return nil
	}
	r.exemptions[addr] = ex
	return nil
}

// Wallet returns the beneficiary for role.
func (r *Registry) Wallet(role WalletRole) Wallet {
	return r.wallets[role]
}

// Wallets returns the beneficiaries in distribution order.
func (r *Registry) Wallets() []Wallet {
	return slices.Clone(r.wallets[:])
}

// SetWallet sets a beneficiary. Shares of all three wallets may not exceed
// 100 together, and a non-zero share needs a non-zero address.
func (r *Registry) SetWallet(role WalletRole, addr account.Address, percent uint64) error {
	if role < RoleDev || role > RoleProductDev {
		return fmt.Errorf("%w: unknown wallet role %d", ErrInvalidConfiguration, int(role))
	}
	if percent > MaxRate {
		return fmt.Errorf("%w: %s share %d exceeds %d", ErrInvalidConfiguration, role, percent, MaxRate)
	}
	if percent > 0 && addr.IsZero() {
		return fmt.Errorf("%w: %s share needs an address", ErrInvalidConfiguration, role)
	}

	var total uint64
	for _, w := range r.wallets {
		if w.Role != role {
			total += w.Percent
		}
	}
	if total+percent > MaxRate {
		return fmt.Errorf("%w: wallet shares would total %d", ErrInvalidConfiguration, total+percent)
	}

	r.wallets[role] = Wallet{Role: role, Address: addr, Percent: percent}
	return nil
}

// Limits returns the anti-whale settings.
func (r *Registry) Limits() Limits {
	return r.limits
}

// SetLimits sets the max-wallet and max-transaction caps in basis points.
func (r *Registry) SetLimits(maxWalletBps, maxTxBps uint64) error {
	if maxWalletBps > BasisPoints || maxTxBps > BasisPoints {
		return fmt.Errorf("%w: limits must be at most %d basis points", ErrInvalidConfiguration, BasisPoints)
	}
	r.limits.MaxWalletBps = maxWalletBps
	r.limits.MaxTxBps = maxTxBps
	return nil
}

// SetSellAllowance sets the per-cycle sell allowance multiplier in basis
// points of total supply. Zero disables the limiter.
func (r *Registry) SetSellAllowance(bps uint64) error {
	if bps > BasisPoints {
		return fmt.Errorf("%w: sell allowance must be at most %d basis points", ErrInvalidConfiguration, BasisPoints)
	}
	r.limits.SellAllowanceBps = bps
	return nil
}

// SetCycleLength sets the sell-cycle window.
func (r *Registry) SetCycleLength(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: cycle length %s must be positive", ErrInvalidConfiguration, d)
	}
	r.limits.CycleLength = d
	return nil
}

// Group returns the linked seller group addr belongs to.
func (r *Registry) Group(addr account.Address) (string, bool) {
	g, ok := r.groups[addr]
	return g, ok
}

// Groups returns every group with its members in address order.
func (r *Registry) Groups() map[string][]account.Address {
	out := make(map[string][]account.Address)
	for addr, g := range r.groups {
		out[g] = append(out[g], addr)
	}
	for g := range out {
		out[g] = sortedAddresses(out[g])
	}
	return out
}

// LinkSellers puts addrs in group. Members of a group share one sell-cycle
// allowance. An address belongs to at most one group; linking moves it.
func (r *Registry) LinkSellers(group string, addrs ...account.Address) error {
	if group == "" {
		return fmt.Errorf("%w: empty seller group name", ErrInvalidConfiguration)
	}
	for _, addr := range addrs {
		if addr.IsZero() {
			return fmt.Errorf("%w: zero address cannot join a seller group", ErrInvalidConfiguration)
		}
	}
	for _, addr := range addrs {
		r.groups[addr] = group
	}
	return nil
}

// UnlinkSeller removes addr from its group.
func (r *Registry) UnlinkSeller(addr account.Address) {
	delete(r.groups, addr)
}

// Distribution returns the trigger policy.
func (r *Registry) Distribution() DistributionPolicy {
	return r.distribution
}

// SetDistributionPolicy replaces the trigger policy.
func (r *Registry) SetDistributionPolicy(p DistributionPolicy) {
	r.distribution = p
}

func sortedAddresses(addrs []account.Address) []account.Address {
	slices.SortFunc(addrs, func(a, b account.Address) int { return bytes.Compare(a[:], b[:]) })
	return addrs
}
