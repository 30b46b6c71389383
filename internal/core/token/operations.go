package token

import (
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/tax"
	"github.com/LeJamon/goTaxLedger/internal/core/tx"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/distribution"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/taxconfig"
	"github.com/LeJamon/goTaxLedger/internal/core/tx/transfer"
)

// Transfer moves amt from caller to receiver, withholding buy or sell tax.
func (t *Token) Transfer(caller, receiver account.Address, amt amount.Amount) (tx.ApplyResult, error) {
	return t.Submit(transfer.NewTransfer(caller, receiver, amt))
}

// TransferFrom moves amt out of owner's account on caller's allowance. The
// allowance is charged the gross amount.
func (t *Token) TransferFrom(caller, owner, receiver account.Address, amt amount.Amount) (tx.ApplyResult, error) {
	return t.Submit(transfer.NewTransferFrom(caller, owner, receiver, amt))
}

// Approve overwrites caller's allowance for spender.
func (t *Token) Approve(caller, spender account.Address, amt amount.Amount) (tx.ApplyResult, error) {
	return t.Submit(transfer.NewApprove(caller, spender, amt))
}

// AddAddressToLPs marks addr as a liquidity pool.
func (t *Token) AddAddressToLPs(caller, addr account.Address) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetLPAddress(caller, addr, true))
}

// RemoveAddressFromLPs unmarks addr.
func (t *Token) RemoveAddressFromLPs(caller, addr account.Address) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetLPAddress(caller, addr, false))
}

// SetTaxBuy sets the total buy rate in percent.
func (t *Token) SetTaxBuy(caller account.Address, rate uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetTax(caller, tax.DirectionBuy, rate))
}

// SetTaxSell sets the total sell rate in percent.
func (t *Token) SetTaxSell(caller account.Address, rate uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetTax(caller, tax.DirectionSell, rate))
}

// SetBuybackFee sets the buyback sub-rate of both directions.
func (t *Token) SetBuybackFee(caller account.Address, rate uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetBuybackFee(caller, rate))
}

// SetTaxAllocation splits one direction's rate.
func (t *Token) SetTaxAllocation(caller account.Address, d tax.Direction, dev, marketing, productDev uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetTaxAllocation(caller, d, dev, marketing, productDev))
}

// SetDevWallet sets the dev beneficiary and its share of each distribution.
func (t *Token) SetDevWallet(caller, addr account.Address, percent uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetWallet(caller, tax.RoleDev, addr, percent))
}

// SetMarketingWallet sets the marketing beneficiary.
func (t *Token) SetMarketingWallet(caller, addr account.Address, percent uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetWallet(caller, tax.RoleMarketing, addr, percent))
}

// SetProductDevWallet sets the product development beneficiary.
func (t *Token) SetProductDevWallet(caller, addr account.Address, percent uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetWallet(caller, tax.RoleProductDev, addr, percent))
}

// ToggleLimitExemptions replaces the exemption flags of addr. reserved is
// accepted and ignored.
func (t *Token) ToggleLimitExemptions(caller, addr account.Address, fee, maxWallet, maxTx, sellLimit, reserved bool) (tx.ApplyResult, error) {
	st := taxconfig.NewSetExemptions(caller, addr, tax.Exemptions{
		Fee:       fee,
		MaxWallet: maxWallet,
		MaxTx:     maxTx,
		SellLimit: sellLimit,
	})
	st.Reserved = reserved
	return t.Submit(st)
}

// SetLimits sets the max-wallet and max-transaction caps in basis points.
func (t *Token) SetLimits(caller account.Address, maxWalletBps, maxTxBps uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetLimits(caller, maxWalletBps, maxTxBps))
}

// SetMaxSellAllowanceMultiplier sets the per-cycle sell allowance in basis
// points of total supply. Zero disables the limiter.
func (t *Token) SetMaxSellAllowanceMultiplier(caller account.Address, bps uint64) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetSellAllowance(caller, bps))
}

// SetCycleLength sets the sell-cycle window.
func (t *Token) SetCycleLength(caller account.Address, d time.Duration) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetCycleLength(caller, d))
}

// LinkSellers makes addrs share one sell allowance.
func (t *Token) LinkSellers(caller account.Address, group string, addrs ...account.Address) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewLinkSellers(caller, group, addrs...))
}

// UnlinkSeller removes addr from its group.
func (t *Token) UnlinkSeller(caller, addr account.Address) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewUnlinkSeller(caller, addr))
}

// SetDistributionPolicy sets the trigger threshold and permission.
func (t *Token) SetDistributionPolicy(caller account.Address, p tax.DistributionPolicy) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetDistributionPolicy(caller, p))
}

// SetOperator hands operator rights to addr.
func (t *Token) SetOperator(caller, addr account.Address) (tx.ApplyResult, error) {
	return t.Submit(taxconfig.NewSetOperator(caller, addr))
}

// TriggerTax distributes the withheld balance to the beneficiaries. Below
// the minimum trigger it succeeds and moves nothing.
func (t *Token) TriggerTax(caller account.Address) (tx.ApplyResult, error) {
	return t.Submit(distribution.NewTriggerTax(caller))
}
