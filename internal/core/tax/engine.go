package tax

import (
	"errors"
	"fmt"
	"time"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger"
)

// ErrExceedsLimit is returned when a transfer breaks the max-wallet or
// max-transaction cap.
var ErrExceedsLimit = errors.New("exceeds limit")

// ErrContractFunds is returned when the contract account is used as a
// transfer source. Withheld tax leaves it only through Distribute.
var ErrContractFunds = errors.New("contract funds are not transferable")

// Quote is the outcome of taxing one transfer.
type Quote struct {
	Category Category        `json:"category"`
	Sender   account.Address `json:"sender"`
	Receiver account.Address `json:"receiver"`
	Rate     uint64          `json:"rate"`
	Gross    amount.Amount   `json:"gross"`
	Net      amount.Amount   `json:"net"`
	Withheld amount.Amount   `json:"withheld"`
}

// Engine applies taxed transfers to a view. It reads its configuration
// from Registry on every call.
type Engine struct {
	Registry    *Registry
	Contract    account.Address
	TotalSupply amount.Amount
}

// NewEngine returns an engine for the token whose tax account is contract.
func NewEngine(reg *Registry, contract account.Address, supply amount.Amount) *Engine {
	return &Engine{Registry: reg, Contract: contract, TotalSupply: supply}
}

// Quote classifies and taxes a transfer without touching any state.
// Withheld is floor(amt*rate/100) so Net+Withheld always equals amt.
func (e *Engine) Quote(sender, receiver account.Address, amt amount.Amount) (Quote, error) {
	cat, rate := e.Registry.RateFor(sender, receiver)
	withheld, err := amt.MulDiv(rate, MaxRate)
	if err != nil {
		return Quote{}, err
	}
	net, err := amt.Sub(withheld)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Category: cat,
		Sender:   sender,
		Receiver: receiver,
		Rate:     rate,
		Gross:    amt,
		Net:      net,
		Withheld: withheld,
	}, nil
}

// Transfer moves amt from sender to receiver through v, withholding tax on
// the contract's account. Every check runs before the first write; callers
// pass a sandbox so a failure can be discarded as a whole.
func (e *Engine) Transfer(v ledger.View, sender, receiver account.Address, amt amount.Amount, now time.Time) (Quote, error) {
	if sender == e.Contract {
		return Quote{}, fmt.Errorf("%w: %s", ErrContractFunds, sender)
	}

	q, err := e.Quote(sender, receiver, amt)
	if err != nil {
		return Quote{}, err
	}

	balance, err := ledger.Balance(v, sender)
	if err != nil {
		return Quote{}, err
	}
	if balance.LessThan(amt) {
		return Quote{}, fmt.Errorf("%w: %s holds %s, needs %s", ledger.ErrInsufficientBalance, sender, balance, amt)
	}

	if err := e.checkLimits(v, q); err != nil {
		return Quote{}, err
	}

	if q.Category == Sell && !e.Registry.Exemptions(sender).SellLimit {
		limiter := NewSellLimiter(e.Registry, e.TotalSupply)
		if err := limiter.CheckAndRecord(v, sender, amt, now); err != nil {
			return Quote{}, err
		}
	}

	if err := ledger.Debit(v, sender, amt); err != nil {
		return Quote{}, err
	}
	if err := ledger.Credit(v, receiver, q.Net); err != nil {
		return Quote{}, err
	}
	if err := ledger.Credit(v, e.Contract, q.Withheld); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// Cap returns bps basis points of total supply.
func (e *Engine) Cap(bps uint64) (amount.Amount, error) {
	return e.TotalSupply.MulDiv(bps, BasisPoints)
}

func (e *Engine) checkLimits(v ledger.View, q Quote) error {
	limits := e.Registry.Limits()

	if limits.MaxTxBps > 0 {
		exempt := e.Registry.Exemptions(q.Sender).MaxTx || e.Registry.Exemptions(q.Receiver).MaxTx
		if !exempt {
			maxTx, err := e.Cap(limits.MaxTxBps)
			if err != nil {
				return err
			}
			if q.Gross.GreaterThan(maxTx) {
				return fmt.Errorf("%w: transfer of %s above max transaction %s", ErrExceedsLimit, q.Gross, maxTx)
			}
		}
	}

	if limits.MaxWalletBps > 0 && !e.skipMaxWallet(q.Receiver) {
		maxWallet, err := e.Cap(limits.MaxWalletBps)
		if err != nil {
			return err
		}
		resulting, err := e.resultingBalance(v, q)
		if err != nil {
			return err
		}
		if resulting.GreaterThan(maxWallet) {
			return fmt.Errorf("%w: %s would hold %s, above max wallet %s", ErrExceedsLimit, q.Receiver, resulting, maxWallet)
		}
	}
	return nil
}

func (e *Engine) skipMaxWallet(receiver account.Address) bool {
	return receiver == e.Contract ||
		e.Registry.IsLP(receiver) ||
		e.Registry.Exemptions(receiver).MaxWallet
}

// resultingBalance is the receiver's balance once the transfer lands.
func (e *Engine) resultingBalance(v ledger.View, q Quote) (amount.Amount, error) {
	current, err := ledger.Balance(v, q.Receiver)
	if err != nil {
		return amount.Zero(), err
	}
	if q.Sender == q.Receiver {
		// Self transfers only lose the withheld part.
		return current.Sub(q.Withheld)
	}
	return current.Add(q.Net)
}
