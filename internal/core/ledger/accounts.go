package ledger

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goTaxLedger/internal/core/account"
	"github.com/LeJamon/goTaxLedger/internal/core/amount"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/keylet"
)

var (
	// ErrInsufficientBalance is returned by Debit when the account holds less
	// than the requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientAllowance is returned by SpendAllowance.
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// Balance returns the balance of addr. Absent accounts hold zero.
func Balance(v View, addr account.Address) (amount.Amount, error) {
	root, _, err := readAccount(v, addr)
	if err != nil {
		return amount.Zero(), err
	}
	return root.Balance, nil
}

// Credit adds amt to addr, creating the account on first credit.
func Credit(v View, addr account.Address, amt amount.Amount) error {
	if amt.IsZero() {
		return nil
	}
	root, exists, err := readAccount(v, addr)
	if err != nil {
		return err
	}
	root.Balance, err = root.Balance.Add(amt)
	if err != nil {
		return fmt.Errorf("credit %s: %w", addr, err)
	}
	return write(v, keylet.Account(addr), exists, root)
}

// Debit removes amt from addr.
func Debit(v View, addr account.Address, amt amount.Amount) error {
	root, exists, err := readAccount(v, addr)
	if err != nil {
		return err
	}
	if root.Balance.LessThan(amt) {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientBalance, addr, root.Balance, amt)
	}
	if amt.IsZero() {
		return nil
	}
	root.Balance, err = root.Balance.Sub(amt)
	if err != nil {
		return err
	}
	return write(v, keylet.Account(addr), exists, root)
}

// Balances returns every account's balance, zero balances included.
func Balances(v View) (map[account.Address]amount.Amount, error) {
	out := make(map[account.Address]amount.Amount)
	var decodeErr error
	err := v.ForEach(func(k keylet.Keylet, data []byte) bool {
		if k.Type != entry.TypeAccountRoot {
			return true
		}
		var root entry.AccountRoot
		if decodeErr = entry.Decode(data, &root); decodeErr != nil {
			return false
		}
		out[root.Account] = root.Balance
		return true
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}

// SumBalances adds up every balance in the view.
func SumBalances(v View) (amount.Amount, error) {
	balances, err := Balances(v)
	if err != nil {
		return amount.Zero(), err
	}
	total := amount.Zero()
	for _, b := range balances {
		if total, err = total.Add(b); err != nil {
			return amount.Zero(), err
		}
	}
	return total, nil
}

// Allowance returns what spender may still move out of owner's account.
func Allowance(v View, owner, spender account.Address) (amount.Amount, error) {
	data, err := v.Read(keylet.Allowance(owner, spender))
	if err != nil || data == nil {
		return amount.Zero(), err
	}
	var a entry.Allowance
	if err := entry.Decode(data, &a); err != nil {
		return amount.Zero(), err
	}
	return a.Amount, nil
}

// SetAllowance overwrites the allowance. A zero allowance removes the entry.
func SetAllowance(v View, owner, spender account.Address, amt amount.Amount) error {
	k := keylet.Allowance(owner, spender)
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if amt.IsZero() {
		if !exists {
			return nil
		}
		return v.Erase(k)
	}
	return write(v, k, exists, &entry.Allowance{Owner: owner, Spender: spender, Amount: amt})
}

// SpendAllowance lowers the allowance by amt.
func SpendAllowance(v View, owner, spender account.Address, amt amount.Amount) error {
	current, err := Allowance(v, owner, spender)
	if err != nil {
		return err
	}
	if current.LessThan(amt) {
		return fmt.Errorf("%w: %s may spend %s of %s, needs %s", ErrInsufficientAllowance, spender, current, owner, amt)
	}
	remaining, err := current.Sub(amt)
	if err != nil {
		return err
	}
	return SetAllowance(v, owner, spender, remaining)
}

// ReadSellCycle returns the accumulator at k, or a zero one when absent.
func ReadSellCycle(v View, k keylet.Keylet) (*entry.SellCycle, error) {
	data, err := v.Read(k)
	if err != nil {
		return nil, err
	}
	sc := &entry.SellCycle{}
	if data == nil {
		return sc, nil
	}
	if err := entry.Decode(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// WriteSellCycle stores the accumulator at k.
func WriteSellCycle(v View, k keylet.Keylet, sc *entry.SellCycle) error {
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	return write(v, k, exists, sc)
}

func readAccount(v View, addr account.Address) (*entry.AccountRoot, bool, error) {
	data, err := v.Read(keylet.Account(addr))
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return &entry.AccountRoot{Account: addr}, false, nil
	}
	root := &entry.AccountRoot{}
	if err := entry.Decode(data, root); err != nil {
		return nil, false, err
	}
	return root, true, nil
}

func write(v View, k keylet.Keylet, exists bool, value any) error {
	data, err := entry.Encode(value)
	if err != nil {
		return err
	}
	if exists {
		return v.Update(k, data)
	}
	return v.Insert(k, data)
}
