package contract

import (
	"fmt"

	"github.com/holiman/uint256"

	"okinoko_rewards/sdk"
)

// treasury tracks what the pool may pay out. The tracked balance only moves together with a
// successful token transfer in the same transaction.
type treasury struct {
	st    sdk.State
	token sdk.Token
	self  sdk.Address
}

func (t treasury) balance() (*Amount, error) {
	return getTreasuryBalance(t.st)
}

// deposit pulls amount from from using the allowance granted to the pool. The pool cannot
// deposit to itself: the token treats that as a no-op and nothing would come in.
func (t treasury) deposit(from sdk.Address, amount *Amount) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	if from == t.self {
		return fmt.Errorf("%w: pool cannot deposit to itself", ErrInvalidAddress)
	}
	if err := t.token.TransferFrom(t.self, from, t.self, amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientAllowance, err)
	}
	bal, err := t.balance()
	if err != nil {
		return err
	}
	next, overflow := new(uint256.Int).AddOverflow(bal, amount)
	if overflow {
		return fmt.Errorf("%w: treasury overflow", ErrInvalidAmount)
	}
	return setTreasuryBalance(t.st, next)
}

// withdraw pays amount to to. The balance is debited before the transfer goes out.
func (t treasury) withdraw(to sdk.Address, amount *Amount) error {
	bal, err := t.balance()
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientTreasuryBalance, bal.Dec(), amount.Dec())
	}
	if err := setTreasuryBalance(t.st, new(uint256.Int).Sub(bal, amount)); err != nil {
		return err
	}
	if err := t.token.Transfer(t.self, to, amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientTreasuryBalance, err)
	}
	return nil
}
