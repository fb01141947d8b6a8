package sdk

import (
	"errors"

	"github.com/holiman/uint256"
)

// ErrReadOnly is returned by State writes inside a Store.View.
var ErrReadOnly = errors.New("state is read-only")

// Env is the per-call environment the host hands to the contract: who is calling and when.
type Env struct {
	Sender    Address
	Timestamp int64 // unix seconds
	TxId      string
}

// State is the key/value view of one transaction. Get returns nil for missing keys.
type State interface {
	Get(key string) (*string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store runs transactions. A non-nil error from fn discards every write made through its State.
type Store interface {
	Update(fn func(State) error) error
	View(fn func(State) error) error
	Close() error
}

// Token is a fungible asset ledger bound to a transaction State. caller is the account
// executing the call, which for TransferFrom is the spender.
type Token interface {
	Address() Address
	Symbol() Asset
	BalanceOf(owner Address) (*uint256.Int, error)
	Allowance(owner, spender Address) (*uint256.Int, error)
	Transfer(caller, to Address, amount *uint256.Int) error
	TransferFrom(caller, from, to Address, amount *uint256.Int) error
	Approve(caller, spender Address, amount *uint256.Int) error
}

// TokenResolver looks up the token deployed at addr within st.
type TokenResolver interface {
	Resolve(st State, addr Address) (Token, error)
}
