// Package token is a small fungible token ledger living in the same transactional state as the
// contracts that use it, so a failed contract call also rolls back its token transfers.
package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"okinoko_rewards/sdk"
)

var (
	ErrTokenNotFound       = errors.New("token not found")
	ErrTokenExists         = errors.New("token already deployed")
	ErrInvalidToken        = errors.New("invalid token definition")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrNotMinter           = errors.New("caller is not the minter")
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAllowance is returned by TransferFrom when the spender was not approved for
	// the full amount.
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrSupplyOverflow        = errors.New("total supply overflow")
)

const (
	kMeta      byte = 0x70
	kBalance   byte = 0x71
	kAllowance byte = 0x72
)

// Meta is the stored token definition.
type Meta struct {
	Symbol sdk.Asset
	Minter sdk.Address
	Supply *uint256.Int
}

// Ledger is one token bound to one transaction state.
type Ledger struct {
	st   sdk.State
	addr sdk.Address
	meta Meta
}

// Deploy registers a new token at addr with minter as the only account allowed to mint.
func Deploy(st sdk.State, addr, minter sdk.Address, symbol sdk.Asset) (*Ledger, error) {
	if !validAddress(addr) || !validAddress(minter) {
		return nil, ErrInvalidAddress
	}
	if !symbol.IsValid() {
		return nil, fmt.Errorf("%w: symbol %q", ErrInvalidToken, symbol)
	}
	existing, err := st.Get(metaKey(addr))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrTokenExists, addr)
	}
	l := &Ledger{
		st:   st,
		addr: addr,
		meta: Meta{Symbol: symbol, Minter: minter, Supply: new(uint256.Int)},
	}
	if err := l.saveMeta(); err != nil {
		return nil, err
	}
	return l, nil
}

// Open loads the token deployed at addr.
func Open(st sdk.State, addr sdk.Address) (*Ledger, error) {
	ptr, err := st.Get(metaKey(addr))
	if err != nil {
		return nil, err
	}
	if ptr == nil {
		return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, addr)
	}
	meta, err := decodeMeta(*ptr)
	if err != nil {
		return nil, fmt.Errorf("token %s: %w", addr, err)
	}
	return &Ledger{st: st, addr: addr, meta: meta}, nil
}

// Resolver implements sdk.TokenResolver for ledgers stored in the host state.
type Resolver struct{}

func (Resolver) Resolve(st sdk.State, addr sdk.Address) (sdk.Token, error) {
	return Open(st, addr)
}

func (l *Ledger) Address() sdk.Address { return l.addr }
func (l *Ledger) Symbol() sdk.Asset    { return l.meta.Symbol }
func (l *Ledger) Minter() sdk.Address  { return l.meta.Minter }

func (l *Ledger) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(l.meta.Supply)
}

// Mint creates amount new units for to. Only the minter may call it.
func (l *Ledger) Mint(caller, to sdk.Address, amount *uint256.Int) error {
	if caller != l.meta.Minter {
		return ErrNotMinter
	}
	if !validAddress(to) {
		return ErrInvalidAddress
	}
	supply, overflow := new(uint256.Int).AddOverflow(l.meta.Supply, amount)
	if overflow {
		return ErrSupplyOverflow
	}
	bal, err := l.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := l.setAmount(balanceKey(l.addr, to), bal.Add(bal, amount)); err != nil {
		return err
	}
	l.meta.Supply = supply
	return l.saveMeta()
}

func (l *Ledger) BalanceOf(owner sdk.Address) (*uint256.Int, error) {
	return l.getAmount(balanceKey(l.addr, owner))
}

func (l *Ledger) Allowance(owner, spender sdk.Address) (*uint256.Int, error) {
	return l.getAmount(allowanceKey(l.addr, owner, spender))
}

// Approve sets (not adds to) the amount spender may move out of caller's balance.
func (l *Ledger) Approve(caller, spender sdk.Address, amount *uint256.Int) error {
	if !validAddress(spender) {
		return ErrInvalidAddress
	}
	return l.setAmount(allowanceKey(l.addr, caller, spender), amount)
}

func (l *Ledger) Transfer(caller, to sdk.Address, amount *uint256.Int) error {
	return l.move(caller, to, amount)
}

// TransferFrom moves amount from from to to, spending caller's allowance.
func (l *Ledger) TransferFrom(caller, from, to sdk.Address, amount *uint256.Int) error {
	allowance, err := l.Allowance(from, caller)
	if err != nil {
		return err
	}
	if allowance.Lt(amount) {
		return fmt.Errorf("%w: %s approved %s for %s, need %s",
			ErrInsufficientAllowance, from, caller, allowance.Dec(), amount.Dec())
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	return l.setAmount(allowanceKey(l.addr, from, caller), allowance.Sub(allowance, amount))
}

func (l *Ledger) move(from, to sdk.Address, amount *uint256.Int) error {
	if !validAddress(to) {
		return ErrInvalidAddress
	}
	fromBal, err := l.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Lt(amount) {
		return fmt.Errorf("%w: %s holds %s, need %s", ErrInsufficientBalance, from, fromBal.Dec(), amount.Dec())
	}
	if from == to {
		return nil
	}
	if err := l.setAmount(balanceKey(l.addr, from), fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := l.BalanceOf(to)
	if err != nil {
		return err
	}
	// supply bounds every balance, so this cannot overflow
	return l.setAmount(balanceKey(l.addr, to), toBal.Add(toBal, amount))
}

func (l *Ledger) getAmount(key string) (*uint256.Int, error) {
	ptr, err := l.st.Get(key)
	if err != nil {
		return nil, err
	}
	if ptr == nil || *ptr == "" {
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(*ptr)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount under token %s: %w", l.addr, err)
	}
	return v, nil
}

func (l *Ledger) setAmount(key string, v *uint256.Int) error {
	if v.IsZero() {
		return l.st.Delete(key)
	}
	return l.st.Set(key, v.Dec())
}

func (l *Ledger) saveMeta() error {
	return l.st.Set(metaKey(l.addr), encodeMeta(l.meta))
}

// encodeMeta packs the definition as symbol|supply|minter, minter last since it is free text.
func encodeMeta(m Meta) string {
	return strings.Join([]string{m.Symbol.String(), m.Supply.Dec(), m.Minter.String()}, "|")
}

func decodeMeta(s string) (Meta, error) {
	parts := strings.SplitN(s, "|", 3)
	if len(parts) != 3 {
		return Meta{}, ErrInvalidToken
	}
	supply, err := uint256.FromDecimal(parts[1])
	if err != nil {
		return Meta{}, fmt.Errorf("%w: supply: %w", ErrInvalidToken, err)
	}
	return Meta{Symbol: sdk.Asset(parts[0]), Supply: supply, Minter: sdk.Address(parts[2])}, nil
}

func validAddress(a sdk.Address) bool {
	return a.IsValid() && !strings.ContainsRune(a.String(), 0)
}

func metaKey(token sdk.Address) string {
	return string(kMeta) + token.String()
}

func balanceKey(token, owner sdk.Address) string {
	return string(kBalance) + token.String() + "\x00" + owner.String()
}

func allowanceKey(token, owner, spender sdk.Address) string {
	return string(kAllowance) + token.String() + "\x00" + owner.String() + "\x00" + spender.String()
}
