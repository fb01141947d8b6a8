package contract

import (
	"fmt"

	"okinoko_rewards/sdk"
)

// accessRegistry answers who is a manager and who is a member. There is exactly one manager,
// set at Initialize, and membership is add-only.
type accessRegistry struct {
	st sdk.State
}

func (a accessRegistry) isManager(addr sdk.Address) (bool, error) {
	m, err := loadMember(a.st, addr)
	if err != nil {
		return false, err
	}
	return m != nil && m.IsManager, nil
}

// isMember is true for the manager as well.
func (a accessRegistry) isMember(addr sdk.Address) (bool, error) {
	m, err := loadMember(a.st, addr)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

func (a accessRegistry) requireManager(addr sdk.Address) error {
	ok, err := a.isManager(addr)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotManager
	}
	return nil
}

func (a accessRegistry) requireMember(addr sdk.Address) error {
	ok, err := a.isMember(addr)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}

// bootstrap registers the manager during Initialize.
func (a accessRegistry) bootstrap(manager sdk.Address, now int64) error {
	return saveMember(a.st, &Member{Address: manager, IsManager: true, JoinedAt: now})
}

// addMember lets the manager add addr. Adding an existing member is a no-op that reports false.
func (a accessRegistry) addMember(caller, addr sdk.Address, now int64) (bool, error) {
	if err := a.requireManager(caller); err != nil {
		return false, err
	}
	if !addr.IsValid() {
		return false, fmt.Errorf("member %q: %w", addr, ErrInvalidAddress)
	}
	existing, err := loadMember(a.st, addr)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	return true, saveMember(a.st, &Member{Address: addr, JoinedAt: now})
}
