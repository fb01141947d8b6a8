package contract

import (
	"fmt"

	"okinoko_rewards/sdk"
)

// claimLedger holds every reward claim and its per-beneficiary index.
type claimLedger struct {
	st    sdk.State
	polls pollEngine
}

// claim files a reward for beneficiary and opens its poll.
func (l claimLedger) claim(beneficiary sdk.Address, amount *Amount, duration uint64, now int64) (*Reward, *Poll, error) {
	if amount == nil || amount.IsZero() {
		return nil, nil, ErrInvalidAmount
	}
	id, err := nextID(l.st, countRewards)
	if err != nil {
		return nil, nil, err
	}
	poll, err := l.polls.create(PollKindReward, id, amount, duration, now)
	if err != nil {
		return nil, nil, err
	}
	rw := &Reward{
		ID:          id,
		Beneficiary: beneficiary,
		Amount:      new(Amount).Set(amount),
		PollID:      poll.ID,
	}
	if err := saveReward(l.st, rw); err != nil {
		return nil, nil, err
	}
	if err := appendBeneficiaryReward(l.st, beneficiary, id); err != nil {
		return nil, nil, err
	}
	return rw, poll, nil
}

func (l claimLedger) get(id uint64) (*Reward, error) {
	rw, err := loadReward(l.st, id)
	if err != nil {
		return nil, err
	}
	if rw == nil {
		return nil, fmt.Errorf("reward %d: %w", id, ErrRewardNotFound)
	}
	return rw, nil
}

func (l claimLedger) count(beneficiary sdk.Address) (uint64, error) {
	return getCount(l.st, beneficiaryCounter(beneficiary))
}

// of returns the i-th reward filed by beneficiary.
func (l claimLedger) of(beneficiary sdk.Address, i uint64) (*Reward, error) {
	id, ok, err := beneficiaryRewardID(l.st, beneficiary, i)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("reward %d of %s: %w", i, beneficiary, ErrIndexOutOfRange)
	}
	return l.get(id)
}

// withdraw pays out an approved reward exactly once. The withdrawn flag is stored before the
// treasury moves any tokens.
func (l claimLedger) withdraw(caller sdk.Address, id uint64, t treasury) (*Reward, error) {
	rw, err := l.get(id)
	if err != nil {
		return nil, err
	}
	if caller != rw.Beneficiary {
		return nil, ErrNotBeneficiary
	}
	poll, err := l.polls.get(rw.PollID)
	if err != nil {
		return nil, err
	}
	if !poll.Finalized || !poll.Accepted {
		return nil, ErrNotApproved
	}
	if rw.Withdrawn {
		return nil, ErrAlreadyWithdrawn
	}
	rw.Withdrawn = true
	if err := saveReward(l.st, rw); err != nil {
		return nil, err
	}
	if err := t.withdraw(rw.Beneficiary, rw.Amount); err != nil {
		return nil, err
	}
	return rw, nil
}

// onPollFinalized has nothing to store: approval is read off the poll at withdraw time.
func (rw *Reward) onPollFinalized(bool, *Amount) {}

func (rw *Reward) save(st sdk.State) error {
	return saveReward(st, rw)
}
