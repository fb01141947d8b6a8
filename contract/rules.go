package contract

import (
	"fmt"

	"github.com/holiman/uint256"

	"okinoko_rewards/sdk"
)

// ruleRegistry keeps the ordered list of reward rules. A rule starts pending with amount zero
// and takes the proposed amount only if its poll accepts it.
type ruleRegistry struct {
	st    sdk.State
	polls pollEngine
}

func (r ruleRegistry) add(amount *Amount, duration uint64, now int64) (*RewardRule, *Poll, error) {
	if amount == nil || amount.IsZero() {
		return nil, nil, ErrInvalidAmount
	}
	index, err := nextID(r.st, countRules)
	if err != nil {
		return nil, nil, err
	}
	poll, err := r.polls.create(PollKindRule, index, amount, duration, now)
	if err != nil {
		return nil, nil, err
	}
	rule := &RewardRule{
		ID:     index,
		Amount: new(uint256.Int),
		State:  RulePending,
		PollID: poll.ID,
	}
	if err := saveRewardRule(r.st, rule); err != nil {
		return nil, nil, err
	}
	return rule, poll, nil
}

func (r ruleRegistry) count() (uint64, error) {
	return getCount(r.st, countRules)
}

func (r ruleRegistry) get(index uint64) (*RewardRule, error) {
	rule, err := loadRewardRule(r.st, index)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, fmt.Errorf("rule %d: %w", index, ErrIndexOutOfRange)
	}
	return rule, nil
}

// onPollFinalized enables the rule with the voted amount, or disables it.
func (rule *RewardRule) onPollFinalized(accepted bool, proposal *Amount) {
	if accepted {
		rule.State = RuleEnabled
		rule.Amount = new(uint256.Int).Set(proposal)
		return
	}
	rule.State = RuleDisabled
}

func (rule *RewardRule) save(st sdk.State) error {
	return saveRewardRule(st, rule)
}
