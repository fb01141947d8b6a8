package contract

import (
	"fmt"

	"okinoko_rewards/sdk"
)

// call is everything one contract invocation works with: the caller's env, the transaction
// state, the loaded config and the events and metric updates held back until commit.
type call struct {
	pool   *RewardPool
	env    sdk.Env
	st     sdk.State
	cfg    *ContractConfig
	events []string
	after  []func()
}

func (c *call) sender() sdk.Address { return c.env.Sender }
func (c *call) now() int64          { return c.env.Timestamp }

func (c *call) access() accessRegistry { return accessRegistry{st: c.st} }
func (c *call) polls() pollEngine      { return pollEngine{st: c.st} }

func (c *call) rules() ruleRegistry {
	return ruleRegistry{st: c.st, polls: c.polls()}
}

func (c *call) claims() claimLedger {
	return claimLedger{st: c.st, polls: c.polls()}
}

// treasury resolves the configured token inside this transaction.
func (c *call) treasury() (treasury, error) {
	tok, err := c.pool.tokens.Resolve(c.st, c.cfg.Token)
	if err != nil {
		return treasury{}, fmt.Errorf("%w: %w", ErrTokenUnavailable, err)
	}
	return treasury{st: c.st, token: tok, self: c.pool.self}, nil
}

// emit queues an event line, dropped if the call fails.
func (c *call) emit(line string) {
	c.events = append(c.events, line)
}

// onCommit queues fn to run once the transaction committed.
func (c *call) onCommit(fn func()) {
	c.after = append(c.after, fn)
}

// pollOwner is the rule or reward a poll decides on, found through Poll.Kind and Poll.OwnerID.
type pollOwner interface {
	onPollFinalized(accepted bool, proposal *Amount)
	save(st sdk.State) error
}

func (c *call) ownerOf(p *Poll) (pollOwner, error) {
	switch p.Kind {
	case PollKindRule:
		rule, err := c.rules().get(p.OwnerID)
		if err != nil {
			return nil, err
		}
		return rule, nil
	case PollKindReward:
		rw, err := c.claims().get(p.OwnerID)
		if err != nil {
			return nil, err
		}
		return rw, nil
	default:
		return nil, fmt.Errorf("poll %d has unknown kind %d", p.ID, p.Kind)
	}
}
