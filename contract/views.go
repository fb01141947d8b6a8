package contract

import (
	"okinoko_rewards/sdk"
)

// Owner returns the manager set at Initialize.
func (p *RewardPool) Owner() (sdk.Address, error) {
	var owner sdk.Address
	err := p.view(func(c *call) error {
		owner = c.cfg.Owner
		return nil
	})
	return owner, err
}

// Token returns the token the treasury holds.
func (p *RewardPool) Token() (sdk.Address, error) {
	var token sdk.Address
	err := p.view(func(c *call) error {
		token = c.cfg.Token
		return nil
	})
	return token, err
}

func (p *RewardPool) RewardPollDuration() (uint64, error) {
	var d uint64
	err := p.view(func(c *call) error {
		d = c.cfg.RewardPollDuration
		return nil
	})
	return d, err
}

func (p *RewardPool) RewardRulePollDuration() (uint64, error) {
	var d uint64
	err := p.view(func(c *call) error {
		d = c.cfg.RewardRulePollDuration
		return nil
	})
	return d, err
}

func (p *RewardPool) IsMember(addr sdk.Address) (bool, error) {
	var ok bool
	err := p.view(func(c *call) error {
		var err error
		ok, err = c.access().isMember(sdk.ParseAddress(addr.String()))
		return err
	})
	return ok, err
}

func (p *RewardPool) IsManager(addr sdk.Address) (bool, error) {
	var ok bool
	err := p.view(func(c *call) error {
		var err error
		ok, err = c.access().isManager(sdk.ParseAddress(addr.String()))
		return err
	})
	return ok, err
}

// TreasuryBalance is the pool's tracked balance, never more than the token balance it holds.
func (p *RewardPool) TreasuryBalance() (*Amount, error) {
	var bal *Amount
	err := p.view(func(c *call) error {
		var err error
		bal, err = getTreasuryBalance(c.st)
		return err
	})
	return bal, err
}

func (p *RewardPool) RewardRuleCount() (uint64, error) {
	var n uint64
	err := p.view(func(c *call) error {
		var err error
		n, err = c.rules().count()
		return err
	})
	return n, err
}

// RewardRule returns the rule at index, ErrIndexOutOfRange past the end.
func (p *RewardPool) RewardRule(index uint64) (*RewardRule, error) {
	var rule *RewardRule
	err := p.view(func(c *call) error {
		var err error
		rule, err = c.rules().get(index)
		return err
	})
	return rule, err
}

func (p *RewardPool) Reward(id uint64) (*Reward, error) {
	var rw *Reward
	err := p.view(func(c *call) error {
		var err error
		rw, err = c.claims().get(id)
		return err
	})
	return rw, err
}

// RewardCount is how many rewards beneficiary has filed or been proposed for.
func (p *RewardPool) RewardCount(beneficiary sdk.Address) (uint64, error) {
	var n uint64
	err := p.view(func(c *call) error {
		var err error
		n, err = c.claims().count(sdk.ParseAddress(beneficiary.String()))
		return err
	})
	return n, err
}

// RewardsOf returns the i-th reward of beneficiary in filing order.
func (p *RewardPool) RewardsOf(beneficiary sdk.Address, i uint64) (*Reward, error) {
	var rw *Reward
	err := p.view(func(c *call) error {
		var err error
		rw, err = c.claims().of(sdk.ParseAddress(beneficiary.String()), i)
		return err
	})
	return rw, err
}

func (p *RewardPool) Poll(id uint64) (*Poll, error) {
	var poll *Poll
	err := p.view(func(c *call) error {
		var err error
		poll, err = c.polls().get(id)
		return err
	})
	return poll, err
}

// VoteOf returns voter's vote on pollID, a zero Vote if they did not vote.
func (p *RewardPool) VoteOf(pollID uint64, voter sdk.Address) (*Vote, error) {
	var v *Vote
	err := p.view(func(c *call) error {
		if _, err := c.polls().get(pollID); err != nil {
			return err
		}
		var err error
		v, err = loadVote(c.st, pollID, sdk.ParseAddress(voter.String()))
		return err
	})
	return v, err
}

// NonceUsed reports whether voter already spent nonce on a relayed vote.
func (p *RewardPool) NonceUsed(voter sdk.Address, nonce uint64) (bool, error) {
	var used bool
	err := p.view(func(c *call) error {
		var err error
		used, err = isNonceUsed(c.st, sdk.ParseAddress(voter.String()), nonce)
		return err
	})
	return used, err
}
