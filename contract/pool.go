// Package contract implements the reward pool: a token treasury whose members vote on reward
// rules and on individual reward claims.
package contract

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"okinoko_rewards/sdk"
)

// RewardPool is the orchestrator. Each mutating method is one atomic call: it either commits
// every write or none, and its events are only published after the commit.
type RewardPool struct {
	store        sdk.Store
	tokens       sdk.TokenResolver
	self         sdk.Address
	logger       *slog.Logger
	promRegistry prometheus.Registerer
	metrics      *poolMetrics
	onEvent      func(string)
}

// New wires a pool on top of store. tokens resolves the token address given to Initialize.
func New(store sdk.Store, tokens sdk.TokenResolver, opts ...RewardPoolOptionFunc) *RewardPool {
	p := &RewardPool{
		store:  store,
		tokens: tokens,
		self:   DefaultAddress,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		// Create logger to throw away logs
		p.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	p.metrics = newPoolMetrics(p.promRegistry)
	return p
}

// Address is the account the treasury lives under.
func (p *RewardPool) Address() sdk.Address {
	return p.self
}

func (p *RewardPool) newCall(env sdk.Env, st sdk.State) *call {
	env.Sender = sdk.ParseAddress(env.Sender.String())
	return &call{pool: p, env: env, st: st}
}

// update runs fn as one transaction. requireInit loads the config first and fails
// ErrNotInitialized without it.
func (p *RewardPool) update(env sdk.Env, op string, requireInit bool, fn func(c *call) error) error {
	var committed *call
	err := p.store.Update(func(st sdk.State) error {
		c := p.newCall(env, st)
		if requireInit {
			cfg, err := requireInitialized(st)
			if err != nil {
				return err
			}
			c.cfg = cfg
		}
		if err := fn(c); err != nil {
			return err
		}
		committed = c
		return nil
	})
	p.metrics.callDone(op, err)
	if err != nil {
		p.logger.Debug(
			"call rejected",
			"component", "rewardpool",
			"op", op,
			"sender", env.Sender,
			"tx", env.TxId,
			"error", err,
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, fn := range committed.after {
		fn()
	}
	for _, e := range committed.events {
		p.logger.Info(e, "component", "rewardpool", "tx", env.TxId)
		if p.onEvent != nil {
			p.onEvent(e)
		}
	}
	return nil
}

// view runs fn against a read-only snapshot of an initialized pool.
func (p *RewardPool) view(fn func(c *call) error) error {
	return p.store.View(func(st sdk.State) error {
		cfg, err := requireInitialized(st)
		if err != nil {
			return err
		}
		c := p.newCall(sdk.Env{}, st)
		c.cfg = cfg
		return fn(c)
	})
}

// Initialize sets the single manager and the token. It can only run once.
func (p *RewardPool) Initialize(env sdk.Env, manager, token sdk.Address) error {
	manager = sdk.ParseAddress(manager.String())
	token = sdk.ParseAddress(token.String())
	return p.update(env, "initialize", false, func(c *call) error {
		existing, err := loadContractConfig(c.st)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyInitialized
		}
		if !manager.IsValid() {
			return fmt.Errorf("manager %q: %w", manager, ErrInvalidAddress)
		}
		if !token.IsValid() {
			return fmt.Errorf("token %q: %w", token, ErrInvalidAddress)
		}
		if err := saveContractConfig(c.st, &ContractConfig{Owner: manager, Token: token}); err != nil {
			return err
		}
		if err := c.access().bootstrap(manager, c.now()); err != nil {
			return err
		}
		c.emitInitEvent(manager, token)
		return nil
	})
}

// SetRewardPollDuration sets the voting window for reward claims filed from now on.
func (p *RewardPool) SetRewardPollDuration(env sdk.Env, secs uint64) error {
	return p.setDuration(env, PollKindReward, secs)
}

// SetRewardRulePollDuration sets the voting window for reward rules created from now on.
func (p *RewardPool) SetRewardRulePollDuration(env sdk.Env, secs uint64) error {
	return p.setDuration(env, PollKindRule, secs)
}

func (p *RewardPool) setDuration(env sdk.Env, kind PollKind, secs uint64) error {
	return p.update(env, "set_duration", true, func(c *call) error {
		if err := c.access().requireManager(c.sender()); err != nil {
			return err
		}
		if secs == 0 || secs > MaxPollDuration {
			return ErrInvalidDuration
		}
		if kind == PollKindRule {
			c.cfg.RewardRulePollDuration = secs
		} else {
			c.cfg.RewardPollDuration = secs
		}
		if err := saveContractConfig(c.st, c.cfg); err != nil {
			return err
		}
		c.emitDurationEvent(kind, secs)
		return nil
	})
}

// AddMember adds addr to the pool. Manager only, adding an existing member changes nothing.
func (p *RewardPool) AddMember(env sdk.Env, addr sdk.Address) error {
	addr = sdk.ParseAddress(addr.String())
	return p.update(env, "add_member", true, func(c *call) error {
		added, err := c.access().addMember(c.sender(), addr, c.now())
		if err != nil {
			return err
		}
		if added {
			c.emitMemberAddedEvent(addr, c.sender())
		}
		return nil
	})
}

// Deposit pulls amount from the sender into the treasury. The sender must have approved the
// pool address on the token first.
func (p *RewardPool) Deposit(env sdk.Env, amount *Amount) error {
	return p.update(env, "deposit", true, func(c *call) error {
		t, err := c.treasury()
		if err != nil {
			return err
		}
		if err := t.deposit(c.sender(), amount); err != nil {
			return err
		}
		c.emitDepositEvent(c.sender(), amount)
		c.onCommit(p.metrics.deposited)
		return nil
	})
}

// AddRewardRule proposes a rule paying amount per claim and opens its poll. Returns the rule index.
func (p *RewardPool) AddRewardRule(env sdk.Env, amount *Amount) (uint64, error) {
	var index uint64
	err := p.update(env, "add_reward_rule", true, func(c *call) error {
		if err := c.access().requireManager(c.sender()); err != nil {
			return err
		}
		if c.cfg.RewardRulePollDuration == 0 {
			return ErrInvalidDuration
		}
		rule, poll, err := c.rules().add(amount, c.cfg.RewardRulePollDuration, c.now())
		if err != nil {
			return err
		}
		index = rule.ID
		c.emitRuleCreatedEvent(rule, poll)
		return nil
	})
	return index, err
}

// ClaimReward files a claim by the sender for an enabled rule and opens its poll. Returns the reward id.
func (p *RewardPool) ClaimReward(env sdk.Env, ruleIndex uint64) (uint64, error) {
	var id uint64
	err := p.update(env, "claim_reward", true, func(c *call) error {
		if err := c.access().requireMember(c.sender()); err != nil {
			return err
		}
		rule, err := c.rules().get(ruleIndex)
		if err != nil {
			return err
		}
		if rule.State != RuleEnabled {
			return fmt.Errorf("rule %d is %s: %w", ruleIndex, rule.State, ErrRuleNotEnabled)
		}
		rw, err := c.fileReward(c.sender(), rule.Amount)
		if err != nil {
			return err
		}
		id = rw.ID
		return nil
	})
	return id, err
}

// ProposeReward lets the manager put a one-off reward for a member to the vote.
func (p *RewardPool) ProposeReward(env sdk.Env, beneficiary sdk.Address, amount *Amount) (uint64, error) {
	beneficiary = sdk.ParseAddress(beneficiary.String())
	var id uint64
	err := p.update(env, "propose_reward", true, func(c *call) error {
		if err := c.access().requireManager(c.sender()); err != nil {
			return err
		}
		if err := c.access().requireMember(beneficiary); err != nil {
			return fmt.Errorf("beneficiary %s: %w", beneficiary, err)
		}
		rw, err := c.fileReward(beneficiary, amount)
		if err != nil {
			return err
		}
		id = rw.ID
		return nil
	})
	return id, err
}

func (c *call) fileReward(beneficiary sdk.Address, amount *Amount) (*Reward, error) {
	if c.cfg.RewardPollDuration == 0 {
		return nil, ErrInvalidDuration
	}
	rw, _, err := c.claims().claim(beneficiary, amount, c.cfg.RewardPollDuration, c.now())
	if err != nil {
		return nil, err
	}
	c.emitRewardClaimedEvent(rw, c.sender())
	return rw, nil
}

// Vote records the sender's vote on pollID. Members only, one vote per poll.
func (p *RewardPool) Vote(env sdk.Env, pollID uint64, agree bool) error {
	return p.update(env, "vote", true, func(c *call) error {
		return c.castVote(pollID, c.sender(), agree, false)
	})
}

// VoteSigned records a vote signed by voter and submitted by anyone. The signature covers the
// pool address, poll, choice and nonce, and every (voter, nonce) pair works once.
func (p *RewardPool) VoteSigned(env sdk.Env, pollID uint64, voter sdk.Address, agree bool, nonce uint64, sig []byte) error {
	voter = sdk.ParseAddress(voter.String())
	return p.update(env, "vote_signed", true, func(c *call) error {
		if err := verifyVoteSignature(p.self, pollID, voter, agree, nonce, sig); err != nil {
			return err
		}
		used, err := isNonceUsed(c.st, voter, nonce)
		if err != nil {
			return err
		}
		if used {
			return ErrNonceReused
		}
		if err := markNonceUsed(c.st, voter, nonce); err != nil {
			return err
		}
		return c.castVote(pollID, voter, agree, true)
	})
}

func (c *call) castVote(pollID uint64, voter sdk.Address, agree, relayed bool) error {
	if err := c.access().requireMember(voter); err != nil {
		return err
	}
	poll, err := c.polls().get(pollID)
	if err != nil {
		return err
	}
	if _, err := c.polls().vote(poll, voter, agree, c.now()); err != nil {
		return err
	}
	c.emitVoteEvent(pollID, voter, agree, relayed)
	c.onCommit(func() { c.pool.metrics.voted(relayed) })
	return nil
}

// TryToFinalize closes pollID after its deadline and applies the outcome to the rule or reward
// it decides on. Anyone may call it. Returns whether the poll was accepted.
func (p *RewardPool) TryToFinalize(env sdk.Env, pollID uint64) (bool, error) {
	var accepted bool
	err := p.update(env, "finalize", true, func(c *call) error {
		poll, err := c.polls().get(pollID)
		if err != nil {
			return err
		}
		owner, err := c.ownerOf(poll)
		if err != nil {
			return err
		}
		if err := c.polls().finalize(poll, c.now()); err != nil {
			return err
		}
		owner.onPollFinalized(poll.Accepted, poll.Proposal)
		if err := owner.save(c.st); err != nil {
			return err
		}
		accepted = poll.Accepted
		c.emitPollFinalizedEvent(poll)
		c.onCommit(func() { p.metrics.finalized(poll) })
		return nil
	})
	return accepted, err
}

// Withdraw pays an approved reward to its beneficiary, once.
func (p *RewardPool) Withdraw(env sdk.Env, rewardID uint64) error {
	return p.update(env, "withdraw", true, func(c *call) error {
		t, err := c.treasury()
		if err != nil {
			return err
		}
		rw, err := c.claims().withdraw(c.sender(), rewardID, t)
		if err != nil {
			return err
		}
		c.emitWithdrawEvent(rw)
		c.onCommit(p.metrics.withdrew)
		return nil
	})
}
