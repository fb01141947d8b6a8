package contract

import (
	"math"

	"github.com/holiman/uint256"

	"okinoko_rewards/sdk"
)

// Amount is a token quantity in base units.
type Amount = uint256.Int

// RuleState captures a reward rule's lifecycle.
type RuleState uint8

const (
	RulePending  RuleState = 0
	RuleEnabled  RuleState = 1
	RuleDisabled RuleState = 2
)

// String returns the log friendly name.
// Example payload: RuleEnabled.String()
func (s RuleState) String() string {
	switch s {
	case RulePending:
		return "pending"
	case RuleEnabled:
		return "enabled"
	case RuleDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// PollKind says what a poll decides on, together with Poll.OwnerID it points back to the owner.
type PollKind uint8

const (
	PollKindRule   PollKind = 1
	PollKindReward PollKind = 2
)

func (k PollKind) String() string {
	switch k {
	case PollKindRule:
		return "rule"
	case PollKindReward:
		return "reward"
	default:
		return "unknown"
	}
}

// ContractConfig holds the singleton settings written by Initialize.
type ContractConfig struct {
	Owner                  sdk.Address
	Token                  sdk.Address
	RewardPollDuration     uint64
	RewardRulePollDuration uint64
}

// Member is a row in the access registry. Managers are always members too.
type Member struct {
	Address   sdk.Address
	IsManager bool
	JoinedAt  int64
}

// RewardRule is a standing amount members may claim once enabled by a rule poll.
type RewardRule struct {
	ID     uint64
	Amount *Amount
	State  RuleState
	PollID uint64
}

// Reward is one claim by a beneficiary. It is payable once its poll was accepted.
type Reward struct {
	ID          uint64
	Beneficiary sdk.Address
	Amount      *Amount
	Withdrawn   bool
	PollID      uint64
}

// Poll is a time boxed yes/no vote on a proposed amount. Duration is captured at creation so
// later duration changes never move a running deadline.
type Poll struct {
	ID         uint64
	Kind       PollKind
	OwnerID    uint64
	Proposal   *Amount
	StartTime  int64
	Duration   uint64
	Finalized  bool
	Accepted   bool
	AgreeCount uint64
	VoteCount  uint64
}

// Deadline is the first unix second at which the poll no longer takes votes. It saturates at
// math.MaxInt64 instead of wrapping.
func (p *Poll) Deadline() int64 {
	d := int64(p.Duration)
	if p.StartTime > math.MaxInt64-d {
		return math.MaxInt64
	}
	return p.StartTime + d
}

// IsOpen reports whether votes are still accepted at now.
func (p *Poll) IsOpen(now int64) bool {
	return now < p.Deadline()
}

// Vote is a recorded ballot. Time zero means the voter has not voted.
type Vote struct {
	Time   int64
	Weight uint64
	Agree  bool
}

// HasVoted is the Time sentinel check spelled out.
func (v *Vote) HasVoted() bool {
	return v != nil && v.Time != 0
}
