package contract

import "okinoko_rewards/sdk"

const (
	// DefaultAddress is the account the pool holds its treasury under unless WithAddress says otherwise.
	DefaultAddress sdk.Address = "contract:rewardpool"

	// MaxPollDuration caps poll durations. Deadlines past the int64 range saturate, see Poll.Deadline.
	MaxPollDuration uint64 = 1 << 32

	// voteWeight is what every vote counts for. Kept separate so weighted voting only touches one place.
	voteWeight uint64 = 1
)

// counter names used for id generation
const (
	countPolls   = "polls"
	countRules   = "rules"
	countRewards = "rewards"
)
