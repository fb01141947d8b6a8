package contract

import (
	"fmt"

	"okinoko_rewards/sdk"
)

// emitInitEvent writes a tiny "mi" line once the pool has its manager and token.
func (c *call) emitInitEvent(manager, token sdk.Address) {
	c.emit(fmt.Sprintf("mi|by:%s|tk:%s", manager, token))
}

// emitMemberAddedEvent lets watchers track the member list without scanning state.
func (c *call) emitMemberAddedEvent(member, by sdk.Address) {
	c.emit(fmt.Sprintf("ma|m:%s|by:%s", member, by))
}

func (c *call) emitDepositEvent(from sdk.Address, amount *Amount) {
	c.emit(fmt.Sprintf("dp|by:%s|amt:%s", from, amount.Dec()))
}

// emitDurationEvent logs which poll duration changed, k is rule or reward.
func (c *call) emitDurationEvent(kind PollKind, secs uint64) {
	c.emit(fmt.Sprintf("du|k:%s|s:%d", kind, secs))
}

func (c *call) emitRuleCreatedEvent(rule *RewardRule, poll *Poll) {
	c.emit(fmt.Sprintf("rc|id:%d|poll:%d|amt:%s", rule.ID, poll.ID, poll.Proposal.Dec()))
}

// emitRewardClaimedEvent covers both member claims and manager proposals.
func (c *call) emitRewardClaimedEvent(rw *Reward, by sdk.Address) {
	c.emit(fmt.Sprintf("wc|id:%d|poll:%d|to:%s|amt:%s|by:%s", rw.ID, rw.PollID, rw.Beneficiary, rw.Amount.Dec(), by))
}

// emitVoteEvent marks relayed votes with r:true so explorers can tell them apart.
func (c *call) emitVoteEvent(pollID uint64, voter sdk.Address, agree, relayed bool) {
	c.emit(fmt.Sprintf("v|poll:%d|by:%s|a:%t|r:%t", pollID, voter, agree, relayed))
}

func (c *call) emitPollFinalizedEvent(p *Poll) {
	c.emit(fmt.Sprintf("pf|poll:%d|k:%s|o:%d|ok:%t|y:%d|n:%d",
		p.ID, p.Kind, p.OwnerID, p.Accepted, p.AgreeCount, p.VoteCount-p.AgreeCount))
}

func (c *call) emitWithdrawEvent(rw *Reward) {
	c.emit(fmt.Sprintf("wd|id:%d|to:%s|amt:%s", rw.ID, rw.Beneficiary, rw.Amount.Dec()))
}
