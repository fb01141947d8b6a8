package contract_test

import (
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_rewards/contract"
)

// =============================================================================
// Initialization
// =============================================================================

// TestInitializeOnce checks the init flow so we dont break it again.
func TestInitializeOnce(t *testing.T) {
	pt := SetupPoolTest(t)

	owner, err := pt.pool.Owner()
	require.NoError(t, err)
	assert.Equal(t, managerAddress, owner)
	tok, err := pt.pool.Token()
	require.NoError(t, err)
	assert.Equal(t, tokenAddress, tok)

	isManager, err := pt.pool.IsManager(managerAddress)
	require.NoError(t, err)
	assert.True(t, isManager)
	isMember, err := pt.pool.IsMember(managerAddress)
	require.NoError(t, err)
	assert.True(t, isMember, "managers are members too")

	err = pt.pool.Initialize(pt.env(outsiderAddress), outsiderAddress, tokenAddress)
	require.ErrorIs(t, err, contract.ErrAlreadyInitialized)
	require.ErrorIs(t, err, contract.ErrStateViolation)

	owner, err = pt.pool.Owner()
	require.NoError(t, err)
	assert.Equal(t, managerAddress, owner)
	assert.Equal(t, []string{"mi|by:hive:tibfox|tk:contract:thx"}, pt.events)
}

func TestDurationsDefaultToZero(t *testing.T) {
	pt := SetupPoolTest(t)
	d, err := pt.pool.RewardPollDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
	d, err = pt.pool.RewardRulePollDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestOperationsRequireInitialization(t *testing.T) {
	pt := SetupUninitializedPoolTest(t)

	err := pt.pool.AddMember(pt.env(managerAddress), memberAddress)
	require.ErrorIs(t, err, contract.ErrNotInitialized)
	_, err = pt.pool.Owner()
	require.ErrorIs(t, err, contract.ErrNotInitialized)
	_, err = pt.pool.TryToFinalize(pt.env(managerAddress), 0)
	require.ErrorIs(t, err, contract.ErrNotInitialized)
	assert.Empty(t, pt.events)
}

func TestInitializeRejectsInvalidAddresses(t *testing.T) {
	pt := SetupUninitializedPoolTest(t)
	err := pt.pool.Initialize(pt.env(managerAddress), "tibfox", tokenAddress)
	require.ErrorIs(t, err, contract.ErrInvalidAddress)
	err = pt.pool.Initialize(pt.env(managerAddress), managerAddress, "")
	require.ErrorIs(t, err, contract.ErrInvalidAddress)

	// nothing was written, so a valid init still works
	require.NoError(t, pt.pool.Initialize(pt.env(managerAddress), managerAddress, tokenAddress))
}

// =============================================================================
// Access registry
// =============================================================================

func TestAddMemberManagerOnly(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)

	err := pt.pool.AddMember(pt.env(memberAddress), member2Address)
	require.ErrorIs(t, err, contract.ErrNotManager)
	require.ErrorIs(t, err, contract.ErrPolicyViolation)

	ok, err := pt.pool.IsMember(member2Address)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = pt.pool.IsManager(memberAddress)
	require.NoError(t, err)
	assert.False(t, ok, "members are not managers")
}

// TestAddMemberIdempotent checks that a second add leaves state identical.
func TestAddMemberIdempotent(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)
	before := pt.snapshot()

	pt.addMembers(memberAddress)
	assert.Equal(t, before, pt.snapshot())

	added := 0
	for _, e := range pt.events {
		if strings.HasPrefix(e, "ma|") {
			added++
		}
	}
	assert.Equal(t, 1, added)
}

func TestAddMemberRejectsInvalidAddress(t *testing.T) {
	pt := SetupPoolTest(t)
	err := pt.pool.AddMember(pt.env(managerAddress), "someone")
	require.ErrorIs(t, err, contract.ErrInvalidAddress)
}

func TestEvmAddressesAreNormalized(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers("0xaf9d56684466fcfcea0a2b7fc137ab864d642946")
	ok, err := pt.pool.IsMember("0xAF9D56684466FCFCEA0A2B7FC137AB864D642946")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = pt.pool.IsMember(voterAddress)
	require.NoError(t, err)
	assert.True(t, ok)
}

// =============================================================================
// Treasury
// =============================================================================

// TestDepositRoundTrip checks a deposit with no claims leaves the treasury at exactly D.
func TestDepositRoundTrip(t *testing.T) {
	pt := SetupPoolTest(t)
	before := pt.balanceOf(memberAddress)

	pt.deposit(memberAddress, thx(100))

	assert.Equal(t, thx(100).Dec(), pt.treasury().Dec())
	assert.Equal(t, thx(100).Dec(), pt.balanceOf(pt.pool.Address()).Dec())
	spent := new(uint256.Int).Sub(before, pt.balanceOf(memberAddress))
	assert.Equal(t, thx(100).Dec(), spent.Dec())
	assert.Contains(t, pt.events, "dp|by:hive:someone|amt:"+thx(100).Dec())
}

func TestDepositWithoutAllowanceChangesNothing(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.approve(memberAddress, thx(10))
	before := pt.snapshot()
	events := len(pt.events)

	err := pt.pool.Deposit(pt.env(memberAddress), thx(11))
	require.ErrorIs(t, err, contract.ErrInsufficientAllowance)
	require.ErrorIs(t, err, contract.ErrResourceViolation)

	assert.Equal(t, before, pt.snapshot())
	assert.Len(t, pt.events, events)
}

func TestDepositBeyondBalance(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.approve(memberAddress, thx(5000))
	err := pt.pool.Deposit(pt.env(memberAddress), thx(5000))
	require.ErrorIs(t, err, contract.ErrInsufficientAllowance)
	assert.True(t, pt.treasury().IsZero())
}

func TestDepositZero(t *testing.T) {
	pt := SetupPoolTest(t)
	err := pt.pool.Deposit(pt.env(memberAddress), new(uint256.Int))
	require.ErrorIs(t, err, contract.ErrInvalidAmount)
}

// TestDepositFromPoolItself checks the pool cannot credit its treasury with its own tokens.
func TestDepositFromPoolItself(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.deposit(managerAddress, thx(100))
	pt.approve(pt.pool.Address(), thx(100))
	before := pt.snapshot()

	err := pt.pool.Deposit(pt.env(pt.pool.Address()), thx(100))
	require.ErrorIs(t, err, contract.ErrInvalidAddress)
	require.ErrorIs(t, err, contract.ErrPolicyViolation)

	assert.Equal(t, before, pt.snapshot())
	assert.Equal(t, thx(100).Dec(), pt.treasury().Dec())
	assert.Equal(t, pt.balanceOf(pt.pool.Address()).Dec(), pt.treasury().Dec())
}

// =============================================================================
// Durations
// =============================================================================

func TestSetDurations(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)

	err := pt.pool.SetRewardPollDuration(pt.env(memberAddress), 60)
	require.ErrorIs(t, err, contract.ErrNotManager)
	err = pt.pool.SetRewardRulePollDuration(pt.env(managerAddress), 0)
	require.ErrorIs(t, err, contract.ErrInvalidDuration)
	err = pt.pool.SetRewardRulePollDuration(pt.env(managerAddress), contract.MaxPollDuration+1)
	require.ErrorIs(t, err, contract.ErrInvalidDuration)

	pt.setDurations(180, 60)
	d, err := pt.pool.RewardRulePollDuration()
	require.NoError(t, err)
	assert.Equal(t, uint64(180), d)
	d, err = pt.pool.RewardPollDuration()
	require.NoError(t, err)
	assert.Equal(t, uint64(60), d)
	assert.Contains(t, pt.events, "du|k:rule|s:180")
	assert.Contains(t, pt.events, "du|k:reward|s:60")
}

// TestDurationCapturedAtPollCreation checks running polls keep their window.
func TestDurationCapturedAtPollCreation(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	first, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)

	require.NoError(t, pt.pool.SetRewardRulePollDuration(pt.env(managerAddress), 10))
	second, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(60))
	require.NoError(t, err)

	r1, err := pt.pool.RewardRule(first)
	require.NoError(t, err)
	p1, err := pt.pool.Poll(r1.PollID)
	require.NoError(t, err)
	assert.Equal(t, uint64(180), p1.Duration)

	r2, err := pt.pool.RewardRule(second)
	require.NoError(t, err)
	p2, err := pt.pool.Poll(r2.PollID)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), p2.Duration)
}

// =============================================================================
// Reward rules
// =============================================================================

func TestAddRewardRuleRequiresDuration(t *testing.T) {
	pt := SetupPoolTest(t)
	_, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.ErrorIs(t, err, contract.ErrInvalidDuration)

	n, err := pt.pool.RewardRuleCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddRewardRuleManagerOnly(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)
	pt.setDurations(180, 60)
	_, err := pt.pool.AddRewardRule(pt.env(memberAddress), thx(50))
	require.ErrorIs(t, err, contract.ErrNotManager)
	_, err = pt.pool.AddRewardRule(pt.env(managerAddress), new(uint256.Int))
	require.ErrorIs(t, err, contract.ErrInvalidAmount)
}

func TestRewardRuleStartsPending(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), index)

	rule, err := pt.pool.RewardRule(index)
	require.NoError(t, err)
	assert.Equal(t, contract.RulePending, rule.State)
	assert.True(t, rule.Amount.IsZero())

	poll, err := pt.pool.Poll(rule.PollID)
	require.NoError(t, err)
	assert.Equal(t, contract.PollKindRule, poll.Kind)
	assert.Equal(t, index, poll.OwnerID)
	assert.Equal(t, thx(50).Dec(), poll.Proposal.Dec())
	assert.Equal(t, pt.now, poll.StartTime)

	_, err = pt.pool.RewardRule(1)
	require.ErrorIs(t, err, contract.ErrIndexOutOfRange)
	n, err := pt.pool.RewardRuleCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

// TestScenarioRuleEnabledByVote: 180s rule poll, one agreeing member, finalized after 181s.
func TestScenarioRuleEnabledByVote(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)
	require.NoError(t, pt.pool.SetRewardRulePollDuration(pt.env(managerAddress), 180))

	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	rule, err := pt.pool.RewardRule(index)
	require.NoError(t, err)

	require.NoError(t, pt.pool.Vote(pt.env(memberAddress), rule.PollID, true))

	pt.advance(179)
	_, err = pt.pool.TryToFinalize(pt.env(memberAddress), rule.PollID)
	require.ErrorIs(t, err, contract.ErrTooEarly)

	pt.advance(2)
	accepted, err := pt.pool.TryToFinalize(pt.env(memberAddress), rule.PollID)
	require.NoError(t, err)
	assert.True(t, accepted)

	rule, err = pt.pool.RewardRule(index)
	require.NoError(t, err)
	assert.Equal(t, contract.RuleEnabled, rule.State)
	assert.Equal(t, thx(50).Dec(), rule.Amount.Dec())
}

// TestZeroVotesRejected checks the zero vote boundary.
func TestZeroVotesRejected(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)

	assert.False(t, pt.finalizeAfterDeadline(rule.PollID))

	rule, err = pt.pool.RewardRule(index)
	require.NoError(t, err)
	assert.Equal(t, contract.RuleDisabled, rule.State)
	assert.True(t, rule.Amount.IsZero())
}

func TestTieRejected(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)

	require.NoError(t, pt.pool.Vote(pt.env(managerAddress), rule.PollID, true))
	require.NoError(t, pt.pool.Vote(pt.env(memberAddress), rule.PollID, false))
	assert.False(t, pt.finalizeAfterDeadline(rule.PollID))

	poll, err := pt.pool.Poll(rule.PollID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), poll.AgreeCount)
	assert.Equal(t, uint64(2), poll.VoteCount)
}

// =============================================================================
// Voting and finalization
// =============================================================================

// TestVoteOncePerMember checks a second vote is rejected whatever it says.
func TestVoteOncePerMember(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)

	require.NoError(t, pt.pool.Vote(pt.env(managerAddress), rule.PollID, true))
	for _, agree := range []bool{true, false} {
		err := pt.pool.Vote(pt.env(managerAddress), rule.PollID, agree)
		require.ErrorIs(t, err, contract.ErrAlreadyVoted)
	}

	vote, err := pt.pool.VoteOf(rule.PollID, managerAddress)
	require.NoError(t, err)
	assert.True(t, vote.HasVoted())
	assert.True(t, vote.Agree)
	assert.Equal(t, uint64(1), vote.Weight)
	assert.Equal(t, pt.now, vote.Time)

	none, err := pt.pool.VoteOf(rule.PollID, memberAddress)
	require.NoError(t, err)
	assert.False(t, none.HasVoted())
}

func TestVoteRequiresMembership(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)

	err = pt.pool.Vote(pt.env(outsiderAddress), rule.PollID, true)
	require.ErrorIs(t, err, contract.ErrNotMember)
	err = pt.pool.Vote(pt.env(managerAddress), 42, true)
	require.ErrorIs(t, err, contract.ErrPollNotFound)
}

func TestVoteClosedAtDeadline(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)

	pt.advance(180)
	err = pt.pool.Vote(pt.env(managerAddress), rule.PollID, true)
	require.ErrorIs(t, err, contract.ErrPollClosed)

	// the deadline second is already finalizable
	_, err = pt.pool.TryToFinalize(pt.env(outsiderAddress), rule.PollID)
	require.NoError(t, err)
}

// TestFinalizeOnce checks the outcome is fixed by the first finalize.
func TestFinalizeOnce(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)
	require.NoError(t, pt.pool.Vote(pt.env(managerAddress), rule.PollID, true))

	assert.True(t, pt.finalizeAfterDeadline(rule.PollID))
	before := pt.snapshot()

	pt.advance(1000)
	_, err = pt.pool.TryToFinalize(pt.env(managerAddress), rule.PollID)
	require.ErrorIs(t, err, contract.ErrAlreadyFinalized)
	assert.Equal(t, before, pt.snapshot())

	poll, err := pt.pool.Poll(rule.PollID)
	require.NoError(t, err)
	assert.True(t, poll.Finalized)
	assert.True(t, poll.Accepted)

	// a clock running backwards must not reopen a finalized poll
	pt.now = poll.StartTime
	pt.addMembers(memberAddress)
	err = pt.pool.Vote(pt.env(memberAddress), rule.PollID, false)
	require.ErrorIs(t, err, contract.ErrPollClosed)
}

// =============================================================================
// Claims and withdrawals
// =============================================================================

// TestScenarioClaimApprovedAndWithdrawn claims an enabled rule, gets approved and withdraws once.
func TestScenarioClaimApprovedAndWithdrawn(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress, member2Address)
	pt.setDurations(180, 60)
	pt.deposit(managerAddress, thx(100))
	index := pt.enabledRule(thx(50))

	rewardID, err := pt.pool.ClaimReward(pt.env(memberAddress), index)
	require.NoError(t, err)
	reward, err := pt.pool.Reward(rewardID)
	require.NoError(t, err)
	assert.Equal(t, memberAddress, reward.Beneficiary)
	assert.Equal(t, thx(50).Dec(), reward.Amount.Dec())
	assert.False(t, reward.Withdrawn)

	require.NoError(t, pt.pool.Vote(pt.env(member2Address), reward.PollID, true))
	pt.advance(60)
	accepted, err := pt.pool.TryToFinalize(pt.env(member2Address), reward.PollID)
	require.NoError(t, err)
	assert.True(t, accepted)

	balanceBefore := pt.balanceOf(memberAddress)
	treasuryBefore := pt.treasury()
	require.NoError(t, pt.pool.Withdraw(pt.env(memberAddress), rewardID))

	gained := new(uint256.Int).Sub(pt.balanceOf(memberAddress), balanceBefore)
	assert.Equal(t, thx(50).Dec(), gained.Dec())
	spent := new(uint256.Int).Sub(treasuryBefore, pt.treasury())
	assert.Equal(t, thx(50).Dec(), spent.Dec())

	before := pt.snapshot()
	err = pt.pool.Withdraw(pt.env(memberAddress), rewardID)
	require.ErrorIs(t, err, contract.ErrAlreadyWithdrawn)
	assert.Equal(t, before, pt.snapshot())

	reward, err = pt.pool.Reward(rewardID)
	require.NoError(t, err)
	assert.True(t, reward.Withdrawn)
}

func TestClaimRequiresEnabledRule(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)
	pt.setDurations(180, 60)

	pending, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(50))
	require.NoError(t, err)
	_, err = pt.pool.ClaimReward(pt.env(memberAddress), pending)
	require.ErrorIs(t, err, contract.ErrRuleNotEnabled)

	rule, _ := pt.pool.RewardRule(pending)
	pt.finalizeAfterDeadline(rule.PollID) // nobody voted, disabled
	_, err = pt.pool.ClaimReward(pt.env(memberAddress), pending)
	require.ErrorIs(t, err, contract.ErrRuleNotEnabled)

	_, err = pt.pool.ClaimReward(pt.env(memberAddress), 9)
	require.ErrorIs(t, err, contract.ErrIndexOutOfRange)

	enabled := pt.enabledRule(thx(5))
	_, err = pt.pool.ClaimReward(pt.env(outsiderAddress), enabled)
	require.ErrorIs(t, err, contract.ErrNotMember)
}

func TestClaimRequiresRewardDuration(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)
	require.NoError(t, pt.pool.SetRewardRulePollDuration(pt.env(managerAddress), 180))
	index := pt.enabledRule(thx(5))

	_, err := pt.pool.ClaimReward(pt.env(memberAddress), index)
	require.ErrorIs(t, err, contract.ErrInvalidDuration)
}

func TestRewardsOfIndex(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress, member2Address)
	pt.setDurations(180, 60)
	index := pt.enabledRule(thx(5))

	first, err := pt.pool.ClaimReward(pt.env(memberAddress), index)
	require.NoError(t, err)
	other, err := pt.pool.ClaimReward(pt.env(member2Address), index)
	require.NoError(t, err)
	second, err := pt.pool.ClaimReward(pt.env(memberAddress), index)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, other, second)

	n, err := pt.pool.RewardCount(memberAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	rw, err := pt.pool.RewardsOf(memberAddress, 0)
	require.NoError(t, err)
	assert.Equal(t, first, rw.ID)
	rw, err = pt.pool.RewardsOf(memberAddress, 1)
	require.NoError(t, err)
	assert.Equal(t, second, rw.ID)

	_, err = pt.pool.RewardsOf(memberAddress, 2)
	require.ErrorIs(t, err, contract.ErrIndexOutOfRange)
	_, err = pt.pool.Reward(99)
	require.ErrorIs(t, err, contract.ErrRewardNotFound)
}

func TestWithdrawRequiresApproval(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress, member2Address)
	pt.setDurations(180, 60)
	pt.deposit(managerAddress, thx(100))
	index := pt.enabledRule(thx(50))

	rewardID, err := pt.pool.ClaimReward(pt.env(memberAddress), index)
	require.NoError(t, err)
	reward, _ := pt.pool.Reward(rewardID)

	err = pt.pool.Withdraw(pt.env(memberAddress), rewardID)
	require.ErrorIs(t, err, contract.ErrNotApproved)

	require.NoError(t, pt.pool.Vote(pt.env(member2Address), reward.PollID, false))
	assert.False(t, pt.finalizeAfterDeadline(reward.PollID))

	err = pt.pool.Withdraw(pt.env(memberAddress), rewardID)
	require.ErrorIs(t, err, contract.ErrNotApproved)
	assert.Equal(t, thx(100).Dec(), pt.treasury().Dec())
}

func TestWithdrawOnlyByBeneficiary(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress, member2Address)
	pt.setDurations(180, 60)
	pt.deposit(managerAddress, thx(100))
	index := pt.enabledRule(thx(50))

	rewardID, err := pt.pool.ClaimReward(pt.env(memberAddress), index)
	require.NoError(t, err)
	reward, _ := pt.pool.Reward(rewardID)
	require.NoError(t, pt.pool.Vote(pt.env(member2Address), reward.PollID, true))
	require.True(t, pt.finalizeAfterDeadline(reward.PollID))

	err = pt.pool.Withdraw(pt.env(member2Address), rewardID)
	require.ErrorIs(t, err, contract.ErrNotBeneficiary)
	require.ErrorIs(t, err, contract.ErrPolicyViolation)
}

// TestWithdrawEmptyTreasuryRollsBack checks the withdrawn flag is not kept when the payout fails.
func TestWithdrawEmptyTreasuryRollsBack(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress, member2Address)
	pt.setDurations(180, 60)
	index := pt.enabledRule(thx(50))

	rewardID, err := pt.pool.ClaimReward(pt.env(memberAddress), index)
	require.NoError(t, err)
	reward, _ := pt.pool.Reward(rewardID)
	require.NoError(t, pt.pool.Vote(pt.env(member2Address), reward.PollID, true))
	require.True(t, pt.finalizeAfterDeadline(reward.PollID))

	before := pt.snapshot()
	err = pt.pool.Withdraw(pt.env(memberAddress), rewardID)
	require.ErrorIs(t, err, contract.ErrInsufficientTreasuryBalance)
	assert.Equal(t, before, pt.snapshot())

	reward, err = pt.pool.Reward(rewardID)
	require.NoError(t, err)
	assert.False(t, reward.Withdrawn)

	pt.deposit(managerAddress, thx(50))
	require.NoError(t, pt.pool.Withdraw(pt.env(memberAddress), rewardID))
	assert.True(t, pt.treasury().IsZero())
}

// =============================================================================
// Manager proposed rewards
// =============================================================================

func TestProposeReward(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress, member2Address)
	pt.setDurations(180, 60)
	pt.deposit(managerAddress, thx(10))

	_, err := pt.pool.ProposeReward(pt.env(memberAddress), member2Address, thx(5))
	require.ErrorIs(t, err, contract.ErrNotManager)
	_, err = pt.pool.ProposeReward(pt.env(managerAddress), outsiderAddress, thx(5))
	require.ErrorIs(t, err, contract.ErrNotMember)
	_, err = pt.pool.ProposeReward(pt.env(managerAddress), memberAddress, new(uint256.Int))
	require.ErrorIs(t, err, contract.ErrInvalidAmount)

	rewardID, err := pt.pool.ProposeReward(pt.env(managerAddress), memberAddress, thx(5))
	require.NoError(t, err)
	reward, err := pt.pool.Reward(rewardID)
	require.NoError(t, err)
	assert.Equal(t, memberAddress, reward.Beneficiary)

	require.NoError(t, pt.pool.Vote(pt.env(member2Address), reward.PollID, true))
	require.True(t, pt.finalizeAfterDeadline(reward.PollID))
	require.NoError(t, pt.pool.Withdraw(pt.env(memberAddress), rewardID))
	assert.Equal(t, thx(5).Dec(), pt.treasury().Dec())
}

// =============================================================================
// Atomicity
// =============================================================================

// TestFailedCallsEmitNothing checks events are held back until commit.
func TestFailedCallsEmitNothing(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	events := len(pt.events)
	before := pt.snapshot()

	_, err := pt.pool.AddRewardRule(pt.env(outsiderAddress), thx(1))
	require.Error(t, err)
	err = pt.pool.Deposit(pt.env(outsiderAddress), thx(1))
	require.Error(t, err)
	_, err = pt.pool.ClaimReward(pt.env(outsiderAddress), 0)
	require.Error(t, err)

	assert.Len(t, pt.events, events)
	assert.Equal(t, before, pt.snapshot())
}

func TestEventLines(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.addMembers(memberAddress)
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(1))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)
	require.NoError(t, pt.pool.Vote(pt.env(memberAddress), rule.PollID, true))
	pt.finalizeAfterDeadline(rule.PollID)

	assert.Contains(t, pt.events, "ma|m:hive:someone|by:hive:tibfox")
	assert.Contains(t, pt.events, "rc|id:0|poll:0|amt:"+thx(1).Dec())
	assert.Contains(t, pt.events, "v|poll:0|by:hive:someone|a:true|r:false")
	assert.Contains(t, pt.events, "pf|poll:0|k:rule|o:0|ok:true|y:1|n:0")
}

func TestZeroTimestampVoteStillCounts(t *testing.T) {
	pt := SetupPoolTest(t)
	pt.now = 0
	pt.setDurations(180, 60)
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(1))
	require.NoError(t, err)
	rule, _ := pt.pool.RewardRule(index)

	require.NoError(t, pt.pool.Vote(pt.env(managerAddress), rule.PollID, true))
	vote, err := pt.pool.VoteOf(rule.PollID, managerAddress)
	require.NoError(t, err)
	assert.True(t, vote.HasVoted())
	err = pt.pool.Vote(pt.env(managerAddress), rule.PollID, true)
	require.ErrorIs(t, err, contract.ErrAlreadyVoted)
}
