package contract_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"okinoko_rewards/contract"
	"okinoko_rewards/sdk"
	"okinoko_rewards/store"
	"okinoko_rewards/token"
)

// TestConcurrentVotesAreSerialized fires votes from many goroutines and checks the tally adds up.
func TestConcurrentVotesAreSerialized(t *testing.T) {
	defer goleak.VerifyNone(t)

	pt := SetupPoolTest(t)
	pt.setDurations(180, 60)
	voters := make([]sdk.Address, 20)
	for i := range voters {
		voters[i] = sdk.Address(fmt.Sprintf("hive:voter%d", i))
		pt.addMembers(voters[i])
	}
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), thx(1))
	require.NoError(t, err)
	rule, err := pt.pool.RewardRule(index)
	require.NoError(t, err)

	// second handle on the same store, no event handler so nothing is shared between goroutines
	pool := contract.New(pt.store, token.Resolver{})
	var wg sync.WaitGroup
	errs := make([]error, len(voters)*2)
	for i, v := range voters {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[2*i] = pool.Vote(sdk.Env{Sender: v, Timestamp: pt.now}, rule.PollID, i%4 != 0)
		}()
		go func() {
			defer wg.Done()
			errs[2*i+1] = pool.Vote(sdk.Env{Sender: v, Timestamp: pt.now}, rule.PollID, false)
		}()
	}
	wg.Wait()

	rejected := 0
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, contract.ErrAlreadyVoted)
			rejected++
		}
	}
	assert.Equal(t, len(voters), rejected, "exactly one vote per voter lands")

	poll, err := pt.pool.Poll(rule.PollID)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(voters)), poll.VoteCount)
}

// TestScenarioOnBadger runs a full claim cycle against the badger store.
func TestScenarioOnBadger(t *testing.T) {
	db, err := store.NewBadger()
	require.NoError(t, err)
	defer db.Close()

	now := defaultTimestamp
	env := func(sender sdk.Address) sdk.Env { return sdk.Env{Sender: sender, Timestamp: now} }
	require.NoError(t, db.Update(func(st sdk.State) error {
		l, err := token.Deploy(st, tokenAddress, managerAddress, sdk.AssetTHX)
		if err != nil {
			return err
		}
		if err := l.Mint(managerAddress, managerAddress, thx(100)); err != nil {
			return err
		}
		return l.Approve(managerAddress, contract.DefaultAddress, thx(100))
	}))

	pool := contract.New(db, token.Resolver{})
	require.NoError(t, pool.Initialize(env(managerAddress), managerAddress, tokenAddress))
	require.NoError(t, pool.AddMember(env(managerAddress), memberAddress))
	require.NoError(t, pool.SetRewardRulePollDuration(env(managerAddress), 180))
	require.NoError(t, pool.SetRewardPollDuration(env(managerAddress), 60))
	require.NoError(t, pool.Deposit(env(managerAddress), thx(100)))

	index, err := pool.AddRewardRule(env(managerAddress), thx(50))
	require.NoError(t, err)
	require.NoError(t, pool.Vote(env(memberAddress), 0, true))
	now += 181
	accepted, err := pool.TryToFinalize(env(outsiderAddress), 0)
	require.NoError(t, err)
	require.True(t, accepted)

	rewardID, err := pool.ClaimReward(env(memberAddress), index)
	require.NoError(t, err)
	reward, err := pool.Reward(rewardID)
	require.NoError(t, err)
	require.NoError(t, pool.Vote(env(managerAddress), reward.PollID, true))
	now += 61
	_, err = pool.TryToFinalize(env(outsiderAddress), reward.PollID)
	require.NoError(t, err)
	require.NoError(t, pool.Withdraw(env(memberAddress), rewardID))

	bal, err := pool.TreasuryBalance()
	require.NoError(t, err)
	assert.Equal(t, thx(50).Dec(), bal.Dec())
	err = pool.Withdraw(env(memberAddress), rewardID)
	require.ErrorIs(t, err, contract.ErrAlreadyWithdrawn)
}
