package contract_test

import (
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"okinoko_rewards/contract"
	"okinoko_rewards/sdk"
	"okinoko_rewards/store"
	"okinoko_rewards/token"
)

const (
	managerAddress  = sdk.Address("hive:tibfox")
	memberAddress   = sdk.Address("hive:someone")
	member2Address  = sdk.Address("hive:someoneelse")
	outsiderAddress = sdk.Address("hive:outsider")
	tokenAddress    = sdk.Address("contract:thx")

	// 2025-09-03T00:00:00Z
	defaultTimestamp int64 = 1756857600
)

// poolTest bundles a fresh pool on an in-memory store with a THX token already deployed.
type poolTest struct {
	t      *testing.T
	store  *store.Memory
	pool   *contract.RewardPool
	reg    *prometheus.Registry
	events []string
	now    int64
	txs    int
}

// thx scales whole tokens to base units.
func thx(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1_000_000_000_000_000_000))
}

// SetupPoolTest starts an initialized pool where every test account holds 1000 THX.
func SetupPoolTest(t *testing.T) *poolTest {
	t.Helper()
	pt := SetupUninitializedPoolTest(t)
	require.NoError(t, pt.pool.Initialize(pt.env(managerAddress), managerAddress, tokenAddress))
	return pt
}

// SetupUninitializedPoolTest is SetupPoolTest without the Initialize call.
func SetupUninitializedPoolTest(t *testing.T) *poolTest {
	t.Helper()
	pt := &poolTest{
		t:     t,
		store: store.NewMemory(),
		reg:   prometheus.NewRegistry(),
		now:   defaultTimestamp,
	}
	pt.pool = contract.New(
		pt.store,
		token.Resolver{},
		contract.WithPromRegistry(pt.reg),
		contract.WithEventHandler(func(e string) { pt.events = append(pt.events, e) }),
	)
	require.NoError(t, pt.store.Update(func(st sdk.State) error {
		l, err := token.Deploy(st, tokenAddress, managerAddress, sdk.AssetTHX)
		if err != nil {
			return err
		}
		for _, a := range []sdk.Address{managerAddress, memberAddress, member2Address, outsiderAddress} {
			if err := l.Mint(managerAddress, a, thx(1000)); err != nil {
				return err
			}
		}
		return nil
	}))
	return pt
}

// env builds the call environment for sender at the current test clock.
func (pt *poolTest) env(sender sdk.Address) sdk.Env {
	pt.txs++
	return sdk.Env{Sender: sender, Timestamp: pt.now, TxId: fmt.Sprintf("tx-%d", pt.txs)}
}

// advance moves the test clock forward.
func (pt *poolTest) advance(secs int64) {
	pt.now += secs
}

func (pt *poolTest) withToken(fn func(l *token.Ledger) error) {
	pt.t.Helper()
	require.NoError(pt.t, pt.store.Update(func(st sdk.State) error {
		l, err := token.Open(st, tokenAddress)
		if err != nil {
			return err
		}
		return fn(l)
	}))
}

func (pt *poolTest) approve(owner sdk.Address, amount *uint256.Int) {
	pt.t.Helper()
	pt.withToken(func(l *token.Ledger) error {
		return l.Approve(owner, pt.pool.Address(), amount)
	})
}

func (pt *poolTest) balanceOf(addr sdk.Address) *uint256.Int {
	pt.t.Helper()
	var bal *uint256.Int
	pt.withToken(func(l *token.Ledger) error {
		var err error
		bal, err = l.BalanceOf(addr)
		return err
	})
	return bal
}

func (pt *poolTest) treasury() *uint256.Int {
	pt.t.Helper()
	bal, err := pt.pool.TreasuryBalance()
	require.NoError(pt.t, err)
	return bal
}

// deposit approves and deposits amount from sender.
func (pt *poolTest) deposit(sender sdk.Address, amount *uint256.Int) {
	pt.t.Helper()
	pt.approve(sender, amount)
	require.NoError(pt.t, pt.pool.Deposit(pt.env(sender), amount))
}

func (pt *poolTest) addMembers(addrs ...sdk.Address) {
	pt.t.Helper()
	for _, a := range addrs {
		require.NoError(pt.t, pt.pool.AddMember(pt.env(managerAddress), a))
	}
}

func (pt *poolTest) setDurations(rule, reward uint64) {
	pt.t.Helper()
	require.NoError(pt.t, pt.pool.SetRewardRulePollDuration(pt.env(managerAddress), rule))
	require.NoError(pt.t, pt.pool.SetRewardPollDuration(pt.env(managerAddress), reward))
}

// enabledRule walks a rule through an accepting poll and returns its index.
func (pt *poolTest) enabledRule(amount *uint256.Int) uint64 {
	pt.t.Helper()
	index, err := pt.pool.AddRewardRule(pt.env(managerAddress), amount)
	require.NoError(pt.t, err)
	rule, err := pt.pool.RewardRule(index)
	require.NoError(pt.t, err)
	require.NoError(pt.t, pt.pool.Vote(pt.env(managerAddress), rule.PollID, true))
	pt.finalizeAfterDeadline(rule.PollID)
	return index
}

// finalizeAfterDeadline jumps past the poll deadline and finalizes it.
func (pt *poolTest) finalizeAfterDeadline(pollID uint64) bool {
	pt.t.Helper()
	poll, err := pt.pool.Poll(pollID)
	require.NoError(pt.t, err)
	if pt.now < poll.Deadline() {
		pt.now = poll.Deadline() + 1
	}
	accepted, err := pt.pool.TryToFinalize(pt.env(outsiderAddress), pollID)
	require.NoError(pt.t, err)
	return accepted
}

// snapshot copies the committed state so tests can assert a failed call changed nothing.
func (pt *poolTest) snapshot() map[string]string {
	return pt.store.Snapshot()
}
