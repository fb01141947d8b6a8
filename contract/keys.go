package contract

import "okinoko_rewards/sdk"

const (
	// kContractConfig stores the encoded ContractConfig, a single record.
	kContractConfig byte = 0x01
	// kMember houses encoded Member records keyed by address.
	kMember byte = 0x02
	// kTreasury tracks the pool's internal balance.
	kTreasury byte = 0x03
	// kPoll stores Poll records indexed by poll id.
	kPoll byte = 0x10
	// kPollVote stores Vote records per poll+voter.
	kPollVote byte = 0x11
	// kRule stores RewardRule records indexed by rule index.
	kRule byte = 0x20
	// kReward stores Reward records indexed by reward id.
	kReward byte = 0x30
	// kBeneficiaryReward maps beneficiary+position to a reward id.
	kBeneficiaryReward byte = 0x31
	// kNonce flags consumed relay nonces per voter.
	kNonce byte = 0x40
	// kCounter holds decimal counters used for ids.
	kCounter byte = 0x50
)

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// idKey is the shared shape of every prefix+u64 key.
func idKey(prefix byte, id uint64) string {
	var buf [9]byte
	buf[0] = prefix
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

func contractConfigKey() string {
	return string([]byte{kContractConfig})
}

func treasuryKey() string {
	return string([]byte{kTreasury})
}

// memberKey is prefix + raw address, addresses are already unique strings.
func memberKey(addr sdk.Address) string {
	return string(kMember) + addr.String()
}

func pollKey(id uint64) string {
	return idKey(kPoll, id)
}

// pollVoteKey keeps every vote of a poll under a common prefix.
func pollVoteKey(pollID uint64, voter sdk.Address) string {
	buf := make([]byte, 0, 9+len(voter))
	buf = append(buf, kPollVote)
	buf = packU64LE(pollID, buf)
	buf = append(buf, voter.String()...)
	return string(buf)
}

func ruleKey(index uint64) string {
	return idKey(kRule, index)
}

func rewardKey(id uint64) string {
	return idKey(kReward, id)
}

// beneficiaryRewardKey puts the position first so the address can be the open ended tail.
func beneficiaryRewardKey(beneficiary sdk.Address, position uint64) string {
	buf := make([]byte, 0, 9+len(beneficiary))
	buf = append(buf, kBeneficiaryReward)
	buf = packU64LE(position, buf)
	buf = append(buf, beneficiary.String()...)
	return string(buf)
}

func nonceKey(voter sdk.Address, nonce uint64) string {
	buf := make([]byte, 0, 9+len(voter))
	buf = append(buf, kNonce)
	buf = packU64LE(nonce, buf)
	buf = append(buf, voter.String()...)
	return string(buf)
}

func counterKey(name string) string {
	return string(kCounter) + name
}

// beneficiaryCounter names the per-beneficiary reward counter.
func beneficiaryCounter(beneficiary sdk.Address) string {
	return countRewards + ":" + beneficiary.String()
}
