package contract

import (
	"fmt"
	"strconv"

	"okinoko_rewards/sdk"
)

func loadRewardRule(st sdk.State, index uint64) (*RewardRule, error) {
	return loadRecord(st, ruleKey(index), DecodeRewardRule)
}

func saveRewardRule(st sdk.State, rule *RewardRule) error {
	return saveRecord(st, ruleKey(rule.ID), EncodeRewardRule(rule))
}

func loadReward(st sdk.State, id uint64) (*Reward, error) {
	return loadRecord(st, rewardKey(id), DecodeReward)
}

func saveReward(st sdk.State, rw *Reward) error {
	return saveRecord(st, rewardKey(rw.ID), EncodeReward(rw))
}

// appendBeneficiaryReward adds rewardID to the end of the beneficiary's list.
func appendBeneficiaryReward(st sdk.State, beneficiary sdk.Address, rewardID uint64) error {
	pos, err := nextID(st, beneficiaryCounter(beneficiary))
	if err != nil {
		return err
	}
	return st.Set(beneficiaryRewardKey(beneficiary, pos), strconv.FormatUint(rewardID, 10))
}

// beneficiaryRewardID resolves position i of the beneficiary's list, ok is false past the end.
func beneficiaryRewardID(st sdk.State, beneficiary sdk.Address, i uint64) (uint64, bool, error) {
	ptr, err := st.Get(beneficiaryRewardKey(beneficiary, i))
	if err != nil {
		return 0, false, err
	}
	if ptr == nil || *ptr == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("reward index of %s: %w", beneficiary, err)
	}
	return id, true, nil
}
