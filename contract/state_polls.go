package contract

import "okinoko_rewards/sdk"

func loadPoll(st sdk.State, id uint64) (*Poll, error) {
	return loadRecord(st, pollKey(id), DecodePoll)
}

func savePoll(st sdk.State, p *Poll) error {
	return saveRecord(st, pollKey(p.ID), EncodePoll(p))
}

// loadVote returns an empty Vote (Time 0) for voters that never voted.
func loadVote(st sdk.State, pollID uint64, voter sdk.Address) (*Vote, error) {
	v, err := loadRecord(st, pollVoteKey(pollID, voter), DecodeVote)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return &Vote{}, nil
	}
	return v, nil
}

func saveVote(st sdk.State, pollID uint64, voter sdk.Address, v *Vote) error {
	return saveRecord(st, pollVoteKey(pollID, voter), EncodeVote(v))
}
