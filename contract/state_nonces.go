package contract

import "okinoko_rewards/sdk"

func isNonceUsed(st sdk.State, voter sdk.Address, nonce uint64) (bool, error) {
	ptr, err := st.Get(nonceKey(voter, nonce))
	if err != nil {
		return false, err
	}
	return ptr != nil, nil
}

func markNonceUsed(st sdk.State, voter sdk.Address, nonce uint64) error {
	return st.Set(nonceKey(voter, nonce), "1")
}
