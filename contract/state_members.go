package contract

import "okinoko_rewards/sdk"

func loadMember(st sdk.State, addr sdk.Address) (*Member, error) {
	return loadRecord(st, memberKey(addr), DecodeMember)
}

func saveMember(st sdk.State, m *Member) error {
	return saveRecord(st, memberKey(m.Address), EncodeMember(m))
}
