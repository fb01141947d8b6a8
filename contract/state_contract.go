package contract

import "okinoko_rewards/sdk"

// loadContractConfig returns nil if Initialize never ran.
func loadContractConfig(st sdk.State) (*ContractConfig, error) {
	return loadRecord(st, contractConfigKey(), DecodeContractConfig)
}

// requireInitialized is the gate in front of every operation except Initialize.
func requireInitialized(st sdk.State) (*ContractConfig, error) {
	cfg, err := loadContractConfig(st)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNotInitialized
	}
	return cfg, nil
}

func saveContractConfig(st sdk.State, cfg *ContractConfig) error {
	return saveRecord(st, contractConfigKey(), EncodeContractConfig(cfg))
}
