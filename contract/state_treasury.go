package contract

import (
	"fmt"

	"github.com/holiman/uint256"

	"okinoko_rewards/sdk"
)

// getTreasuryBalance reads the pool's tracked balance, zero when nothing was deposited yet.
func getTreasuryBalance(st sdk.State) (*Amount, error) {
	ptr, err := st.Get(treasuryKey())
	if err != nil {
		return nil, err
	}
	if ptr == nil || *ptr == "" {
		return new(uint256.Int), nil
	}
	balance, err := uint256.FromDecimal(*ptr)
	if err != nil {
		return nil, fmt.Errorf("treasury balance: %w", err)
	}
	return balance, nil
}

func setTreasuryBalance(st sdk.State, amount *Amount) error {
	return st.Set(treasuryKey(), amount.Dec())
}
