package contract

import (
	"fmt"
	"strconv"

	"okinoko_rewards/sdk"
)

// getCount reads the string counter under name and defaults to zero.
func getCount(st sdk.State, name string) (uint64, error) {
	ptr, err := st.Get(counterKey(name))
	if err != nil {
		return 0, err
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", name, err)
	}
	return n, nil
}

// setCount stores uint64 counters back as decimal strings.
func setCount(st sdk.State, name string, n uint64) error {
	return st.Set(counterKey(name), strconv.FormatUint(n, 10))
}

// nextID hands out the current counter value and bumps it, ids start at 0.
func nextID(st sdk.State, name string) (uint64, error) {
	id, err := getCount(st, name)
	if err != nil {
		return 0, err
	}
	if err := setCount(st, name, id+1); err != nil {
		return 0, err
	}
	return id, nil
}
