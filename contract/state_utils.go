package contract

import (
	"fmt"

	"okinoko_rewards/sdk"
)

// loadRecord fetches and decodes the record under key. Missing keys return nil without error.
func loadRecord[T any](st sdk.State, key string, decode func([]byte) (*T, error)) (*T, error) {
	ptr, err := st.Get(key)
	if err != nil {
		return nil, err
	}
	if ptr == nil || *ptr == "" {
		return nil, nil
	}
	rec, err := decode([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("decode %T: %w", rec, err)
	}
	return rec, nil
}

func saveRecord(st sdk.State, key string, data []byte) error {
	return st.Set(key, string(data))
}
