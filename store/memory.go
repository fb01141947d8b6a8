package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sync"

	"okinoko_rewards/sdk"
)

// Memory keeps all state in a map. Update calls are serialized and writes only land in the map
// once fn returns without error.
type Memory struct {
	mu sync.RWMutex
	db map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{db: make(map[string]string)}
}

func (m *Memory) Update(fn func(sdk.State) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn := &memoryTxn{base: m.db, writes: make(map[string]*string), writable: true}
	if err := fn(txn); err != nil {
		return err
	}
	for k, v := range txn.writes {
		if v == nil {
			delete(m.db, k)
			continue
		}
		m.db[k] = *v
	}
	return nil
}

func (m *Memory) View(fn func(sdk.State) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(&memoryTxn{base: m.db})
}

func (m *Memory) Close() error {
	return nil
}

// Len returns the number of committed keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}

// Snapshot returns a copy of the committed state.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.db)
}

// SaveToFile writes the full map to a JSON file. Keys and values are binary, so both are
// base64 encoded.
func (m *Memory) SaveToFile(filename string) error {
	m.mu.RLock()
	out := make(map[string]string, len(m.db))
	for k, v := range m.db {
		out[base64.StdEncoding.EncodeToString([]byte(k))] = base64.StdEncoding.EncodeToString([]byte(v))
	}
	m.mu.RUnlock()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// LoadFromFile replaces the contents with a snapshot written by SaveToFile.
// A missing file leaves the store empty.
func (m *Memory) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", filename, err)
	}
	db := make(map[string]string, len(raw))
	for k, v := range raw {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return fmt.Errorf("decode snapshot %s: key: %w", filename, err)
		}
		val, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return fmt.Errorf("decode snapshot %s: value: %w", filename, err)
		}
		db[string(key)] = string(val)
	}
	m.mu.Lock()
	m.db = db
	m.mu.Unlock()
	return nil
}

// memoryTxn overlays pending writes on top of the committed map. A nil entry marks a delete.
type memoryTxn struct {
	base     map[string]string
	writes   map[string]*string
	writable bool
}

func (t *memoryTxn) Get(key string) (*string, error) {
	if v, ok := t.writes[key]; ok {
		if v == nil {
			return nil, nil
		}
		val := *v
		return &val, nil
	}
	val, ok := t.base[key]
	if !ok {
		return nil, nil
	}
	return &val, nil
}

func (t *memoryTxn) Set(key, value string) error {
	if !t.writable {
		return sdk.ErrReadOnly
	}
	t.writes[key] = &value
	return nil
}

func (t *memoryTxn) Delete(key string) error {
	if !t.writable {
		return sdk.ErrReadOnly
	}
	t.writes[key] = nil
	return nil
}
