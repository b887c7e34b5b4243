package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Veraticus/payday/internal/common"
)

// MemoryStore is an in-process service.KeyValueStore used by tests and dry runs.
type MemoryStore struct {
	values  map[string][]byte
	saveErr error
	writes  int
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// FailWrites makes every subsequent write return err. Pass nil to recover.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Writes counts successful write calls.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Load implements service.KeyValueStore.
func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	return append([]byte(nil), value...), nil
}

// Save implements service.KeyValueStore.
func (m *MemoryStore) Save(ctx context.Context, key string, value []byte) error {
	if value == nil {
		return fmt.Errorf("%w: value for %s", ErrNilParameter, key)
	}
	return m.SaveBatch(ctx, map[string][]byte{key: value})
}

// SaveBatch implements service.KeyValueStore.
func (m *MemoryStore) SaveBatch(ctx context.Context, values map[string][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for key := range values {
		if err := validateString(key, "key"); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}

	for key, value := range values {
		if value == nil {
			delete(m.values, key)
			continue
		}
		m.values[key] = append([]byte(nil), value...)
	}
	m.writes++
	return nil
}

// Delete implements service.KeyValueStore.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	return m.SaveBatch(ctx, map[string][]byte{key: nil})
}

// Keys implements service.KeyValueStore.
func (m *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
