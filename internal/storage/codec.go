package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/service"
)

// LoadJSON decodes the value under key into dst. It reports false, with no
// error, when the key does not exist.
func LoadJSON(ctx context.Context, store service.KeyValueStore, key string, dst any) (bool, error) {
	data, err := store.Load(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", common.ErrDatabaseCorrupted, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, store service.KeyValueStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return store.Save(ctx, key, data)
}

// Batch collects JSON-encoded writes for a single SaveBatch call.
type Batch struct {
	values map[string][]byte
	err    error
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{values: make(map[string][]byte)}
}

// Put encodes v under key. The first encoding error is kept and returned by Commit.
func (b *Batch) Put(key string, v any) *Batch {
	if b.err != nil {
		return b
	}
	data, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("failed to encode %s: %w", key, err)
		return b
	}
	b.values[key] = data
	return b
}

// Remove deletes key as part of the batch.
func (b *Batch) Remove(key string) *Batch {
	b.values[key] = nil
	return b
}

// Commit writes the batch atomically.
func (b *Batch) Commit(ctx context.Context, store service.KeyValueStore) error {
	if b.err != nil {
		return b.err
	}
	return store.SaveBatch(ctx, b.values)
}
