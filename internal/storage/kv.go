package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Veraticus/payday/internal/common"
)

const upsertQuery = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP`

// Load returns the stored value for key, or common.ErrNotFound.
func (s *SQLiteStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	return []byte(value), nil
}

// Save stores value under key, replacing any previous value.
func (s *SQLiteStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("%w: value for %s", ErrNilParameter, key)
	}

	if _, err := s.db.ExecContext(ctx, upsertQuery, key, string(value)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// SaveBatch writes every entry in one database transaction. Nil values delete their key.
func (s *SQLiteStorage) SaveBatch(ctx context.Context, values map[string][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if err := validateString(key, "key"); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	upsert, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = upsert.Close() }()

	remove, err := tx.PrepareContext(ctx, "DELETE FROM kv_store WHERE key = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare delete: %w", err)
	}
	defer func() { _ = remove.Close() }()

	for _, key := range keys {
		value := values[key]
		if value == nil {
			if _, err := remove.ExecContext(ctx, key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			continue
		}
		if _, err := upsert.ExecContext(ctx, key, string(value)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (s *SQLiteStorage) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv_store ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
