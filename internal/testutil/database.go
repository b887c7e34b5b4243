// Package testutil provides shared fakes and fixtures for payday tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store that is closed when the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// Seed stores v as JSON under key or fails the test.
func Seed(t *testing.T, store service.KeyValueStore, key string, v any) {
	t.Helper()
	if err := storage.SaveJSON(context.Background(), store, key, v); err != nil {
		t.Fatalf("failed to seed %s: %v", key, err)
	}
}
