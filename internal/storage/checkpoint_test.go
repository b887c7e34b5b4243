package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckpointTest(t *testing.T) (*SQLiteStorage, *CheckpointManager) {
	t.Helper()
	store, cleanup := createTestStorage(t)
	t.Cleanup(cleanup)

	cm, err := store.NewCheckpointManager()
	require.NoError(t, err)

	clock := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	cm.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	require.NoError(t, store.Save(context.Background(), KeyTransactions, []byte(`[{"id":1}]`)))
	return store, cm
}

func TestCheckpointManager_Create(t *testing.T) {
	_, cm := setupCheckpointTest(t)
	ctx := context.Background()

	info, err := cm.Create(ctx, "before-import", "manual snapshot")
	require.NoError(t, err)

	assert.Equal(t, "before-import", info.ID)
	assert.Equal(t, "manual snapshot", info.Description)
	assert.Equal(t, 1, info.Keys)
	assert.Equal(t, ExpectedSchemaVersion, info.SchemaVersion)
	assert.Positive(t, info.FileSize)
	assert.False(t, info.IsAuto)

	assert.FileExists(t, filepath.Join(cm.checkpointsDir, "before-import.db"))
	assert.FileExists(t, filepath.Join(cm.checkpointsDir, "before-import.meta.json"))

	_, err = cm.Create(ctx, "before-import", "again")
	assert.ErrorIs(t, err, ErrCheckpointExists)
}

func TestCheckpointManager_CreateGeneratesTag(t *testing.T) {
	_, cm := setupCheckpointTest(t)

	info, err := cm.Create(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "checkpoint-2024-03-01-090100", info.ID)
}

func TestCheckpointManager_InvalidTags(t *testing.T) {
	_, cm := setupCheckpointTest(t)
	ctx := context.Background()

	for _, tag := range []string{"../escape", "a/b", `a\b`, "it's"} {
		t.Run(tag, func(t *testing.T) {
			_, err := cm.Create(ctx, tag, "")
			assert.ErrorIs(t, err, ErrInvalidCheckpointID)
		})
	}
}

func TestCheckpointManager_List(t *testing.T) {
	_, cm := setupCheckpointTest(t)
	ctx := context.Background()

	_, err := cm.Create(ctx, "first", "")
	require.NoError(t, err)
	_, err = cm.Create(ctx, "second", "")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(cm.checkpointsDir, "broken.meta.json"), []byte("{"), 0600))

	list, err := cm.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].ID)
	assert.Equal(t, "first", list[1].ID)
}

func TestCheckpointManager_Restore(t *testing.T) {
	store, cm := setupCheckpointTest(t)
	ctx := context.Background()

	_, err := cm.Create(ctx, "good", "")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, KeyTransactions, []byte(`[]`)))
	require.NoError(t, cm.Restore(ctx, "good"))

	reopened, err := NewSQLiteStorage(store.Path())
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx, KeyTransactions)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))
}

func TestCheckpointManager_RestoreMissing(t *testing.T) {
	_, cm := setupCheckpointTest(t)
	assert.ErrorIs(t, cm.Restore(context.Background(), "nope"), ErrCheckpointNotFound)
}

func TestCheckpointManager_Delete(t *testing.T) {
	_, cm := setupCheckpointTest(t)
	ctx := context.Background()

	_, err := cm.Create(ctx, "doomed", "")
	require.NoError(t, err)

	require.NoError(t, cm.Delete(ctx, "doomed"))
	assert.NoFileExists(t, filepath.Join(cm.checkpointsDir, "doomed.db"))
	assert.ErrorIs(t, cm.Delete(ctx, "doomed"), ErrCheckpointNotFound)
}

func TestCheckpointManager_AutoCheckpointCleanup(t *testing.T) {
	_, cm := setupCheckpointTest(t)
	ctx := context.Background()

	_, err := cm.Create(ctx, "manual", "")
	require.NoError(t, err)

	for i := 0; i < maxAutoCheckpoints+2; i++ {
		info, autoErr := cm.AutoCheckpoint(ctx, "clear")
		require.NoError(t, autoErr, fmt.Sprintf("auto checkpoint %d", i))
		assert.True(t, info.IsAuto)
	}

	list, err := cm.List(ctx)
	require.NoError(t, err)

	autoCount := 0
	for _, cp := range list {
		if cp.IsAuto {
			autoCount++
		}
	}
	assert.Equal(t, maxAutoCheckpoints, autoCount)
	assert.Len(t, list, maxAutoCheckpoints+1)
}
