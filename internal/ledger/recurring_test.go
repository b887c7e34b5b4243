package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRecurring(t *testing.T, e *Engine, desc string, day int) model.Transaction {
	t.Helper()
	d := draft(desc, "100", model.TypeExpense, model.CategoryBills)
	d.IsRecurring = true
	d.RecurringDay = day
	tx, err := e.AddTransaction(context.Background(), d)
	require.NoError(t, err)
	return tx
}

func TestProcessRecurringTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Added on the 15th; one template matches the 16th, one the 20th.
	phone := addRecurring(t, f.engine, "Phone", 16)
	addRecurring(t, f.engine, "Internet", 20)
	f.clock.Set(time.Date(2024, time.March, 16, 8, 0, 0, 0, time.Local))
	f.notifier.Reset()

	engine := f.reload(t)
	created, err := engine.ProcessRecurringTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)

	got := created[0]
	assert.Equal(t, "Phone", got.Description)
	assert.Equal(t, "2024-03-16", got.Date.String())
	assert.NotEqual(t, phone.ID, got.ID)
	assert.Equal(t, int64(3), got.ID)
	assert.Len(t, engine.Transactions(), 3)
	assert.Equal(t, service.LevelInfo, f.notifier.Last().Level)
	assert.Equal(t, MsgRecurringProcessed, f.notifier.Last().Message)

	marker, ok := engine.LastProcessed()
	require.True(t, ok)
	assert.Equal(t, "2024-03-16", marker.String())
}

func TestProcessRecurringTransactions_OncePerDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	addRecurring(t, f.engine, "Phone", 15)

	first, err := f.engine.ProcessRecurringTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := f.engine.ProcessRecurringTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, second)

	// A restart later the same day must not duplicate either.
	f.clock.Advance(6 * time.Hour)
	third, err := f.reload(t).ProcessRecurringTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, third)
	assert.Len(t, f.reload(t).Transactions(), 2)
}

func TestProcessRecurringTransactions_MarkerWrittenWithoutMatches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	addRecurring(t, f.engine, "Phone", 3)
	f.notifier.Reset()

	created, err := f.engine.ProcessRecurringTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, f.notifier.All())

	var marker model.Date
	found, err := storage.LoadJSON(ctx, f.store, storage.KeyLastProcessedDate, &marker)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2024-03-15", marker.String())
}

func TestProcessRecurringTransactions_NoBackfill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	addRecurring(t, f.engine, "Phone", 16)

	// The app was closed on the 16th and reopened on the 18th.
	f.clock.Set(time.Date(2024, time.March, 18, 9, 0, 0, 0, time.Local))
	created, err := f.reload(t).ProcessRecurringTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestProcessRecurringTransactions_IgnoresBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ended := model.DateOf(2023, time.January, 1)
	d := draft("Old subscription", "9.99", model.TypeExpense, model.CategoryEntertainment)
	d.IsRecurring = true
	d.RecurringDay = 15
	d.RecurringEndDate = &ended
	_, err := f.engine.AddTransaction(ctx, d)
	require.NoError(t, err)

	created, err := f.engine.ProcessRecurringTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, created, 1)
}
