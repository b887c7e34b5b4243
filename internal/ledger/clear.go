package ledger

import (
	"context"
	"fmt"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
)

// ClearAll removes every transaction, template and finance setting after
// the user confirms. The id counter survives so ids are never reused.
func (e *Engine) ClearAll(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return false, err
	}

	ok, err := e.confirm(ctx, "Clear all finance data? This cannot be undone.")
	if err != nil || !ok {
		return false, err
	}

	err = storage.NewBatch().
		Remove(storage.KeyTransactions).
		Remove(storage.KeyRecurringTransactions).
		Remove(storage.KeyInitialCapital).
		Remove(storage.KeyBudgetLimit).
		Put(storage.KeyTransactionsNextID, e.nextID).
		Commit(ctx, e.store)
	if err != nil {
		return false, fmt.Errorf("failed to clear finance data: %w", err)
	}

	e.transactions = nil
	e.templates = nil
	e.budget = model.BudgetState{BudgetLimit: e.defaultLimit}

	e.logger.Debug("Cleared finance data")
	e.notifier.Notify(service.LevelInfo, MsgAllDataCleared)
	return true, nil
}
