package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
)

// User-facing messages emitted by the ledger.
const (
	MsgTransactionAdded   = "Transaction added successfully"
	MsgTransactionUpdated = "Transaction updated successfully"
	MsgTransactionDeleted = "Transaction deleted"
	MsgRecurringProcessed = "Recurring transactions processed for today."
	MsgNearBudgetLimit    = "You are close to your budget limit"
	MsgBudgetExceeded     = "Budget exceeded"
	MsgAllDataCleared     = "All data cleared"
	MsgImported           = "Transactions imported"
)

// AddTransaction validates draft, stamps it with today's date and a fresh id,
// and persists it. Recurring drafts are also kept as templates.
func (e *Engine) AddTransaction(ctx context.Context, draft model.TransactionDraft) (model.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return model.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return model.Transaction{}, err
	}

	tx := draft.Build(e.nextID, e.clock.Now())

	transactions := append(slices.Clone(e.transactions), tx)
	templates := e.templates
	batch := storage.NewBatch().
		Put(storage.KeyTransactions, transactions).
		Put(storage.KeyTransactionsNextID, e.nextID+1)
	if tx.IsRecurring {
		templates = append(slices.Clone(e.templates), tx)
		batch.Put(storage.KeyRecurringTransactions, templates)
	}

	if err := batch.Commit(ctx, e.store); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to save transaction: %w", err)
	}

	e.transactions = transactions
	e.templates = templates
	e.nextID++

	e.logger.Debug("Added transaction",
		"id", tx.ID,
		"type", tx.Type,
		"category", tx.Category,
		"amount", tx.Amount.String(),
		"recurring", tx.IsRecurring)
	e.notifier.Notify(service.LevelSuccess, MsgTransactionAdded)

	return tx, nil
}

// EditTransaction replaces the stored transaction carrying updated.ID. It
// reports false when no such transaction exists.
func (e *Engine) EditTransaction(ctx context.Context, updated model.Transaction) (bool, error) {
	if err := updated.Validate(); err != nil {
		return false, fmt.Errorf("invalid transaction: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return false, err
	}

	idx := indexOf(e.transactions, updated.ID)
	if idx < 0 {
		e.logger.Debug("Edit skipped, transaction not found", "id", updated.ID)
		return false, nil
	}

	transactions := slices.Clone(e.transactions)
	transactions[idx] = updated
	if err := storage.SaveJSON(ctx, e.store, storage.KeyTransactions, transactions); err != nil {
		return false, fmt.Errorf("failed to save transaction: %w", err)
	}
	e.transactions = transactions

	e.logger.Debug("Edited transaction", "id", updated.ID)
	e.notifier.Notify(service.LevelSuccess, MsgTransactionUpdated)
	return true, nil
}

// DeleteTransaction removes id from both the transactions and the recurring
// templates after the user confirms. It reports whether anything was removed.
func (e *Engine) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return false, err
	}

	ok, err := e.confirm(ctx, fmt.Sprintf("Delete transaction %d?", id))
	if err != nil || !ok {
		return false, err
	}

	match := func(tx model.Transaction) bool { return tx.ID == id }
	transactions := slices.DeleteFunc(slices.Clone(e.transactions), match)
	templates := slices.DeleteFunc(slices.Clone(e.templates), match)
	if len(transactions) == len(e.transactions) && len(templates) == len(e.templates) {
		e.logger.Debug("Delete skipped, transaction not found", "id", id)
		return false, nil
	}

	err = storage.NewBatch().
		Put(storage.KeyTransactions, transactions).
		Put(storage.KeyRecurringTransactions, templates).
		Commit(ctx, e.store)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	e.transactions = transactions
	e.templates = templates

	e.logger.Debug("Deleted transaction", "id", id)
	e.notifier.Notify(service.LevelInfo, MsgTransactionDeleted)
	return true, nil
}

// ImportTransactions appends externally sourced transactions, keeping their
// dates. Anything matching an existing transaction's hash is skipped. It
// returns the transactions that were actually added.
func (e *Engine) ImportTransactions(ctx context.Context, incoming []model.Transaction) ([]model.Transaction, error) {
	for i := range incoming {
		if err := incoming[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction %q: %w", incoming[i].Description, err)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(e.transactions))
	for i := range e.transactions {
		seen[e.transactions[i].GenerateHash()] = struct{}{}
	}

	now := e.clock.Now()
	nextID := e.nextID
	var added []model.Transaction
	for _, tx := range incoming {
		hash := tx.GenerateHash()
		if _, dup := seen[hash]; dup {
			continue
		}
		seen[hash] = struct{}{}

		tx.ID = nextID
		nextID++
		tx.IsRecurring = false
		tx.RecurringDay = 0
		tx.RecurringStartDate = nil
		tx.RecurringEndDate = nil
		if tx.Timestamp == "" {
			tx.Timestamp = now.Format(model.TimestampLayout)
		}
		added = append(added, tx)
	}

	if len(added) == 0 {
		return nil, nil
	}

	transactions := append(slices.Clone(e.transactions), added...)
	err := storage.NewBatch().
		Put(storage.KeyTransactions, transactions).
		Put(storage.KeyTransactionsNextID, nextID).
		Commit(ctx, e.store)
	if err != nil {
		return nil, fmt.Errorf("failed to save imported transactions: %w", err)
	}

	e.transactions = transactions
	e.nextID = nextID

	e.logger.Debug("Imported transactions",
		"received", len(incoming),
		"added", len(added))
	e.notifier.Notify(service.LevelSuccess, fmt.Sprintf("%s: %d", MsgImported, len(added)))
	return added, nil
}
