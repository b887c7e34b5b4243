package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
)

// ProcessRecurringTransactions materializes today's occurrence of every
// template whose recurring day is today's day of month. It does nothing if
// it already ran today. Missed days are never back-filled and the optional
// recurrence bounds are not consulted.
func (e *Engine) ProcessRecurringTransactions(ctx context.Context) ([]model.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	today := model.NewDate(now)
	if e.lastProcessed != nil && e.lastProcessed.SameDay(today) {
		return nil, nil
	}

	nextID := e.nextID
	var created []model.Transaction
	for _, tmpl := range e.templates {
		if tmpl.RecurringDay != now.Day() {
			continue
		}
		tx := tmpl
		tx.ID = nextID
		tx.Date = today
		tx.Timestamp = now.Format(model.TimestampLayout)
		nextID++
		created = append(created, tx)
	}

	batch := storage.NewBatch().Put(storage.KeyLastProcessedDate, today)
	transactions := e.transactions
	if len(created) > 0 {
		transactions = append(slices.Clone(e.transactions), created...)
		batch.Put(storage.KeyTransactions, transactions).
			Put(storage.KeyTransactionsNextID, nextID)
	}
	if err := batch.Commit(ctx, e.store); err != nil {
		return nil, fmt.Errorf("failed to save recurring transactions: %w", err)
	}

	e.transactions = transactions
	e.nextID = nextID
	e.lastProcessed = &today

	e.logger.Debug("Processed recurring transactions",
		"date", today.String(),
		"created", len(created))
	if len(created) > 0 {
		e.notifier.Notify(service.LevelInfo, MsgRecurringProcessed)
	}
	return created, nil
}

// LastProcessed returns the day recurring processing last ran, if ever.
func (e *Engine) LastProcessed() (model.Date, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastProcessed == nil {
		return model.Date{}, false
	}
	return *e.lastProcessed, true
}
