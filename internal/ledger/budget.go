package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Balance folds transactions onto the initial capital. Only Income and
// Expense move the balance.
func Balance(transactions []model.Transaction, initialCapital decimal.Decimal) decimal.Decimal {
	balance := initialCapital
	for _, tx := range transactions {
		balance = balance.Add(tx.SignedAmount())
	}
	return balance
}

// MonthlyExpenses sums expenses dated in the calendar month and year of now.
func MonthlyExpenses(transactions []model.Transaction, now time.Time) decimal.Decimal {
	year, month, _ := now.Date()
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != model.TypeExpense {
			continue
		}
		if y, m, _ := tx.Date.Date(); y == year && m == month {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// TotalExpenses sums every expense regardless of date.
func TotalExpenses(transactions []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.Type == model.TypeExpense {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// MonthlyBudgetStatus evaluates this month's expenses against limit. The
// status is near the limit when the remaining headroom is at most headroom.
func MonthlyBudgetStatus(transactions []model.Transaction, limit, headroom decimal.Decimal, now time.Time) model.BudgetStatus {
	monthly := MonthlyExpenses(transactions, now)
	remaining := limit.Sub(monthly)
	exceeded := monthly.GreaterThan(limit)
	return model.BudgetStatus{
		MonthlyExpenses: monthly,
		Limit:           limit,
		Remaining:       remaining,
		Exceeded:        exceeded,
		NearLimit:       !exceeded && remaining.LessThanOrEqual(headroom),
	}
}

// BudgetProgress measures all-time expenses against limit, capped at 100%.
// A limit of zero or less reports 0% used.
func BudgetProgress(transactions []model.Transaction, limit decimal.Decimal) model.BudgetProgress {
	total := TotalExpenses(transactions)
	progress := model.BudgetProgress{
		TotalExpenses: total,
		Limit:         limit,
		UsedPercent:   decimal.Zero,
		Exceeded:      total.GreaterThan(limit),
	}
	if limit.IsPositive() {
		progress.UsedPercent = decimal.Min(total.Div(limit).Mul(hundred), hundred)
	}
	return progress
}

// Balance returns the current balance of the loaded ledger.
func (e *Engine) Balance() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Balance(e.transactions, e.budget.InitialCapital)
}

// CheckMonthlyBudget evaluates the current month against the budget limit
// and notifies when it is exceeded or nearly so.
func (e *Engine) CheckMonthlyBudget(_ context.Context) model.BudgetStatus {
	e.mu.Lock()
	status := MonthlyBudgetStatus(e.transactions, e.budget.BudgetLimit, e.warningHeadroom, e.clock.Now())
	e.mu.Unlock()

	switch {
	case status.Exceeded:
		e.notifier.Notify(service.LevelError, MsgBudgetExceeded)
	case status.NearLimit:
		e.notifier.Notify(service.LevelWarning, MsgNearBudgetLimit)
	}
	return status
}

// Progress returns all-time budget usage without notifying.
func (e *Engine) Progress() model.BudgetProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BudgetProgress(e.transactions, e.budget.BudgetLimit)
}

// CheckBudgetProgress evaluates all-time expenses against the budget limit
// and notifies when the limit is exceeded.
func (e *Engine) CheckBudgetProgress(_ context.Context) model.BudgetProgress {
	e.mu.Lock()
	progress := BudgetProgress(e.transactions, e.budget.BudgetLimit)
	e.mu.Unlock()

	if progress.Exceeded {
		e.notifier.Notify(service.LevelError, MsgBudgetExceeded)
	}
	return progress
}

// SetInitialCapital persists a new starting balance.
func (e *Engine) SetInitialCapital(ctx context.Context, amount decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return err
	}

	if err := storage.SaveJSON(ctx, e.store, storage.KeyInitialCapital, amount); err != nil {
		return fmt.Errorf("failed to save initial capital: %w", err)
	}
	e.budget.InitialCapital = amount
	e.logger.Debug("Set initial capital", "amount", amount.String())
	return nil
}

// SetBudgetLimit persists a new budget limit. Negative limits are rejected.
func (e *Engine) SetBudgetLimit(ctx context.Context, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return fmt.Errorf("invalid budget limit: %w", model.ErrNegativeAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoaded(); err != nil {
		return err
	}

	if err := storage.SaveJSON(ctx, e.store, storage.KeyBudgetLimit, limit); err != nil {
		return fmt.Errorf("failed to save budget limit: %w", err)
	}
	e.budget.BudgetLimit = limit
	e.logger.Debug("Set budget limit", "limit", limit.String())
	return nil
}
