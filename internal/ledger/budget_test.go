package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(date model.Date, amount string, typ model.TransactionType) model.Transaction {
	return model.Transaction{Date: date, Amount: dec(amount), Type: typ, Category: model.CategoryMisc}
}

func TestBalance(t *testing.T) {
	day := model.DateOf(2024, time.March, 1)
	transactions := []model.Transaction{
		tx(day, "1000", model.TypeIncome),
		tx(day, "250.25", model.TypeExpense),
		tx(day, "99", model.TypeOther),
	}

	assert.Equal(t, "1249.75", Balance(transactions, dec("500")).StringFixed(2))
	assert.Equal(t, "500.00", Balance(nil, dec("500")).StringFixed(2))

	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, order := range orders {
		shuffled := make([]model.Transaction, 0, len(order))
		for _, i := range order {
			shuffled = append(shuffled, transactions[i])
		}
		assert.Equal(t, "1249.75", Balance(shuffled, dec("500")).StringFixed(2), "order %v", order)
	}
}

func TestMonthlyExpenses(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		tx(model.DateOf(2024, time.March, 1), "100", model.TypeExpense),
		tx(model.DateOf(2024, time.March, 31), "50", model.TypeExpense),
		tx(model.DateOf(2024, time.March, 5), "999", model.TypeIncome),
		tx(model.DateOf(2024, time.February, 29), "70", model.TypeExpense),
		tx(model.DateOf(2023, time.March, 10), "40", model.TypeExpense),
	}

	assert.True(t, MonthlyExpenses(transactions, now).Equal(dec("150")))
	assert.True(t, TotalExpenses(transactions).Equal(dec("260")))
}

func TestMonthlyBudgetStatus(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.Local)
	march := model.DateOf(2024, time.March, 2)

	tests := []struct {
		name     string
		spent    string
		exceeded bool
		near     bool
	}{
		{name: "plenty left", spent: "700", exceeded: false, near: false},
		{name: "exactly at headroom", spent: "750", exceeded: false, near: true},
		{name: "at the limit", spent: "1000", exceeded: false, near: true},
		{name: "over the limit", spent: "1000.01", exceeded: true, near: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := MonthlyBudgetStatus(
				[]model.Transaction{tx(march, tt.spent, model.TypeExpense)},
				dec("1000"), dec("250"), now)
			assert.Equal(t, tt.exceeded, status.Exceeded)
			assert.Equal(t, tt.near, status.NearLimit)
			assert.True(t, status.Remaining.Equal(dec("1000").Sub(dec(tt.spent))))
		})
	}
}

func TestBudgetProgress(t *testing.T) {
	jan := model.DateOf(2024, time.January, 2)
	mar := model.DateOf(2024, time.March, 2)

	tests := []struct {
		name     string
		items    []model.Transaction
		limit    string
		percent  string
		exceeded bool
	}{
		{
			name:    "spans all months",
			items:   []model.Transaction{tx(jan, "300", model.TypeExpense), tx(mar, "200", model.TypeExpense)},
			limit:   "1000",
			percent: "50",
		},
		{
			name:     "capped at one hundred",
			items:    []model.Transaction{tx(jan, "1500", model.TypeExpense)},
			limit:    "1000",
			percent:  "100",
			exceeded: true,
		},
		{
			name:     "zero limit",
			items:    []model.Transaction{tx(jan, "10", model.TypeExpense)},
			limit:    "0",
			percent:  "0",
			exceeded: true,
		},
		{
			name:    "empty",
			limit:   "1000",
			percent: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := BudgetProgress(tt.items, dec(tt.limit))
			assert.True(t, progress.UsedPercent.Equal(dec(tt.percent)), "got %s", progress.UsedPercent)
			assert.Equal(t, tt.exceeded, progress.Exceeded)
		})
	}
}

func TestEngine_CheckMonthlyBudget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.engine.AddTransaction(ctx, draft("Rent", "700", model.TypeExpense, model.CategoryRent))
	require.NoError(t, err)
	f.notifier.Reset()

	status := f.engine.CheckMonthlyBudget(ctx)
	assert.False(t, status.NearLimit)
	assert.Empty(t, f.notifier.All())

	_, err = f.engine.AddTransaction(ctx, draft("Food", "60", model.TypeExpense, model.CategoryFood))
	require.NoError(t, err)
	f.notifier.Reset()

	status = f.engine.CheckMonthlyBudget(ctx)
	assert.True(t, status.NearLimit)
	assert.Equal(t, service.LevelWarning, f.notifier.Last().Level)

	_, err = f.engine.AddTransaction(ctx, draft("Trip", "500", model.TypeExpense, model.CategoryTravel))
	require.NoError(t, err)
	f.notifier.Reset()

	status = f.engine.CheckMonthlyBudget(ctx)
	assert.True(t, status.Exceeded)
	assert.Equal(t, 1, f.notifier.Count(service.LevelError))
	assert.Zero(t, f.notifier.Count(service.LevelWarning))
}

func TestEngine_CheckBudgetProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.engine.SetBudgetLimit(ctx, dec("100")))

	_, err := f.engine.AddTransaction(ctx, draft("Shoes", "150", model.TypeExpense, model.CategoryShopping))
	require.NoError(t, err)
	f.notifier.Reset()

	progress := f.engine.CheckBudgetProgress(ctx)
	assert.True(t, progress.Exceeded)
	assert.True(t, progress.UsedPercent.Equal(dec("100")))
	assert.Equal(t, MsgBudgetExceeded, f.notifier.Last().Message)

	f.notifier.Reset()
	quiet := f.engine.Progress()
	assert.True(t, quiet.Exceeded)
	assert.True(t, quiet.TotalExpenses.Equal(dec("150")))
	assert.Empty(t, f.notifier.All())
}

func TestEngine_Settings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.engine.SetInitialCapital(ctx, dec("1200.50")))
	require.NoError(t, f.engine.SetBudgetLimit(ctx, dec("800")))
	assert.ErrorIs(t, f.engine.SetBudgetLimit(ctx, dec("-1")), model.ErrNegativeAmount)

	_, err := f.engine.AddTransaction(ctx, draft("Lunch", "0.50", model.TypeExpense, model.CategoryFood))
	require.NoError(t, err)

	reloaded := f.reload(t)
	assert.True(t, reloaded.Budget().InitialCapital.Equal(dec("1200.50")))
	assert.True(t, reloaded.Budget().BudgetLimit.Equal(dec("800")))
	assert.Equal(t, "1200.00", reloaded.Balance().StringFixed(2))
}
