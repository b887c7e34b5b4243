package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("  Food ")
	require.NoError(t, err)
	assert.Equal(t, CategoryFood, got)

	_, err = ParseCategory("groceries")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Len(t, AllCategories(), 14)
	assert.Equal(t, TypeIncome, CategorySalary.DefaultType())
	assert.Equal(t, TypeExpense, CategoryRent.DefaultType())
}

func TestParseTransactionType(t *testing.T) {
	for input, want := range map[string]TransactionType{
		"income":  TypeIncome,
		"EXPENSE": TypeExpense,
		"Other":   TypeOther,
	} {
		got, err := ParseTransactionType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseTransactionType("transfer")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestTransactionDraft_Validate(t *testing.T) {
	start := DateOf(2024, time.February, 1)
	end := DateOf(2024, time.January, 1)

	tests := []struct {
		wantErr error
		name    string
		draft   TransactionDraft
	}{
		{
			name:  "valid expense",
			draft: TransactionDraft{Amount: decimal.NewFromInt(10), Type: TypeExpense, Category: CategoryFood},
		},
		{
			name:    "negative amount",
			draft:   TransactionDraft{Amount: decimal.NewFromInt(-1), Type: TypeExpense, Category: CategoryFood},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "unknown category",
			draft:   TransactionDraft{Amount: decimal.NewFromInt(1), Type: TypeExpense, Category: "pets"},
			wantErr: ErrUnknownCategory,
		},
		{
			name:    "other type cannot be created",
			draft:   TransactionDraft{Amount: decimal.NewFromInt(1), Type: TypeOther, Category: CategoryOther},
			wantErr: ErrUnknownType,
		},
		{
			name: "recurring without day",
			draft: TransactionDraft{
				Amount: decimal.NewFromInt(1), Type: TypeExpense, Category: CategoryRent, IsRecurring: true,
			},
			wantErr: ErrInvalidRecurringDay,
		},
		{
			name: "recurring with inverted span",
			draft: TransactionDraft{
				Amount: decimal.NewFromInt(1), Type: TypeExpense, Category: CategoryRent,
				IsRecurring: true, RecurringDay: 3, RecurringStartDate: &start, RecurringEndDate: &end,
			},
			wantErr: ErrInvalidRecurringSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransactionDraft_Build(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 5, 9, 0, time.Local)
	draft := TransactionDraft{
		Description:  "Rent",
		Amount:       decimal.RequireFromString("950.00"),
		Type:         TypeExpense,
		Category:     CategoryRent,
		IsRecurring:  true,
		RecurringDay: 1,
	}

	tx := draft.Build(7, now)

	assert.Equal(t, int64(7), tx.ID)
	assert.True(t, tx.Date.SameDay(DateOf(2024, time.March, 15)))
	assert.Equal(t, "2024-03-15 14:05:09", tx.Timestamp)
	assert.True(t, tx.IsRecurring)
	assert.Equal(t, 1, tx.RecurringDay)

	draft.IsRecurring = false
	plain := draft.Build(8, now)
	assert.Zero(t, plain.RecurringDay)
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(40)
	assert.True(t, Transaction{Type: TypeIncome, Amount: amount}.SignedAmount().Equal(amount))
	assert.True(t, Transaction{Type: TypeExpense, Amount: amount}.SignedAmount().Equal(amount.Neg()))
	assert.True(t, Transaction{Type: TypeOther, Amount: amount}.SignedAmount().IsZero())
}

func TestTransaction_GenerateHash(t *testing.T) {
	a := Transaction{Date: DateOf(2024, time.January, 2), Amount: decimal.RequireFromString("12.5"), Description: "Coffee", Type: TypeExpense}
	b := a
	b.Description = "  coffee "
	b.Amount = decimal.RequireFromString("12.50")

	assert.Equal(t, a.GenerateHash(), b.GenerateHash())

	b.Type = TypeIncome
	assert.NotEqual(t, a.GenerateHash(), b.GenerateHash())
}
