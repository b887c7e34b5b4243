package classification

import (
	"sync"
	"testing"

	"github.com/Veraticus/payday/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDetector_Classify(t *testing.T) {
	d, err := NewDefaultDetector()
	require.NoError(t, err)

	tests := []struct {
		description string
		txType      model.TransactionType
		want        model.Category
		ok          bool
	}{
		{"ACME CORP PAYROLL", model.TypeIncome, model.CategorySalary, true},
		{"Interest paid", model.TypeIncome, model.CategoryBonus, true},
		{"STARBUCKS STORE #1234", model.TypeExpense, model.CategoryFood, true},
		{"Whole Foods Market", model.TypeExpense, model.CategoryFood, true},
		{"NETFLIX.COM", model.TypeExpense, model.CategoryEntertainment, true},
		{"AMZN Mktp US", model.TypeExpense, model.CategoryShopping, true},
		{"MONTHLY SERVICE FEE", model.TypeExpense, model.CategoryBills, true},
		{"UBER TRIP", model.TypeExpense, model.CategoryTransport, true},
		// Refund from an expense-category merchant stays unclassified.
		{"AMAZON REFUND", model.TypeIncome, "", false},
		{"CHECK #1234", model.TypeExpense, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, ok := d.Classify(tt.description, tt.txType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetector_Priority(t *testing.T) {
	d, err := NewDetector([]Rule{
		{Name: "low", Category: "shopping", Regex: `STORE`, Priority: 1},
		{Name: "high", Category: "food", Regex: `STORE`, Priority: 10},
	})
	require.NoError(t, err)

	got, ok := d.Classify("corner store", model.TypeExpense)
	require.True(t, ok)
	assert.Equal(t, model.CategoryFood, got)
}

func TestDetector_CustomRulesExtendDefaults(t *testing.T) {
	d, err := NewDefaultDetector(Rule{Name: "gym", Category: "health", Regex: `\bGYM\b`, Priority: 200})
	require.NoError(t, err)
	assert.Equal(t, len(DefaultRules())+1, d.RuleCount())

	got, ok := d.Classify("PLANET GYM", model.TypeExpense)
	require.True(t, ok)
	assert.Equal(t, model.CategoryHealth, got)
}

func TestDetector_InvalidRules(t *testing.T) {
	_, err := NewDetector([]Rule{{Name: "bad", Category: "food", Regex: `(`}})
	assert.ErrorContains(t, err, "failed to compile rule bad")

	_, err = NewDetector([]Rule{{Name: "bad", Category: "yachts", Regex: `BOAT`}})
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestDetector_UpdateRulesConcurrent(t *testing.T) {
	d, err := NewDefaultDetector()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Classify("STARBUCKS", model.TypeExpense)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, d.UpdateRules(DefaultRules()))
		}()
	}
	wg.Wait()
	assert.Equal(t, len(DefaultRules()), d.RuleCount())
}
