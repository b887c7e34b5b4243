package ledger

import (
	"testing"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	d := func(day int) model.Date { return model.DateOf(2024, time.March, day) }
	items := []model.Transaction{
		{ID: 1, Date: d(1), Type: model.TypeExpense, Category: model.CategoryFood},
		{ID: 2, Date: d(10), Type: model.TypeIncome, Category: model.CategorySalary},
		{ID: 3, Date: d(20), Type: model.TypeExpense, Category: model.CategoryRent},
		{ID: 4, Date: d(31), Type: model.TypeExpense, Category: model.CategoryFood},
	}
	start, end := d(10), d(20)

	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{name: "no criteria", criteria: Criteria{}, want: []int64{1, 2, 3, 4}},
		{name: "inclusive bounds", criteria: Criteria{StartDate: &start, EndDate: &end}, want: []int64{2, 3}},
		{name: "start only", criteria: Criteria{StartDate: &end}, want: []int64{3, 4}},
		{name: "category", criteria: Criteria{Category: model.CategoryFood}, want: []int64{1, 4}},
		{name: "type", criteria: Criteria{Type: model.TypeIncome}, want: []int64{2}},
		{name: "combined", criteria: Criteria{EndDate: &end, Type: model.TypeExpense}, want: []int64{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.criteria)
			ids := make([]int64, 0, len(got))
			for _, tx := range got {
				ids = append(ids, tx.ID)
			}
			assert.Equal(t, tt.want, ids)

			// Filtering twice changes nothing.
			assert.Equal(t, got, Filter(got, tt.criteria))
		})
	}
}
