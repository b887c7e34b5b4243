package ledger

import (
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/shopspring/decimal"
)

// MonthlySummary groups transactions by month name, merging years. Only
// months with at least one transaction appear. Anything that is not income
// counts as expense.
func MonthlySummary(transactions []model.Transaction) map[time.Month]model.MonthSummary {
	summary := make(map[time.Month]model.MonthSummary)
	for _, tx := range transactions {
		month := tx.Date.Month()
		s, ok := summary[month]
		if !ok {
			s = model.MonthSummary{
				Categories: make(map[model.Category]decimal.Decimal),
				Income:     decimal.Zero,
				Expense:    decimal.Zero,
			}
		}

		s.Categories[tx.Category] = s.Categories[tx.Category].Add(tx.Amount)
		if tx.Type == model.TypeIncome {
			s.Income = s.Income.Add(tx.Amount)
		} else {
			s.Expense = s.Expense.Add(tx.Amount)
		}
		summary[month] = s
	}
	return summary
}

// MonthlyTotals returns income and expense per month, January first, for
// charting.
func MonthlyTotals(transactions []model.Transaction) [12]model.MonthTotals {
	var totals [12]model.MonthTotals
	for i := range totals {
		totals[i] = model.MonthTotals{Income: decimal.Zero, Expense: decimal.Zero}
	}
	for _, tx := range transactions {
		i := int(tx.Date.Month()) - 1
		switch tx.Type {
		case model.TypeIncome:
			totals[i].Income = totals[i].Income.Add(tx.Amount)
		case model.TypeExpense:
			totals[i].Expense = totals[i].Expense.Add(tx.Amount)
		}
	}
	return totals
}
