package model

import "github.com/shopspring/decimal"

// BudgetState holds the user-editable finance settings.
type BudgetState struct {
	InitialCapital decimal.Decimal `json:"initialCapital"`
	BudgetLimit    decimal.Decimal `json:"budgetLimit"`
}

// BudgetProgress is the all-time expense usage shown as a progress bar.
type BudgetProgress struct {
	TotalExpenses decimal.Decimal
	Limit         decimal.Decimal
	UsedPercent   decimal.Decimal
	Exceeded      bool
}

// BudgetStatus is the current month's expense usage used for warnings.
type BudgetStatus struct {
	MonthlyExpenses decimal.Decimal
	Limit           decimal.Decimal
	Remaining       decimal.Decimal
	Exceeded        bool
	NearLimit       bool
}

// MonthSummary accumulates one calendar month of transactions, across years.
type MonthSummary struct {
	Categories map[Category]decimal.Decimal
	Income     decimal.Decimal
	Expense    decimal.Decimal
}

// MonthTotals is one bar pair in the income/expense chart.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// HoursMonthSummary accumulates one calendar month of work, across years.
type HoursMonthSummary struct {
	Hours  decimal.Decimal
	Salary decimal.Decimal
}
