package sheets

import (
	"fmt"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/shopspring/decimal"
)

// Tab titles, in the order they appear in the spreadsheet.
const (
	TabSummary      = "Summary"
	TabMonthly      = "Monthly"
	TabHours        = "Hours"
	TabTransactions = "Transactions"
)

// Tab is one sheet of the report: a title and its rows. The first row is
// the header.
type Tab struct {
	Title string
	Rows  [][]any
	// MoneyColumns are zero-based columns formatted as currency.
	MoneyColumns []int
}

// BuildTabs lays out report as spreadsheet tabs.
func BuildTabs(report *service.Report) []Tab {
	return []Tab{
		summaryTab(report),
		monthlyTab(report),
		hoursTab(report),
		transactionsTab(report.Transactions),
	}
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func summaryTab(report *service.Report) Tab {
	progress := report.BudgetProgress
	return Tab{
		Title: TabSummary,
		Rows: [][]any{
			{"Item", "Value"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04")},
			{"Initial capital", money(report.Budget.InitialCapital)},
			{"Balance", money(report.Balance)},
			{"Budget limit", money(report.Budget.BudgetLimit)},
			{"Total expenses", money(progress.TotalExpenses)},
			{"Budget used %", progress.UsedPercent.Round(1).InexactFloat64()},
			{"Budget exceeded", progress.Exceeded},
		},
		MoneyColumns: []int{1},
	}
}

func monthlyTab(report *service.Report) Tab {
	header := []any{"Month", "Income", "Expense", "Net"}
	categories := model.AllCategories()
	for _, c := range categories {
		header = append(header, c.String())
	}

	rows := [][]any{header}
	for i, totals := range report.Chart {
		month := time.Month(i + 1)
		row := []any{
			month.String(),
			money(totals.Income),
			money(totals.Expense),
			money(totals.Income.Sub(totals.Expense)),
		}
		summary := report.Finance[month]
		for _, c := range categories {
			row = append(row, money(summary.Categories[c]))
		}
		rows = append(rows, row)
	}

	cols := make([]int, 0, len(header)-1)
	for i := 1; i < len(header); i++ {
		cols = append(cols, i)
	}
	return Tab{Title: TabMonthly, Rows: rows, MoneyColumns: cols}
}

func hoursTab(report *service.Report) Tab {
	rows := [][]any{{"Month", "Hours", "Salary"}}
	totalHours, totalSalary := decimal.Zero, decimal.Zero
	for m := time.January; m <= time.December; m++ {
		s := report.Hours[m]
		totalHours = totalHours.Add(s.Hours)
		totalSalary = totalSalary.Add(s.Salary)
		rows = append(rows, []any{m.String(), s.Hours.Round(2).InexactFloat64(), money(s.Salary)})
	}
	rows = append(rows, []any{"Total", totalHours.Round(2).InexactFloat64(), money(totalSalary)})
	return Tab{Title: TabHours, Rows: rows, MoneyColumns: []int{2}}
}

func transactionsTab(transactions []model.Transaction) Tab {
	rows := make([][]any, 0, len(transactions)+1)
	rows = append(rows, []any{"ID", "Date", "Description", "Type", "Category", "Amount", "Recurring"})
	for _, tx := range transactions {
		recurring := ""
		if tx.IsRecurring {
			recurring = fmt.Sprintf("day %d", tx.RecurringDay)
		}
		rows = append(rows, []any{
			tx.ID,
			tx.Date.String(),
			tx.Description,
			string(tx.Type),
			tx.Category.String(),
			money(tx.SignedAmount()),
			recurring,
		})
	}
	return Tab{Title: TabTransactions, Rows: rows, MoneyColumns: []int{5}}
}
