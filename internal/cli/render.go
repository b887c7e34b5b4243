package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const chartWidth = 30

// FormatMoney renders an amount with two decimals.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatSigned colors an amount by the direction of the transaction.
func FormatSigned(tx model.Transaction) string {
	switch tx.Type {
	case model.TypeIncome:
		return SuccessStyle.Render("+" + FormatMoney(tx.Amount))
	case model.TypeExpense:
		return ErrorStyle.Render("-" + FormatMoney(tx.Amount))
	default:
		return SubtleStyle.Render(FormatMoney(tx.Amount))
	}
}

// RenderTable lays out rows under a header with aligned columns.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := []string{renderRow(header, TableHeaderStyle)}
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderTransactions renders a transaction list.
func RenderTransactions(transactions []model.Transaction) string {
	if len(transactions) == 0 {
		return SubtleStyle.Render("No transactions")
	}
	rows := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		recurring := ""
		if tx.IsRecurring {
			recurring = fmt.Sprintf("day %d", tx.RecurringDay)
		}
		rows = append(rows, []string{
			fmt.Sprint(tx.ID),
			tx.Date.String(),
			tx.Description,
			tx.Category.String(),
			FormatSigned(tx),
			recurring,
		})
	}
	return RenderTable([]string{"ID", "Date", "Description", "Category", "Amount", "Recurring"}, rows)
}

// RenderEntries renders hours entries.
func RenderEntries(entries []model.HoursEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("No hours entries")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprint(e.ID),
			e.Date.String(),
			e.StartTime.Format("15:04:05"),
			e.EndTime.Format("15:04:05"),
			e.BreakTime().String(),
			e.HoursWorked.String(),
			FormatMoney(e.TotalSalary),
		})
	}
	return RenderTable([]string{"ID", "Date", "Start", "End", "Breaks", "Worked", "Salary"}, rows)
}

// RenderMonthSummary renders the per-month income, expense and category totals.
func RenderMonthSummary(summary map[time.Month]model.MonthSummary) string {
	if len(summary) == 0 {
		return SubtleStyle.Render("No transactions")
	}
	var rows [][]string
	for m := time.January; m <= time.December; m++ {
		s, ok := summary[m]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			m.String(),
			SuccessStyle.Render(FormatMoney(s.Income)),
			ErrorStyle.Render(FormatMoney(s.Expense)),
			formatCategories(s.Categories),
		})
	}
	return RenderTable([]string{"Month", "Income", "Expense", "Categories"}, rows)
}

func formatCategories(categories map[model.Category]decimal.Decimal) string {
	var parts []string
	for _, c := range model.AllCategories() {
		if amount, ok := categories[c]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", c, FormatMoney(amount)))
		}
	}
	return strings.Join(parts, ", ")
}

// RenderHoursSummary renders hours and salary for all twelve months.
func RenderHoursSummary(summary map[time.Month]model.HoursMonthSummary) string {
	rows := make([][]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		s := summary[m]
		rows = append(rows, []string{m.String(), s.Hours.StringFixed(2), FormatMoney(s.Salary)})
	}
	return RenderTable([]string{"Month", "Hours", "Salary"}, rows)
}

// RenderChart draws income and expense bars per month, scaled to the
// largest value.
func RenderChart(totals [12]model.MonthTotals) string {
	peak := decimal.Zero
	for _, t := range totals {
		peak = decimal.Max(peak, t.Income, t.Expense)
	}

	bar := func(v decimal.Decimal) string {
		if !peak.IsPositive() {
			return ""
		}
		n := int(v.Div(peak).Mul(decimal.NewFromInt(chartWidth)).Round(0).IntPart())
		return strings.Repeat("█", n)
	}

	lines := make([]string, 0, 24)
	for i, t := range totals {
		label := fmt.Sprintf("%-4s", time.Month(i+1).String()[:3])
		lines = append(lines,
			label+" "+SuccessStyle.Render(bar(t.Income))+" "+FormatMoney(t.Income),
			"     "+ErrorStyle.Render(bar(t.Expense))+" "+FormatMoney(t.Expense))
	}
	return strings.Join(lines, "\n")
}

// RenderBudget renders the all-time budget usage as a bar.
func RenderBudget(progress model.BudgetProgress) string {
	filled := int(progress.UsedPercent.Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(chartWidth)).Round(0).IntPart())
	style := SuccessStyle
	if progress.Exceeded {
		style = ErrorStyle
	}
	bar := style.Render(strings.Repeat("█", filled)) + SubtleStyle.Render(strings.Repeat("░", chartWidth-filled))
	return fmt.Sprintf("%s %s%% (%s of %s)",
		bar,
		progress.UsedPercent.StringFixed(0),
		FormatMoney(progress.TotalExpenses),
		FormatMoney(progress.Limit))
}
