package hours

import (
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/shopspring/decimal"
)

// MonthlySummary totals hours and salary per month name, merging years.
// All twelve months are present, zero when nothing was worked.
func MonthlySummary(entries []model.HoursEntry) map[time.Month]model.HoursMonthSummary {
	summary := make(map[time.Month]model.HoursMonthSummary, 12)
	for m := time.January; m <= time.December; m++ {
		summary[m] = model.HoursMonthSummary{Hours: decimal.Zero, Salary: decimal.Zero}
	}

	for _, e := range entries {
		month := e.Date.Month()
		s := summary[month]
		s.Hours = s.Hours.Add(e.HoursWorked.Decimal())
		s.Salary = s.Salary.Add(e.TotalSalary)
		summary[month] = s
	}
	return summary
}

// MonthlySummary summarizes the tracker's entries.
func (t *Tracker) MonthlySummary() map[time.Month]model.HoursMonthSummary {
	return MonthlySummary(t.Entries())
}
