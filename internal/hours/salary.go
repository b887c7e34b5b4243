package hours

import (
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/shopspring/decimal"
)

// RegularDay is the length of a working day before overtime starts.
const RegularDay = 8 * time.Hour

// Overtime tiers. Hours past the second tier keep the second tier's rate.
var (
	regularHours = decimal.NewFromInt(8)
	tierHours    = decimal.NewFromInt(2)
	tier1Rate    = decimal.RequireFromString("1.25")
	tier2Rate    = decimal.RequireFromString("1.5")
	tier3Rate    = decimal.RequireFromString("1.5")
)

// ComputeSalary pays the first 8 hours at rate, the next 2 at 1.25x and
// everything after that at 1.5x. Negative hours earn nothing.
func ComputeSalary(hours, rate decimal.Decimal) decimal.Decimal {
	if !hours.IsPositive() {
		return decimal.Zero
	}

	regular := decimal.Min(hours, regularHours)
	overtime := decimal.Max(decimal.Zero, hours.Sub(regularHours))
	tier1 := decimal.Min(overtime, tierHours)
	tier2 := decimal.Max(decimal.Zero, decimal.Min(overtime.Sub(tierHours), tierHours))
	tier3 := decimal.Max(decimal.Zero, overtime.Sub(tierHours.Mul(decimal.NewFromInt(2))))

	return regular.Mul(rate).
		Add(tier1.Mul(rate).Mul(tier1Rate)).
		Add(tier2.Mul(rate).Mul(tier2Rate)).
		Add(tier3.Mul(rate).Mul(tier3Rate))
}

// WorkedBetween is the time between start and end minus the closed breaks
// inside that window, floored at zero.
func WorkedBetween(start, end time.Time, breaks []model.Break) model.WorkedTime {
	var paused time.Duration
	for _, b := range breaks {
		paused += b.Within(start, end)
	}
	return model.NewWorkedTime(end.Sub(start) - paused)
}
