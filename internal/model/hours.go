package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	secondsPerHour = decimal.NewFromInt(3600)
)

// Break is a pause inside a work session. End is nil while the break is open.
type Break struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Open reports whether the break has not been closed yet.
func (b Break) Open() bool {
	return b.End == nil
}

// Duration is the closed length of the break. Open breaks count as zero.
func (b Break) Duration() time.Duration {
	if b.End == nil {
		return 0
	}
	if d := b.End.Sub(b.Start); d > 0 {
		return d
	}
	return 0
}

// Within is the part of the closed break that falls inside [from, to].
func (b Break) Within(from, to time.Time) time.Duration {
	if b.End == nil {
		return 0
	}
	start, end := b.Start, *b.End
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if d := end.Sub(start); d > 0 {
		return d
	}
	return 0
}

// Shift moves the break by days calendar days, keeping its wall-clock times.
func (b Break) Shift(days int) Break {
	out := Break{Start: b.Start.AddDate(0, 0, days)}
	if b.End != nil {
		end := b.End.AddDate(0, 0, days)
		out.End = &end
	}
	return out
}

// TotalBreakTime sums closed breaks. Open breaks contribute nothing.
func TotalBreakTime(breaks []Break) time.Duration {
	var total time.Duration
	for _, b := range breaks {
		total += b.Duration()
	}
	return total
}

// WorkedTime is a net worked duration split into whole hours, minutes and seconds.
type WorkedTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// NewWorkedTime decomposes d, truncated to whole seconds. Negative durations become zero.
func NewWorkedTime(d time.Duration) WorkedTime {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return WorkedTime{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// Duration recombines the parts.
func (w WorkedTime) Duration() time.Duration {
	return time.Duration(w.Hours)*time.Hour +
		time.Duration(w.Minutes)*time.Minute +
		time.Duration(w.Seconds)*time.Second
}

// Decimal returns hours + minutes/60 + seconds/3600.
func (w WorkedTime) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(w.Hours)).
		Add(decimal.NewFromInt(int64(w.Minutes)).Div(minutesPerHour)).
		Add(decimal.NewFromInt(int64(w.Seconds)).Div(secondsPerHour))
}

// String formats the worked time as HH:MM:SS.
func (w WorkedTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", w.Hours, w.Minutes, w.Seconds)
}

// HoursEntry is one completed work session.
type HoursEntry struct {
	Date        Date            `json:"date"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	TotalSalary decimal.Decimal `json:"totalSalary"`
	Breaks      []Break         `json:"breaks"`
	HoursWorked WorkedTime      `json:"hoursWorked"`
	ID          int64           `json:"id"`
}

// BreakTime sums the closed breaks of the entry.
func (e HoursEntry) BreakTime() time.Duration {
	return TotalBreakTime(e.Breaks)
}
