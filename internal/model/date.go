package model

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the persisted and displayed form of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar day. The time of day is always midnight in the
// location the date was created in.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// DateOf builds a date in the local time zone.
func DateOf(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// ParseDate parses a YYYY-MM-DD string in the local time zone.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// Compare orders two dates by calendar day, ignoring location.
func (d Date) Compare(other Date) int {
	ay, am, ad := d.Date()
	by, bm, bd := other.Date()
	switch {
	case ay != by:
		return cmp.Compare(ay, by)
	case am != bm:
		return cmp.Compare(am, bm)
	default:
		return cmp.Compare(ad, bd)
	}
}

// SameDay reports whether both dates name the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Compare(other) == 0
}

// At combines the date with the wall-clock time of clock.
func (d Date) At(clock time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, clock.Hour(), clock.Minute(), clock.Second(), 0, d.Location())
}

// DaysUntil counts calendar days from d to other, negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD" and full RFC 3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	*d = NewDate(t.Local())
	return nil
}
