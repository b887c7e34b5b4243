package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/model"
	"github.com/shopspring/decimal"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", common.ErrInvalidInput, arg)
	}
	return id, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", common.ErrInvalidInput, s)
	}
	return amount, nil
}

// parseOptionalDate returns nil for an empty flag.
func parseOptionalDate(s string) (*model.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseClock reads an HH:MM or HH:MM:SS wall-clock time.
func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: time %q, want HH:MM", common.ErrInvalidInput, s)
}
