// Package model contains the plain data records shared by the finance and hours engines.
package model

import "errors"

// Validation errors.
var (
	ErrUnknownCategory      = errors.New("unknown category")
	ErrUnknownType          = errors.New("unknown transaction type")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrInvalidRecurringDay  = errors.New("recurring day must be between 1 and 31")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidRecurringSpan = errors.New("recurring end date is before start date")
)
