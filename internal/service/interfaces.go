// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/shopspring/decimal"
)

// KeyValueStore defines the contract for our persistence layer. Values are
// opaque JSON documents addressed by fixed string keys.
type KeyValueStore interface {
	// Load returns common.ErrNotFound when key has never been saved.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	// SaveBatch writes all values atomically. A nil value deletes its key.
	SaveBatch(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Level classifies a user-facing notification.
type Level string

// Notification levels.
const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier delivers transient, fire-and-forget messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// Confirmer asks the user a yes/no question before a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ReportWriter defines the contract for exporting reports.
type ReportWriter interface {
	Write(ctx context.Context, report *Report) error
}

// Report is everything an external report needs, computed by the engines.
type Report struct {
	GeneratedAt    time.Time
	Budget         model.BudgetState
	Balance        decimal.Decimal
	Finance        map[time.Month]model.MonthSummary
	Chart          [12]model.MonthTotals
	Hours          map[time.Month]model.HoursMonthSummary
	Transactions   []model.Transaction
	BudgetProgress model.BudgetProgress
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// WithDefaults fills zero fields with sensible values.
func (o RetryOptions) WithDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	return o
}
