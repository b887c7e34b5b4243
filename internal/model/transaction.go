package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout formats the display-only creation moment of a transaction.
const TimestampLayout = "2006-01-02 15:04:05"

// TransactionType says which way money moved.
type TransactionType string

const (
	// TypeIncome adds to the balance.
	TypeIncome TransactionType = "Income"
	// TypeExpense subtracts from the balance.
	TypeExpense TransactionType = "Expense"
	// TypeOther is tolerated in stored data but never affects the balance.
	TypeOther TransactionType = "Other"
)

// ParseTransactionType resolves a type name case-insensitively.
func ParseTransactionType(name string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "income":
		return TypeIncome, nil
	case "expense":
		return TypeExpense, nil
	case "other":
		return TypeOther, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// Transaction is a dated income or expense record.
type Transaction struct {
	Date               Date            `json:"date"`
	RecurringStartDate *Date           `json:"recurringStartDate,omitempty"`
	RecurringEndDate   *Date           `json:"recurringEndDate,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	Type               TransactionType `json:"type"`
	Category           Category        `json:"category"`
	Timestamp          string          `json:"timestamp"`
	ID                 int64           `json:"id"`
	RecurringDay       int             `json:"recurringDay,omitempty"`
	IsRecurring        bool            `json:"isRecurring"`
}

// TransactionDraft is what the user submits to create a transaction.
type TransactionDraft struct {
	RecurringStartDate *Date
	RecurringEndDate   *Date
	Amount             decimal.Decimal
	Description        string
	Type               TransactionType
	Category           Category
	RecurringDay       int
	IsRecurring        bool
}

// Validate checks the draft before it becomes a transaction.
func (d TransactionDraft) Validate() error {
	if d.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}
	if d.Type != TypeIncome && d.Type != TypeExpense {
		return fmt.Errorf("%w: %q", ErrUnknownType, d.Type)
	}
	if !d.IsRecurring {
		return nil
	}
	if d.RecurringDay < 1 || d.RecurringDay > 31 {
		return ErrInvalidRecurringDay
	}
	if d.RecurringStartDate != nil && d.RecurringEndDate != nil &&
		d.RecurringEndDate.Compare(*d.RecurringStartDate) < 0 {
		return ErrInvalidRecurringSpan
	}
	return nil
}

// Build turns the draft into a transaction created at now.
func (d TransactionDraft) Build(id int64, now time.Time) Transaction {
	tx := Transaction{
		ID:          id,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        d.Type,
		Category:    d.Category,
		Date:        NewDate(now),
		Timestamp:   now.Format(TimestampLayout),
		IsRecurring: d.IsRecurring,
	}
	if d.IsRecurring {
		tx.RecurringDay = d.RecurringDay
		tx.RecurringStartDate = d.RecurringStartDate
		tx.RecurringEndDate = d.RecurringEndDate
	}
	return tx
}

// Validate checks a stored or edited transaction. Unlike drafts, the Other
// type is accepted.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, t.Category)
	}
	switch t.Type {
	case TypeIncome, TypeExpense, TypeOther:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, t.Type)
	}
	if t.IsRecurring && (t.RecurringDay < 1 || t.RecurringDay > 31) {
		return ErrInvalidRecurringDay
	}
	return nil
}

// GenerateHash creates a hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.String(),
		t.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(t.Description)),
		t.Type)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// SignedAmount is the transaction's effect on the balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TypeIncome:
		return t.Amount
	case TypeExpense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}
