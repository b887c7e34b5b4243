package model

import (
	"fmt"
	"strings"
)

// CategoryType indicates whether a category usually carries income or expenses.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category is one of a fixed set of transaction categories.
type Category string

// Known categories.
const (
	CategoryFood          Category = "food"
	CategoryRent          Category = "rent"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryTransport     Category = "transport"
	CategoryHealth        Category = "health"
	CategoryMisc          Category = "misc"
	CategorySalary        Category = "salary"
	CategoryBonus         Category = "bonus"
	CategoryOther         Category = "other"
	CategoryShopping      Category = "shopping"
	CategoryEducation     Category = "education"
	CategoryTravel        Category = "travel"
	CategoryBills         Category = "bills"
)

var allCategories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryTransport,
	CategoryHealth,
	CategoryMisc,
	CategorySalary,
	CategoryBonus,
	CategoryOther,
	CategoryShopping,
	CategoryEducation,
	CategoryTravel,
	CategoryBills,
}

// AllCategories returns the category set in display order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, error) {
	candidate := Category(strings.ToLower(strings.TrimSpace(name)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Kind returns the direction money in this category usually flows.
func (c Category) Kind() CategoryType {
	switch c {
	case CategorySalary, CategoryBonus:
		return CategoryTypeIncome
	default:
		return CategoryTypeExpense
	}
}

// DefaultType is the transaction type implied by the category.
func (c Category) DefaultType() TransactionType {
	if c.Kind() == CategoryTypeIncome {
		return TypeIncome
	}
	return TypeExpense
}

func (c Category) String() string {
	return string(c)
}
