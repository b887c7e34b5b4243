package ledger

import "github.com/Veraticus/payday/internal/model"

// Criteria narrows a transaction list. Zero fields do not filter.
type Criteria struct {
	StartDate *model.Date
	EndDate   *model.Date
	Category  model.Category
	Type      model.TransactionType
}

// Filter returns the transactions matching every set criterion, in their
// input order. Date bounds are inclusive.
func Filter(transactions []model.Transaction, c Criteria) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if c.matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

func (c Criteria) matches(tx model.Transaction) bool {
	if c.StartDate != nil && tx.Date.Compare(*c.StartDate) < 0 {
		return false
	}
	if c.EndDate != nil && tx.Date.Compare(*c.EndDate) > 0 {
		return false
	}
	if c.Category != "" && tx.Category != c.Category {
		return false
	}
	if c.Type != "" && tx.Type != c.Type {
		return false
	}
	return true
}
