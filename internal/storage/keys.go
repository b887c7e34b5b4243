package storage

// Persisted keys.
const (
	KeyInitialCapital        = "initialCapital"
	KeyTransactions          = "transactions"
	KeyRecurringTransactions = "recurringTransactions"
	KeyBudgetLimit           = "budgetLimit"
	KeyLastProcessedDate     = "lastProcessedDate"
	KeyHoursEntries          = "hoursEntries"
	KeyAppPassword           = "appPassword"

	KeyTransactionsNextID = "transactionsNextID"
	KeyHoursEntriesNextID = "hoursEntriesNextID"
)

// FinanceKeys are the keys owned by the finance ledger.
var FinanceKeys = []string{
	KeyInitialCapital,
	KeyTransactions,
	KeyRecurringTransactions,
	KeyBudgetLimit,
	KeyLastProcessedDate,
	KeyTransactionsNextID,
}

// HoursKeys are the keys owned by the hours tracker.
var HoursKeys = []string{
	KeyHoursEntries,
	KeyHoursEntriesNextID,
}
