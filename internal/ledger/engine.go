// Package ledger implements the finance side of payday: transactions,
// recurring templates, balance, budget checks and monthly summaries.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
	"github.com/shopspring/decimal"
)

// Defaults applied when nothing has been stored yet.
var (
	DefaultBudgetLimit     = decimal.NewFromInt(1000)
	DefaultWarningHeadroom = decimal.NewFromInt(250)
)

// ErrNotLoaded is returned when a mutation runs before Load.
var ErrNotLoaded = errors.New("ledger not loaded")

// Engine owns the transaction set, the recurring templates and the budget
// settings, mirroring each of them into the key-value store on every change.
type Engine struct {
	store           service.KeyValueStore
	notifier        service.Notifier
	confirmer       service.Confirmer
	clock           common.Clock
	logger          *slog.Logger
	lastProcessed   *model.Date
	defaultLimit    decimal.Decimal
	warningHeadroom decimal.Decimal
	budget          model.BudgetState
	transactions    []model.Transaction
	templates       []model.Transaction
	nextID          int64
	mu              sync.Mutex
	loaded          bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the collaborator that receives user-facing messages.
func WithNotifier(n service.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithConfirmer sets the collaborator asked before destructive operations.
func WithConfirmer(c service.Confirmer) Option {
	return func(e *Engine) { e.confirmer = c }
}

// WithClock overrides the time source.
func WithClock(c common.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDefaultBudgetLimit sets the limit used when none is stored.
func WithDefaultBudgetLimit(limit decimal.Decimal) Option {
	return func(e *Engine) { e.defaultLimit = limit }
}

// WithWarningHeadroom sets how close to the monthly limit a warning fires.
func WithWarningHeadroom(headroom decimal.Decimal) Option {
	return func(e *Engine) { e.warningHeadroom = headroom }
}

// NewEngine creates an engine backed by store. Call Load before using it.
func NewEngine(store service.KeyValueStore, opts ...Option) *Engine {
	e := &Engine{
		store:           store,
		notifier:        discardNotifier{},
		confirmer:       declineConfirmer{},
		clock:           common.SystemClock{},
		logger:          slog.Default(),
		defaultLimit:    DefaultBudgetLimit,
		warningHeadroom: DefaultWarningHeadroom,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.budget = model.BudgetState{BudgetLimit: e.defaultLimit}
	return e
}

// Load reads every finance key from the store, replacing in-memory state.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var transactions, templates []model.Transaction
	if _, err := storage.LoadJSON(ctx, e.store, storage.KeyTransactions, &transactions); err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if _, err := storage.LoadJSON(ctx, e.store, storage.KeyRecurringTransactions, &templates); err != nil {
		return fmt.Errorf("failed to load recurring transactions: %w", err)
	}

	budget := model.BudgetState{BudgetLimit: e.defaultLimit}
	if _, err := storage.LoadJSON(ctx, e.store, storage.KeyInitialCapital, &budget.InitialCapital); err != nil {
		return fmt.Errorf("failed to load initial capital: %w", err)
	}
	if _, err := storage.LoadJSON(ctx, e.store, storage.KeyBudgetLimit, &budget.BudgetLimit); err != nil {
		return fmt.Errorf("failed to load budget limit: %w", err)
	}

	var marker model.Date
	found, err := storage.LoadJSON(ctx, e.store, storage.KeyLastProcessedDate, &marker)
	if err != nil {
		return fmt.Errorf("failed to load last processed date: %w", err)
	}
	e.lastProcessed = nil
	if found && !marker.IsZero() {
		e.lastProcessed = &marker
	}

	var storedNext int64
	if _, err := storage.LoadJSON(ctx, e.store, storage.KeyTransactionsNextID, &storedNext); err != nil {
		return fmt.Errorf("failed to load id counter: %w", err)
	}

	e.transactions = transactions
	e.templates = templates
	e.budget = budget
	e.nextID = max(storedNext, maxID(transactions)+1, maxID(templates)+1)
	e.loaded = true

	e.logger.Debug("Loaded ledger",
		"transactions", len(transactions),
		"templates", len(templates),
		"next_id", e.nextID)

	return nil
}

// Transactions returns a copy of all transactions in insertion order.
func (e *Engine) Transactions() []model.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.transactions)
}

// Templates returns a copy of the recurring templates.
func (e *Engine) Templates() []model.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.templates)
}

// Budget returns the current finance settings.
func (e *Engine) Budget() model.BudgetState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.budget
}

// Get returns the transaction with id.
func (e *Engine) Get(id int64) (model.Transaction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := indexOf(e.transactions, id)
	if idx < 0 {
		return model.Transaction{}, false
	}
	return e.transactions[idx], true
}

func (e *Engine) requireLoaded() error {
	if !e.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (e *Engine) confirm(ctx context.Context, prompt string) (bool, error) {
	ok, err := e.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("failed to confirm: %w", err)
	}
	return ok, nil
}

func maxID(transactions []model.Transaction) int64 {
	var highest int64
	for _, tx := range transactions {
		highest = max(highest, tx.ID)
	}
	return highest
}

func indexOf(transactions []model.Transaction, id int64) int {
	return slices.IndexFunc(transactions, func(tx model.Transaction) bool {
		return tx.ID == id
	})
}

type discardNotifier struct{}

func (discardNotifier) Notify(service.Level, string) {}

type declineConfirmer struct{}

func (declineConfirmer) Confirm(context.Context, string) (bool, error) { return false, nil }
