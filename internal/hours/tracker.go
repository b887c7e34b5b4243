// Package hours tracks work sessions with breaks and turns them into
// salaried hours entries.
package hours

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
	"github.com/shopspring/decimal"
)

// DefaultRate is the hourly rate used when none is configured.
var DefaultRate = decimal.NewFromInt(60)

// Tracker errors.
var (
	ErrNotTracking    = errors.New("not tracking")
	ErrNotOnBreak = errors.New("no break in progress")
	ErrNotLoaded  = errors.New("hours tracker not loaded")
)

// User-facing messages emitted by the tracker.
const (
	MsgEntryAdded     = "Entry added successfully"
	MsgEntryUpdated   = "Entry updated successfully"
	MsgEntryDeleted   = "Entry deleted"
	MsgAllDataCleared = "All data cleared"
)

// Session is the in-progress tracking state. It is never persisted.
type Session struct {
	StartedAt  time.Time
	Breaks     []model.Break
	IsTracking bool
	IsOnBreak  bool
}

// Tracker owns the live session and the persisted hours entries.
type Tracker struct {
	store     service.KeyValueStore
	notifier  service.Notifier
	confirmer service.Confirmer
	clock     common.Clock
	logger    *slog.Logger
	rate      decimal.Decimal
	session   Session
	entries   []model.HoursEntry
	nextID    int64
	mu        sync.Mutex
	loaded    bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNotifier sets the collaborator that receives user-facing messages.
func WithNotifier(n service.Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

// WithConfirmer sets the collaborator asked before destructive operations.
func WithConfirmer(c service.Confirmer) Option {
	return func(t *Tracker) { t.confirmer = c }
}

// WithClock overrides the time source.
func WithClock(c common.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithRate sets the hourly rate.
func WithRate(rate decimal.Decimal) Option {
	return func(t *Tracker) { t.rate = rate }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// NewTracker creates a tracker backed by store. Call Load before using it.
func NewTracker(store service.KeyValueStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		notifier:  discardNotifier{},
		confirmer: declineConfirmer{},
		clock:     common.SystemClock{},
		logger:    slog.Default(),
		rate:      DefaultRate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the stored hours entries.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var entries []model.HoursEntry
	if _, err := storage.LoadJSON(ctx, t.store, storage.KeyHoursEntries, &entries); err != nil {
		return fmt.Errorf("failed to load hours entries: %w", err)
	}
	var storedNext int64
	if _, err := storage.LoadJSON(ctx, t.store, storage.KeyHoursEntriesNextID, &storedNext); err != nil {
		return fmt.Errorf("failed to load id counter: %w", err)
	}

	highest := int64(0)
	for _, e := range entries {
		highest = max(highest, e.ID)
	}

	t.entries = entries
	t.nextID = max(storedNext, highest+1)
	t.loaded = true

	t.logger.Debug("Loaded hours entries", "entries", len(entries), "next_id", t.nextID)
	return nil
}

// Rate returns the hourly rate used for new and edited entries.
func (t *Tracker) Rate() decimal.Decimal {
	return t.rate
}

// Entries returns a copy of all hours entries in insertion order.
func (t *Tracker) Entries() []model.HoursEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

// Session returns a copy of the live session.
func (t *Tracker) Session() Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session
	s.Breaks = slices.Clone(t.session.Breaks)
	return s
}

// StartTracking begins a new session at the current time. Any session
// already in progress is discarded.
func (t *Tracker) StartTracking() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.session = Session{
		StartedAt:  t.clock.Now(),
		IsTracking: true,
	}
	t.logger.Debug("Started tracking", "at", t.session.StartedAt)
}

// StartBreak opens a break in the running session. Starting a break while
// one is open opens another.
func (t *Tracker) StartBreak() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.session.IsTracking {
		return ErrNotTracking
	}
	t.session.Breaks = append(t.session.Breaks, model.Break{Start: t.clock.Now()})
	t.session.IsOnBreak = true
	return nil
}

// StopBreak closes the most recently opened break.
func (t *Tracker) StopBreak() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.session.IsTracking {
		return ErrNotTracking
	}
	if len(t.session.Breaks) == 0 || !t.session.Breaks[len(t.session.Breaks)-1].Open() {
		return ErrNotOnBreak
	}
	end := t.clock.Now()
	t.session.Breaks[len(t.session.Breaks)-1].End = &end
	t.session.IsOnBreak = false
	return nil
}

// Elapsed is the net worked time of the running session as of now.
func (t *Tracker) Elapsed(now time.Time) model.WorkedTime {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.session.IsTracking {
		return model.WorkedTime{}
	}
	return WorkedBetween(t.session.StartedAt, now, t.session.Breaks)
}

// StopTracking ends the session and records it as a new entry.
func (t *Tracker) StopTracking(ctx context.Context) (model.HoursEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return model.HoursEntry{}, ErrNotLoaded
	}
	if !t.session.IsTracking {
		return model.HoursEntry{}, ErrNotTracking
	}

	now := t.clock.Now()
	worked := WorkedBetween(t.session.StartedAt, now, t.session.Breaks)
	entry := model.HoursEntry{
		ID:          t.nextID,
		Date:        model.NewDate(now),
		StartTime:   t.session.StartedAt,
		EndTime:     now,
		Breaks:      slices.Clone(t.session.Breaks),
		HoursWorked: worked,
		TotalSalary: ComputeSalary(worked.Decimal(), t.rate),
	}

	entries := append(slices.Clone(t.entries), entry)
	err := storage.NewBatch().
		Put(storage.KeyHoursEntries, entries).
		Put(storage.KeyHoursEntriesNextID, t.nextID+1).
		Commit(ctx, t.store)
	if err != nil {
		return model.HoursEntry{}, fmt.Errorf("failed to save hours entry: %w", err)
	}

	t.entries = entries
	t.nextID++
	t.session = Session{}

	t.logger.Debug("Stopped tracking",
		"id", entry.ID,
		"worked", worked.String(),
		"salary", entry.TotalSalary.StringFixed(2))
	t.notifier.Notify(service.LevelSuccess, MsgEntryAdded)
	return entry, nil
}

type discardNotifier struct{}

func (discardNotifier) Notify(service.Level, string) {}

type declineConfirmer struct{}

func (declineConfirmer) Confirm(context.Context, string) (bool, error) { return false, nil }
