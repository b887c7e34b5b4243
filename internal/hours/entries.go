package hours

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
)

// EditEntry moves entry id to date with new start and end wall-clock times,
// recomputing worked time and salary from the entry's own breaks. Entries
// are dated by the day they end, so an end earlier than the start means the
// session began the day before. It reports false when no entry has that id.
func (t *Tracker) EditEntry(ctx context.Context, id int64, date model.Date, start, end time.Time) (bool, error) {
	startAt, endAt := date.At(start), date.At(end)
	if endAt.Before(startAt) {
		startAt = startAt.AddDate(0, 0, -1)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return false, ErrNotLoaded
	}

	idx := slices.IndexFunc(t.entries, func(e model.HoursEntry) bool { return e.ID == id })
	if idx < 0 {
		t.logger.Debug("Edit skipped, entry not found", "id", id)
		return false, nil
	}

	entries := slices.Clone(t.entries)
	entry := entries[idx]
	// Breaks move with the entry when it changes day.
	if days := entry.Date.DaysUntil(date); days != 0 {
		shifted := make([]model.Break, len(entry.Breaks))
		for i, b := range entry.Breaks {
			shifted[i] = b.Shift(days)
		}
		entry.Breaks = shifted
	}
	entry.Date = date
	entry.StartTime = startAt
	entry.EndTime = endAt
	entry.HoursWorked = WorkedBetween(startAt, endAt, entry.Breaks)
	entry.TotalSalary = ComputeSalary(entry.HoursWorked.Decimal(), t.rate)
	entries[idx] = entry

	if err := storage.SaveJSON(ctx, t.store, storage.KeyHoursEntries, entries); err != nil {
		return false, fmt.Errorf("failed to save hours entry: %w", err)
	}
	t.entries = entries

	t.logger.Debug("Edited hours entry", "id", id, "worked", entry.HoursWorked.String())
	t.notifier.Notify(service.LevelSuccess, MsgEntryUpdated)
	return true, nil
}

// DeleteEntry removes entry id after the user confirms. The stored key is
// removed entirely once no entries remain.
func (t *Tracker) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return false, ErrNotLoaded
	}

	ok, err := t.confirmer.Confirm(ctx, fmt.Sprintf("Delete hours entry %d?", id))
	if err != nil {
		return false, fmt.Errorf("failed to confirm: %w", err)
	}
	if !ok {
		return false, nil
	}

	entries := slices.DeleteFunc(slices.Clone(t.entries), func(e model.HoursEntry) bool { return e.ID == id })
	if len(entries) == len(t.entries) {
		t.logger.Debug("Delete skipped, entry not found", "id", id)
		return false, nil
	}

	if err := t.saveEntries(ctx, entries); err != nil {
		return false, err
	}
	t.entries = entries

	t.logger.Debug("Deleted hours entry", "id", id)
	t.notifier.Notify(service.LevelInfo, MsgEntryDeleted)
	return true, nil
}

// ClearAll removes every hours entry after the user confirms. The live
// session is left alone.
func (t *Tracker) ClearAll(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return false, ErrNotLoaded
	}

	ok, err := t.confirmer.Confirm(ctx, "Clear all hours entries? This cannot be undone.")
	if err != nil {
		return false, fmt.Errorf("failed to confirm: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := t.saveEntries(ctx, nil); err != nil {
		return false, err
	}
	t.entries = nil

	t.logger.Debug("Cleared hours entries")
	t.notifier.Notify(service.LevelInfo, MsgAllDataCleared)
	return true, nil
}

func (t *Tracker) saveEntries(ctx context.Context, entries []model.HoursEntry) error {
	batch := storage.NewBatch()
	if len(entries) == 0 {
		batch.Remove(storage.KeyHoursEntries)
	} else {
		batch.Put(storage.KeyHoursEntries, entries)
	}
	if err := batch.Commit(ctx, t.store); err != nil {
		return fmt.Errorf("failed to save hours entries: %w", err)
	}
	return nil
}
