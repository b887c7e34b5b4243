package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/payday/internal/hours"
	"github.com/Veraticus/payday/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the timer for tracker until the user quits and returns the
// entries saved meanwhile. The tracker must already be loaded.
func Run(ctx context.Context, tracker *hours.Tracker, opts ...Option) ([]model.HoursEntry, error) {
	if tracker == nil {
		return nil, errors.New("tracker is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(newModel(ctx, tracker, cfg), programOpts...).Run()
	var saved []model.HoursEntry
	if m, ok := final.(Model); ok {
		saved = m.Saved()
	}
	if err != nil {
		if ctx.Err() != nil {
			return saved, ctx.Err()
		}
		return saved, fmt.Errorf("hours tracker failed: %w", err)
	}
	return saved, nil
}
