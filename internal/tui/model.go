// Package tui is the interactive work-hours timer.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/hours"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the tracker TUI state.
type Model struct {
	ctx        context.Context
	now        time.Time
	lastError  error
	clock      common.Clock
	tracker    *hours.Tracker
	theme      themes.Theme
	help       help.Model
	progress   progress.Model
	config     Config
	keymap     KeyMap
	saved      []model.HoursEntry
	width      int
	saving     bool
	confirming bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, tracker *hours.Tracker, cfg Config) Model {
	keymap := DefaultKeyMap()
	keymap.sync(tracker.Session().IsTracking)

	bar := progress.New(
		progress.WithSolidFill(string(cfg.Theme.Primary)),
		progress.WithWidth(cfg.Width-4),
	)
	bar.PercentageStyle = cfg.Theme.Subtitle

	return Model{
		ctx:      ctx,
		tracker:  tracker,
		clock:    cfg.Clock,
		now:      cfg.Clock.Now(),
		theme:    cfg.Theme,
		help:     help.New(),
		progress: bar,
		config:   cfg,
		keymap:   keymap,
		width:    cfg.Width,
	}
}

// Init starts the timer.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Saved returns the entries recorded while the TUI ran.
func (m Model) Saved() []model.HoursEntry {
	return m.saved
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = min(msg.Width, m.config.Width)
		m.progress.Width = max(m.width-4, 10)
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.now = m.clock.Now()
		if m.quitting {
			return m, nil
		}
		return m, m.tick()

	case stoppedMsg:
		m.saving = false
		m.now = m.clock.Now()
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.saved = append(m.saved, msg.entry)
		m.keymap.sync(false)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	wasConfirming := m.confirming
	m.confirming = false

	switch {
	case key.Matches(msg, m.keymap.Quit):
		// A running session only lives in memory.
		if m.tracker.Session().IsTracking && !wasConfirming {
			m.confirming = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case m.saving:
		// Ignore session keys until the save finishes.

	case key.Matches(msg, m.keymap.Start):
		m.tracker.StartTracking()
		m.lastError = nil
		m.keymap.sync(true)

	case key.Matches(msg, m.keymap.Break):
		m.lastError = m.toggleBreak()

	case key.Matches(msg, m.keymap.Stop):
		m.saving = true
		return m, m.stop()
	}

	m.now = m.clock.Now()
	return m, nil
}

func (m Model) toggleBreak() error {
	if m.tracker.Session().IsOnBreak {
		return m.tracker.StopBreak()
	}
	return m.tracker.StartBreak()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.config.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) stop() tea.Cmd {
	ctx, tracker := m.ctx, m.tracker
	return func() tea.Msg {
		entry, err := tracker.StopTracking(ctx)
		return stoppedMsg{entry: entry, err: err}
	}
}

// errorText trims sentinel errors to something short enough for the status line.
func errorText(err error) string {
	switch {
	case errors.Is(err, hours.ErrNotTracking):
		return "Not tracking"
	case errors.Is(err, hours.ErrNotOnBreak):
		return "No break in progress"
	default:
		return err.Error()
	}
}
