package tui

import (
	"io"
	"time"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Clock        common.Clock
	Input        io.Reader
	Output       io.Writer
	TickInterval time.Duration
	Width        int
	AltScreen    bool
	ShowHelp     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Clock:        common.SystemClock{},
		TickInterval: time.Second,
		Width:        60,
		AltScreen:    true,
		ShowHelp:     true,
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithClock sets the clock the timer reads.
func WithClock(clock common.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithIO replaces the terminal with in and out.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
	}
}

// WithTickInterval sets how often the timer redraws.
func WithTickInterval(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.TickInterval = d
		}
	}
}

// WithWidth sets the layout width.
func WithWidth(width int) Option {
	return func(c *Config) {
		if width > 0 {
			c.Width = width
		}
	}
}

// WithAltScreen controls whether the TUI takes over the full screen.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

// WithHelp controls whether the key help is shown.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
