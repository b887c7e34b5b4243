// Package themes holds the color themes of the hours tracker.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Box           lipgloss.Style
	StatusIdle    lipgloss.Style
	StatusRunning lipgloss.Style
	StatusBreak   lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#7FB069"),
	lipgloss.Color("#666666"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#FFE66D"),
	lipgloss.Color("#FF6B6B"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
)

// ByName resolves a theme name, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

func newTheme(primary, muted, success, warning, errColor lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(muted),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(10),
		Value: lipgloss.NewStyle().Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(1, 2),
		StatusIdle:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		StatusRunning: lipgloss.NewStyle().Foreground(success).Bold(true),
		StatusBreak:   lipgloss.NewStyle().Foreground(warning).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(errColor).Bold(true),
		StatusSuccess: lipgloss.NewStyle().Foreground(success),
	}
}
