package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	Start     key.Binding
	Break     key.Binding
	Stop      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Break: key.NewBinding(
			key.WithKeys("b", " "),
			key.WithHelp("b/Space", "break"),
		),
		Stop: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/Enter", "stop and save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Break, k.Stop, k.Quit, k.Help}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Break, k.Stop},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// sync enables only the bindings that make sense for the session state.
func (k *KeyMap) sync(tracking bool) {
	k.Start.SetEnabled(!tracking)
	k.Break.SetEnabled(tracking)
	k.Stop.SetEnabled(tracking)
}
