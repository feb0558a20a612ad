package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the notification inbox.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Notification actions
	Acknowledge key.Binding
	Snooze      key.Binding
	Dismiss     key.Binding

	// Quit
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Acknowledge: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "mark done"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snooze 10m"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
