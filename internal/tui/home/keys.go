package home

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings for the home feed
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Bottom    key.Binding
	ScrollTop key.Binding
	Refresh   key.Binding
	Select    key.Binding
	Filter    key.Binding
	Escape    key.Binding
	NextEvent key.Binding
	PrevEvent key.Binding
}

// DefaultKeyMap returns the default home feed key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up, pull at top to refresh"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		ScrollTop: key.NewBinding(
			key.WithKeys("t", "g", "home"),
			key.WithHelp("t", "scroll to top"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "open artwork"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		NextEvent: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next event"),
		),
		PrevEvent: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous event"),
		),
	}
}
