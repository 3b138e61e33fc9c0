package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains the key bindings for a yes/no prompt.
type KeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		// Enter accepts the default answer, which is always no.
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "default (no)"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+d"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
