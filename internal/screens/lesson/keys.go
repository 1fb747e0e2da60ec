package lesson

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Choose   key.Binding
	Continue key.Binding
	Allow    key.Binding
	Deny     key.Binding
	Replay   key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Choose:   key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Answer")),
	Continue: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Continue")),
	Allow:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Allow")),
	Deny:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("N", "Not now")),
	Replay:   key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("R", "Replay")),
}
