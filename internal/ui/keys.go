package ui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Home     key.Binding
	Patterns key.Binding
	Saved    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Complete key.Binding
	SaveTo   key.Binding
	Copy     key.Binding
	Remove   key.Binding
	Focus    key.Binding
	Theme    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Home:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Patterns: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "patterns")),
		Saved:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "saved")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "open")),
		Complete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "done")),
		SaveTo:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save to set")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Remove:   key.NewBinding(key.WithKeys("d", "delete", "backspace"), key.WithHelp("d", "remove")),
		Focus:    key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("tab", "new set")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// pageKeys narrows the help line to what the current page handles.
type pageKeys struct {
	bindings []key.Binding
}

func (p pageKeys) ShortHelp() []key.Binding { return p.bindings }

func (p pageKeys) FullHelp() [][]key.Binding { return [][]key.Binding{p.bindings} }
