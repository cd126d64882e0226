package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the suggestion list and the blurred input
type keyMap struct {
	Down     key.Binding
	Up       key.Binding
	Complete key.Binding
	Select   key.Binding
	Dismiss  key.Binding
	Quit     key.Binding

	// Only active while the input is blurred
	Edit      key.Binding
	LeaveQuit key.Binding
}

var keys = keyMap{
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "prev"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "i", "/"),
		key.WithHelp("i", "edit"),
	),
	LeaveQuit: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("q", "quit"),
	),
}

// helpBindings returns the bindings relevant to the current state
func (m Model) helpBindings() []key.Binding {
	switch {
	case !m.input.Focused():
		return []key.Binding{keys.Edit, keys.LeaveQuit}
	case len(m.suggestions) > 0:
		return []key.Binding{keys.Down, keys.Up, keys.Complete, keys.Select, keys.Dismiss, keys.Quit}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
			keys.Quit,
		}
	}
}
