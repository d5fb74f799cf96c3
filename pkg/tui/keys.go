package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	LineUp     key.Binding
	LineDown   key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding
	Select     key.Binding
	Details    key.Binding
	Refresh    key.Binding
	Increment  key.Binding
	Decrement  key.Binding
	SwitchTab  key.Binding
	AddTodo    key.Binding
	ToggleTodo key.Binding
	RemoveTodo key.Binding
	SelectTodo key.Binding
	ClearTodo  key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	LineUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	LineDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	GotoTop: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g/home", "go to start"),
	),
	GotoBottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G/end", "go to end"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Details: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "view/hide details"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Increment: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "increment"),
	),
	Decrement: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "decrement"),
	),
	SwitchTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "posts/todos"),
	),
	AddTodo: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add todo"),
	),
	ToggleTodo: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle done"),
	),
	RemoveTodo: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove"),
	),
	SelectTodo: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	ClearTodo: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear selection"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
