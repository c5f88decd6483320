package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	CheckIn key.Binding
	Pause   key.Binding
	Add     key.Binding
	Delete  key.Binding
	Rename  key.Binding
	Expand  key.Binding
	Window  key.Binding
	Longer  key.Binding
	Shorter key.Binding
	Sound   key.Binding
	Widget  key.Binding
	Export  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "shift+tab", "k"), key.WithHelp("←/→", "select")),
		Next:    key.NewBinding(key.WithKeys("right", "tab", "j"), key.WithHelp("←/→", "select")),
		CheckIn: key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "check in")),
		Pause:   key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add clock")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Rename:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Expand:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "details")),
		Window:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history days")),
		Longer:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "interval")),
		Shorter: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("+/-", "interval")),
		Sound:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sound")),
		Widget:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "widget mode")),
		Export:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.CheckIn, k.Pause, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.CheckIn, k.Pause, k.Add, k.Delete},
		{k.Rename, k.Expand, k.Window, k.Longer, k.Sound},
		{k.Widget, k.Export, k.Help, k.Quit},
	}
}
