package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Add    key.Binding
	Remove key.Binding
	Inc    key.Binding
	Dec    key.Binding
	Day    key.Binding
	Tier   key.Binding
	Grade  key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "catalog/worksheet")),
		Add:    key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "add service")),
		Remove: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove line")),
		Inc:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "quantity up")),
		Dec:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "quantity down")),
		Day:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day type")),
		Tier:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "burden tier")),
		Grade:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "care grade")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Add, k.Inc, k.Dec, k.Day, k.Tier, k.Grade, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Add, k.Remove, k.Inc, k.Dec},
		{k.Day, k.Tier, k.Grade},
		{k.Save, k.Help, k.Quit},
	}
}
