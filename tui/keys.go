package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/zappabad/klinechart/tui/panels"
)

// keyMap holds the global bindings and implements help.KeyMap.
type keyMap struct {
	Focus key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Focus: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		panels.ChartKeys(),
		panels.TradeKeys(),
		k.ShortHelp(),
	}
}
