package tui

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Reload    key.Binding
	ReloadAll key.Binding
	Fail      key.Binding
	ClearErrs key.Binding
	Next      key.Binding
	Prev      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.ReloadAll, k.Fail, k.ClearErrs, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reload, k.ReloadAll, k.Fail, k.ClearErrs},
		{k.Next, k.Prev, k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload section"),
	),
	ReloadAll: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload all"),
	),
	Fail: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fail section"),
	),
	ClearErrs: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear errors"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down", "j"),
		key.WithHelp("tab", "next section"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up", "k"),
		key.WithHelp("shift+tab", "prev section"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
