package tui

import "github.com/charmbracelet/bubbles/key"

type mergeKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Grab     key.Binding
	Cancel   key.Binding
	Remove   key.Binding
	Add      key.Binding
	Clear    key.Binding
	Submit   key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newMergeKeyMap() mergeKeyMap {
	return mergeKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Grab:     key.NewBinding(key.WithKeys("m", " "), key.WithHelp("m", "pick up")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel move")),
		Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Submit:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "merge")),
		Save:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k mergeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.MoveUp, k.MoveDown, k.Grab, k.Cancel, k.Submit, k.Save, k.Help, k.Quit}
}

func (k mergeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Grab, k.Cancel, k.Remove},
		{k.Add, k.Clear, k.Submit, k.Save},
		{k.Help, k.Quit},
	}
}

type unlockKeyMap struct {
	File     key.Binding
	Password key.Binding
	Clear    key.Binding
	Submit   key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newUnlockKeyMap() unlockKeyMap {
	return unlockKeyMap{
		File:     key.NewBinding(key.WithKeys("f", "a"), key.WithHelp("f", "file")),
		Password: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "password")),
		Clear:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "clear file")),
		Submit:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "unlock")),
		Save:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k unlockKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.File, k.Password, k.Clear, k.Submit, k.Save, k.Help, k.Quit}
}

func (k unlockKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.File, k.Password, k.Clear},
		{k.Submit, k.Save},
		{k.Help, k.Quit},
	}
}

// inputKeyMap is active while a text field has focus. Every other key is
// handed to the field.
type inputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func newInputKeyMap() inputKeyMap {
	return inputKeyMap{
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
