package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit         key.Binding
	RowDown      key.Binding
	RowUp        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
	Search       key.Binding
	Filter       key.Binding
	ClearFilter  key.Binding
	Jump         key.Binding
	OpenDetail   key.Binding
	Report       key.Binding
	Review       key.Binding
	Collect      key.Binding
	Menu         key.Binding
	Hash         key.Binding
	OpenHelp     key.Binding
	SaveToFile   key.Binding
	ExportToFile key.Binding
	CloseDialog  key.Binding
	CloseAll     key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first row"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last row"),
	),
	ScrollLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "scroll left"),
	),
	ScrollRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "scroll right"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear filter"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to line"),
	),
	OpenDetail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open details"),
	),
	Report: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "report"),
	),
	Review: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "edit review"),
	),
	Collect: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add to collection"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "resource menu"),
	),
	Hash: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "model hash"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	SaveToFile: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save snapshot"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export csv"),
	),
	CloseDialog: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close top dialog"),
	),
	CloseAll: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl+w", "close all dialogs"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.RowDown,
		k.RowUp,
		k.PageDown,
		k.PageUp,
		k.Search,
		k.Filter,
		k.ClearFilter,
		k.Jump,
		k.OpenDetail,
		k.Report,
		k.Review,
		k.Collect,
		k.Menu,
		k.Hash,
		k.SaveToFile,
		k.ExportToFile,
		k.CloseDialog,
		k.CloseAll,
	}
}
