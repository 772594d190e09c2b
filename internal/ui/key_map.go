package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the console.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	search  key.Binding
	add     key.Binding
	edit    key.Binding
	delete  key.Binding
	signUp  key.Binding
	sidebar key.Binding
	logout  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search by id")),
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add product")),
		edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit product")),
		delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete product")),
		signUp:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "sign up")),
		sidebar: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "toggle sidebar")),
		logout:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "logout")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.add, k.edit, k.delete},
		{k.sidebar, k.logout, k.quit},
	}
}
