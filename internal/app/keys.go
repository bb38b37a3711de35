package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for the notes view.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	New          key.Binding
	Edit         key.Binding
	Archive      key.Binding
	Delete       key.Binding
	Recover      key.Binding
	Search       key.Binding
	Sort         key.Binding
	AddTag       key.Binding
	NoteTags     key.Binding
	Sidebar      key.Binding
	Yank         key.Binding
	Refresh      key.Binding
	ChangePass   key.Binding
	Logout       key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Edit:       key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Archive:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive/unarchive")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Recover:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "recover")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle sort")),
		AddTag:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tags")),
		NoteTags:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "note tags")),
		Sidebar:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter by tag")),
		Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank content")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		ChangePass: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "change password")),
		Logout:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}
