package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	SwitchFocus   key.Binding
	Search        key.Binding
	Select        key.Binding
	Copy          key.Binding
	NewClip       key.Binding
	EditClip      key.Binding
	DeleteClip    key.Binding
	NewCategory   key.Binding
	RenameCat     key.Binding
	DeleteCat     key.Binding
	TogglePreview key.Binding
	Help          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchFocus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Select:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/copy")),
		Copy:          key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		NewClip:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new clip")),
		EditClip:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		DeleteClip:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		NewCategory:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new category")),
		RenameCat:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename category")),
		DeleteCat:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete category")),
		TogglePreview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Search, k.NewClip, k.EditClip, k.DeleteClip, k.SwitchFocus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select, k.Copy, k.Search, k.SwitchFocus},
		{k.NewClip, k.EditClip, k.DeleteClip},
		{k.NewCategory, k.RenameCat, k.DeleteCat},
		{k.TogglePreview, k.Help, k.Quit},
	}
}

// formKeys are shared by the clip and category forms.
type formKeys struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
}

func defaultFormKeys() formKeys {
	return formKeys{
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
	}
}
