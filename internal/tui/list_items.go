package tui

import (
	"strconv"

	"snipman/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type categoryItem struct {
	category model.Category
	count    int
	active   bool
}

func (i categoryItem) FilterValue() string { return i.category.Name }
func (i categoryItem) Title() string {
	s := iconGlyph(i.category.Icon) + " " + i.category.Name + " (" + strconv.Itoa(i.count) + ")"
	if i.active {
		s += " " + glyphBullet()
	}
	return s
}
func (i categoryItem) Description() string { return i.category.ID }

type clipItem struct {
	clip model.Clip
}

func (i clipItem) FilterValue() string { return i.clip.Title }
func (i clipItem) Title() string       { return i.clip.Title }
func (i clipItem) Description() string { return firstLine(i.clip.Content) }

func newList(title string, delegate list.ItemDelegate) list.Model {
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	// The app renders its own header, search box and help footer.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	// Emacs-style navigation aliases.
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	return l
}

// selectListItem moves the cursor to the item matching id, reporting whether
// one was found.
func selectListItem(l *list.Model, id string) bool {
	for i, it := range l.Items() {
		switch v := it.(type) {
		case categoryItem:
			if v.category.ID == id {
				l.Select(i)
				return true
			}
		case clipItem:
			if v.clip.ID == id {
				l.Select(i)
				return true
			}
		}
	}
	return false
}
