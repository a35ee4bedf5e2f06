package tui

import (
	"log/slog"
	"time"

	"snipman/internal/clipboard"
	"snipman/internal/model"
	"snipman/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	lib      *store.Library
	relay    clipboard.Relay
	log      *slog.Logger
	saveErrs <-chan error
	demo     bool

	notifyAfter time.Duration

	width  int
	height int

	focus   focusArea
	preview bool

	categoriesList list.Model
	clipsList      list.Model
	search         textinput.Model
	help           help.Model
	keys           keyMap
	formKeys       formKeys

	modal        modalKind
	clipForm     clipForm
	catForm      categoryForm
	confirm      pendingConfirm
	confirmFocus confirmModalFocus

	toast    toast
	toastSeq int
}

func newAppModel(opts Options) appModel {
	lib := opts.Library
	if lib == nil {
		lib = store.NewLibrary(model.SeedCategories(), model.SeedClips())
	}
	m := appModel{
		lib:         lib,
		relay:       opts.Relay,
		log:         logOrDiscard(opts.Log),
		demo:        opts.Demo,
		notifyAfter: time.Duration(opts.Config.NotifyDuration()) * time.Second,
		preview:     opts.Config.PreviewEnabled(),
		focus:       focusClips,
		help:        help.New(),
		keys:        defaultKeyMap(),
		formKeys:    defaultFormKeys(),
	}
	if opts.Saver != nil {
		m.saveErrs = opts.Saver.Errors()
	}

	m.categoriesList = newList("Categories", newCompactItemDelegate())
	m.clipsList = newList("Clips", newClipDelegate())

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search title or content"
	m.search.SetValue(lib.SearchQuery())

	m.refreshCategories()
	m.refreshClips("")
	return m
}

func (m appModel) Init() tea.Cmd { return waitSaveErr(m.saveErrs) }

// refreshCategories rebuilds the sidebar and puts the cursor on the active
// category.
func (m *appModel) refreshCategories() {
	active := m.lib.ActiveCategoryID()
	cats := m.lib.Categories()
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryItem{
			category: c,
			count:    m.lib.ClipCount(c.ID),
			active:   c.ID == active,
		})
	}
	m.categoriesList.SetItems(items)
	selectListItem(&m.categoriesList, active)
}

// refreshClips rebuilds the clip list from the visible clips, keeping the
// cursor on selectID, else on the previously selected clip.
func (m *appModel) refreshClips(selectID string) {
	if selectID == "" {
		if c, ok := m.selectedClip(); ok {
			selectID = c.ID
		}
	}
	visible := m.lib.VisibleClips()
	items := make([]list.Item, 0, len(visible))
	for _, c := range visible {
		items = append(items, clipItem{clip: c})
	}
	m.clipsList.SetItems(items)
	if selectID == "" || !selectListItem(&m.clipsList, selectID) {
		if m.clipsList.Index() >= len(items) {
			m.clipsList.Select(max(0, len(items)-1))
		}
	}
}

func (m *appModel) refreshAll(selectClipID string) {
	m.refreshCategories()
	m.refreshClips(selectClipID)
}

func (m appModel) selectedClip() (model.Clip, bool) {
	it, ok := m.clipsList.SelectedItem().(clipItem)
	if !ok {
		return model.Clip{}, false
	}
	return it.clip, true
}

func (m appModel) selectedCategory() (model.Category, bool) {
	it, ok := m.categoriesList.SelectedItem().(categoryItem)
	if !ok {
		return model.Category{}, false
	}
	return it.category, true
}

// targetCategory is the category acted on by rename/delete: the sidebar
// cursor when the sidebar has focus, else the active category.
func (m appModel) targetCategory() model.Category {
	if m.focus == focusCategories {
		if c, ok := m.selectedCategory(); ok {
			return c
		}
	}
	return m.lib.ActiveCategory()
}

// notify shows a toast and schedules its dismissal. Only the dismissal
// carrying the current sequence hides it.
func (m *appModel) notify(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = toast{text: text, kind: kind}
	return tea.Tick(m.notifyAfter, func(time.Time) tea.Msg { return toastDoneMsg{seq: seq} })
}
