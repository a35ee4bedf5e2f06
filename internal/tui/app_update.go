package tui

import (
	"errors"
	"fmt"

	"snipman/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case toastDoneMsg:
		if msg.seq == m.toastSeq {
			m.toast = toast{}
		}
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.log.Warn("copy failed", "clip", msg.title, "err", msg.err)
			return m, m.notify(toastError, copyErrorText(msg.err))
		}
		return m, m.notify(toastSuccess, fmt.Sprintf("Copied %q", msg.title))

	case saveErrMsg:
		m.log.Error("save failed", "err", msg.err)
		return m, tea.Batch(
			m.notify(toastError, "Save failed: "+msg.err.Error()),
			waitSaveErr(m.saveErrs),
		)

	case tea.KeyMsg:
		switch {
		case m.modal != modalNone:
			return m.updateModal(msg)
		case m.help.ShowAll:
			m.help.ShowAll = false
			return m, nil
		case m.focus == focusSearch:
			return m.updateSearch(msg)
		}
		return m.updateMain(msg)
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true
		return m, nil

	case key.Matches(msg, m.keys.SwitchFocus):
		if m.focus == focusCategories {
			m.focus = focusClips
		} else {
			m.focus = focusCategories
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.TogglePreview):
		m.preview = !m.preview
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.NewCategory):
		return m.openCategoryForm(false)

	case key.Matches(msg, m.keys.RenameCat):
		return m.openCategoryForm(true)

	case key.Matches(msg, m.keys.DeleteCat):
		return m.askDeleteCategory()

	case key.Matches(msg, m.keys.NewClip):
		return m.openClipForm(false)
	}

	if m.focus == focusCategories {
		if key.Matches(msg, m.keys.Select) {
			m.focus = focusClips
			return m, nil
		}
		var cmd tea.Cmd
		m.categoriesList, cmd = m.categoriesList.Update(msg)
		if c, ok := m.selectedCategory(); ok && c.ID != m.lib.ActiveCategoryID() {
			m.lib.SetActiveCategory(c.ID)
			m.refreshCategories()
			m.clipsList.Select(0)
			m.refreshClips("")
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Copy):
		c, ok := m.selectedClip()
		if !ok {
			return m, nil
		}
		return m, copyClipCmd(m.relay, c)

	case key.Matches(msg, m.keys.EditClip):
		return m.openClipForm(true)

	case key.Matches(msg, m.keys.DeleteClip):
		c, ok := m.selectedClip()
		if !ok {
			return m, nil
		}
		m.confirm = pendingConfirm{
			target: confirmDeleteClip,
			id:     c.ID,
			title:  "Delete clip",
			body:   fmt.Sprintf("Delete %q? This cannot be undone.", c.Title),
		}
		m.confirmFocus = confirmFocusCancel
		m.modal = modalConfirm
		return m, nil
	}

	var cmd tea.Cmd
	m.clipsList, cmd = m.clipsList.Update(msg)
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.search.Blur()
		m.focus = focusClips
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.lib.SearchQuery() {
		m.lib.SetSearchQuery(m.search.Value())
		m.clipsList.Select(0)
		m.refreshClips("")
	}
	return m, cmd
}

func (m appModel) openCategoryForm(rename bool) (tea.Model, tea.Cmd) {
	if rename {
		c := m.targetCategory()
		m.catForm = newCategoryForm(&c)
	} else {
		m.catForm = newCategoryForm(nil)
	}
	m.catForm.name.Width = modalBodyWidth(m.width) - 2
	m.modal = modalCategoryForm
	return m, m.catForm.focusField(categoryFieldName)
}

func (m appModel) openClipForm(edit bool) (tea.Model, tea.Cmd) {
	if edit {
		c, ok := m.selectedClip()
		if !ok {
			return m, nil
		}
		m.clipForm = newClipForm(m.lib.Categories(), c.CategoryID, &c)
	} else {
		m.clipForm = newClipForm(m.lib.Categories(), m.lib.ActiveCategoryID(), nil)
	}
	m.clipForm.setWidth(modalBodyWidth(m.width) - 2)
	m.modal = modalClipForm
	return m, m.clipForm.focusField(clipFieldTitle)
}

func (m appModel) askDeleteCategory() (tea.Model, tea.Cmd) {
	if len(m.lib.Categories()) <= 1 {
		return m, m.notify(toastError, "Cannot delete the last category")
	}
	c := m.targetCategory()
	n := m.lib.ClipCount(c.ID)
	body := fmt.Sprintf("Delete %q?", c.Name)
	if n > 0 {
		body = fmt.Sprintf("Delete %q and its %d clip(s)? This cannot be undone.", c.Name, n)
	}
	m.confirm = pendingConfirm{
		target: confirmDeleteCategory,
		id:     c.ID,
		title:  "Delete category",
		body:   body,
	}
	m.confirmFocus = confirmFocusCancel
	m.modal = modalConfirm
	return m, nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalClipForm:
		return m.updateClipForm(msg)
	case modalCategoryForm:
		return m.updateCategoryForm(msg)
	case modalConfirm:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m appModel) updateClipForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.clipForm
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.modal = modalNone
		return m, nil
	case key.Matches(msg, m.formKeys.Submit):
		return m.submitClipForm()
	case key.Matches(msg, m.formKeys.Next):
		return m, f.focusField(f.field + 1)
	case key.Matches(msg, m.formKeys.Prev):
		return m, f.focusField(f.field - 1)
	}
	if f.field == clipFieldCategory {
		switch {
		case key.Matches(msg, m.formKeys.Left):
			f.cycleCategory(-1)
		case key.Matches(msg, m.formKeys.Right):
			f.cycleCategory(1)
		case msg.String() == "enter":
			return m, f.focusField(clipFieldContent)
		}
		return m, nil
	}
	if f.field == clipFieldTitle && msg.String() == "enter" {
		return m, f.focusField(clipFieldCategory)
	}
	var cmd tea.Cmd
	m.clipForm, cmd = m.clipForm.update(msg)
	return m, cmd
}

func (m appModel) submitClipForm() (tea.Model, tea.Cmd) {
	f := m.clipForm
	title, content, catID := f.title.Value(), f.content.Value(), f.categoryID()

	var (
		verb = "created"
		id   string
		err  error
	)
	if f.editID != "" {
		verb = "updated"
		c, uerr := m.lib.UpdateClip(f.editID, title, content, catID)
		id, err = c.ID, uerr
	} else {
		c, cerr := m.lib.CreateClip(title, content, catID)
		id, err = c.ID, cerr
	}
	if err != nil {
		return m, m.notify(toastError, mutationErrorText(err))
	}

	m.modal = modalNone
	// Follow the clip into its category so it stays visible.
	if catID != m.lib.ActiveCategoryID() {
		m.lib.SetActiveCategory(catID)
	}
	m.refreshAll(id)
	return m, m.notify(toastSuccess, "Clip "+verb)
}

func (m appModel) updateCategoryForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.catForm
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.modal = modalNone
		return m, nil
	case key.Matches(msg, m.formKeys.Submit), msg.String() == "enter":
		return m.submitCategoryForm()
	case key.Matches(msg, m.formKeys.Next):
		return m, f.focusField(f.field + 1)
	case key.Matches(msg, m.formKeys.Prev):
		return m, f.focusField(f.field - 1)
	}
	if f.field == categoryFieldIcon {
		switch {
		case key.Matches(msg, m.formKeys.Left):
			f.cycleIcon(-1)
		case key.Matches(msg, m.formKeys.Right):
			f.cycleIcon(1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.catForm, cmd = m.catForm.update(msg)
	return m, cmd
}

func (m appModel) submitCategoryForm() (tea.Model, tea.Cmd) {
	f := m.catForm
	var (
		text string
		err  error
	)
	if f.editID != "" {
		_, err = m.lib.UpdateCategory(f.editID, f.name.Value(), string(f.icon()))
		text = "Category renamed"
	} else {
		_, err = m.lib.CreateCategoryWithIcon(f.name.Value(), string(f.icon()))
		text = "Category created"
	}
	if err != nil {
		return m, m.notify(toastError, mutationErrorText(err))
	}
	m.modal = modalNone
	m.clipsList.Select(0)
	m.refreshAll("")
	return m, m.notify(toastSuccess, text)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n", "q":
		m.modal = modalNone
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.applyConfirm()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.applyConfirm()
		}
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) applyConfirm() (tea.Model, tea.Cmd) {
	m.modal = modalNone
	p := m.confirm
	m.confirm = pendingConfirm{}

	switch p.target {
	case confirmDeleteClip:
		if !m.lib.DeleteClip(p.id) {
			m.refreshAll("")
			return m, nil
		}
		m.refreshAll("")
		return m, m.notify(toastSuccess, "Clip deleted")

	case confirmDeleteCategory:
		removed, err := m.lib.DeleteCategory(p.id)
		if err != nil {
			return m, m.notify(toastError, mutationErrorText(err))
		}
		m.clipsList.Select(0)
		m.refreshAll("")
		if removed > 0 {
			return m, m.notify(toastSuccess, fmt.Sprintf("Category deleted with %d clip(s)", removed))
		}
		return m, m.notify(toastSuccess, "Category deleted")
	}
	return m, nil
}

func mutationErrorText(err error) string {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, store.ErrLastCategory):
		return "Cannot delete the last category"
	case errors.Is(err, store.ErrNotFound):
		return "Not found (it may have been deleted)"
	default:
		return err.Error()
	}
}
