package tui

import (
	"strings"

	"snipman/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type clipFormField int

const (
	clipFieldTitle clipFormField = iota
	clipFieldCategory
	clipFieldContent
	clipFieldCount
)

type clipForm struct {
	// editID is empty when creating.
	editID string

	title      textinput.Model
	content    textarea.Model
	categories []model.Category
	catIdx     int
	field      clipFormField
}

func newClipForm(cats []model.Category, categoryID string, existing *model.Clip) clipForm {
	f := clipForm{categories: cats}

	f.title = textinput.New()
	f.title.Prompt = ""
	f.title.Placeholder = "Title"
	f.title.CharLimit = 200

	f.content = textarea.New()
	f.content.Placeholder = "Content"
	f.content.ShowLineNumbers = false
	f.content.CharLimit = 0
	f.content.SetHeight(8)

	if existing != nil {
		f.editID = existing.ID
		f.title.SetValue(existing.Title)
		f.content.SetValue(existing.Content)
		categoryID = existing.CategoryID
	}
	for i, c := range cats {
		if c.ID == categoryID {
			f.catIdx = i
			break
		}
	}
	return f
}

func (f *clipForm) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	f.title.Width = w
	f.content.SetWidth(w)
}

func (f clipForm) categoryID() string {
	if f.catIdx < 0 || f.catIdx >= len(f.categories) {
		return ""
	}
	return f.categories[f.catIdx].ID
}

func (f *clipForm) cycleCategory(delta int) {
	n := len(f.categories)
	if n == 0 {
		return
	}
	f.catIdx = ((f.catIdx+delta)%n + n) % n
}

// focusField moves input focus, blurring the previous field.
func (f *clipForm) focusField(field clipFormField) tea.Cmd {
	f.field = ((field % clipFieldCount) + clipFieldCount) % clipFieldCount
	f.title.Blur()
	f.content.Blur()
	switch f.field {
	case clipFieldTitle:
		return f.title.Focus()
	case clipFieldContent:
		return f.content.Focus()
	}
	return nil
}

func (f clipForm) update(msg tea.Msg) (clipForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.field {
	case clipFieldTitle:
		f.title, cmd = f.title.Update(msg)
	case clipFieldContent:
		f.content, cmd = f.content.Update(msg)
	}
	return f, cmd
}

func (f clipForm) view(width int) string {
	label := func(s string, on bool) string {
		st := lipgloss.NewStyle().Bold(true)
		if on {
			st = st.Foreground(colorAccent)
		} else {
			st = st.Foreground(colorChromeFg)
		}
		return st.Render(s)
	}

	picker := make([]string, 0, len(f.categories))
	for i, c := range f.categories {
		txt := iconGlyph(c.Icon) + " " + c.Name
		if i == f.catIdx {
			txt = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true).Render(" " + txt + " ")
		} else {
			txt = styleMuted().Render(" " + txt + " ")
		}
		picker = append(picker, txt)
	}
	pickerLine := lipgloss.NewStyle().Width(modalBodyWidth(width) - 2).Render(strings.Join(picker, " "))

	help := styleMuted().Render("tab: next field   ←/→: category   ctrl+s: save   esc: cancel")
	return strings.Join([]string{
		label("Title", f.field == clipFieldTitle),
		f.title.View(),
		"",
		label("Category", f.field == clipFieldCategory),
		pickerLine,
		"",
		label("Content", f.field == clipFieldContent),
		f.content.View(),
		"",
		help,
	}, "\n")
}

type categoryFormField int

const (
	categoryFieldName categoryFormField = iota
	categoryFieldIcon
	categoryFieldCount
)

type categoryForm struct {
	editID  string
	name    textinput.Model
	icons   []model.Icon
	iconIdx int
	field   categoryFormField
}

func newCategoryForm(existing *model.Category) categoryForm {
	f := categoryForm{icons: model.KnownIcons()}
	f.name = textinput.New()
	f.name.Prompt = ""
	f.name.Placeholder = "Category name"
	f.name.CharLimit = 100

	icon := model.IconFolder
	if existing != nil {
		f.editID = existing.ID
		f.name.SetValue(existing.Name)
		icon = model.NormalizeIcon(string(existing.Icon))
	}
	for i, ic := range f.icons {
		if ic == icon {
			f.iconIdx = i
		}
	}
	return f
}

func (f categoryForm) icon() model.Icon { return f.icons[f.iconIdx] }

func (f *categoryForm) cycleIcon(delta int) {
	n := len(f.icons)
	f.iconIdx = ((f.iconIdx+delta)%n + n) % n
}

func (f *categoryForm) focusField(field categoryFormField) tea.Cmd {
	f.field = ((field % categoryFieldCount) + categoryFieldCount) % categoryFieldCount
	if f.field == categoryFieldName {
		return f.name.Focus()
	}
	f.name.Blur()
	return nil
}

func (f categoryForm) update(msg tea.Msg) (categoryForm, tea.Cmd) {
	if f.field != categoryFieldName {
		return f, nil
	}
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	return f, cmd
}

func (f categoryForm) view() string {
	icons := make([]string, 0, len(f.icons))
	for i, ic := range f.icons {
		txt := " " + iconGlyph(ic) + " " + string(ic) + " "
		if i == f.iconIdx {
			txt = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true).Render(txt)
		} else {
			txt = styleMuted().Render(txt)
		}
		icons = append(icons, txt)
	}
	nameLabel := lipgloss.NewStyle().Bold(true).Foreground(colorChromeFg)
	iconLabel := nameLabel
	if f.field == categoryFieldName {
		nameLabel = nameLabel.Foreground(colorAccent)
	} else {
		iconLabel = iconLabel.Foreground(colorAccent)
	}
	return strings.Join([]string{
		nameLabel.Render("Name"),
		f.name.View(),
		"",
		iconLabel.Render("Icon"),
		strings.Join(icons, ""),
		"",
		styleMuted().Render("tab: next field   ←/→: icon   enter/ctrl+s: save   esc: cancel"),
	}, "\n")
}
