package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minPreviewWidth = 90
	chromeLines     = 4 // header, search, pane titles, footer
)

type paneLayout struct {
	sideW  int
	clipsW int
	prevW  int
	bodyH  int
}

func (m appModel) layout() paneLayout {
	w := m.width
	if w <= 0 {
		w = 80
	}
	h := m.height
	if h <= 0 {
		h = 24
	}
	side := w / 4
	if side < 18 {
		side = 18
	}
	if side > 32 {
		side = 32
	}
	l := paneLayout{sideW: side, bodyH: h - chromeLines}
	if l.bodyH < 1 {
		l.bodyH = 1
	}
	rest := w - side - 1
	if m.preview && w >= minPreviewWidth {
		l.prevW = rest / 2
		rest -= l.prevW + 1
	}
	l.clipsW = rest
	if l.clipsW < 4 {
		l.clipsW = 4
	}
	return l
}

func (m *appModel) resize() {
	l := m.layout()
	m.categoriesList.SetSize(l.sideW, l.bodyH)
	m.clipsList.SetSize(l.clipsW, l.bodyH)
	m.search.Width = max(10, m.width-len(m.search.Prompt)-2)
	m.help.Width = m.width
	switch m.modal {
	case modalClipForm:
		m.clipForm.setWidth(modalBodyWidth(m.width) - 2)
	case modalCategoryForm:
		m.catForm.name.Width = modalBodyWidth(m.width) - 2
	}
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	l := m.layout()

	header := m.viewHeader()
	search := fitWidth(m.search.View(), m.width)

	var body string
	switch {
	case m.modal != modalNone:
		body = lipgloss.Place(m.width, l.bodyH+1, lipgloss.Center, lipgloss.Center, m.viewModal())
	case m.help.ShowAll:
		keys := renderModalBox(m.width, "Keys", m.help.FullHelpView(m.keys.FullHelp()))
		body = lipgloss.Place(m.width, l.bodyH+1, lipgloss.Center, lipgloss.Center, keys)
	default:
		body = m.viewPanes(l)
	}
	body = normalizePane(body, m.width, l.bodyH+1)

	return strings.Join([]string{header, search, body, m.viewFooter()}, "\n")
}

func (m appModel) viewHeader() string {
	cat := m.lib.ActiveCategory()
	crumb := "Library " + glyphBreadcrumbSep() + " " + iconGlyph(cat.Icon) + " " + cat.Name
	count := fmt.Sprintf("%d clips", len(m.clipsList.Items()))
	if q := strings.TrimSpace(m.lib.SearchQuery()); q != "" {
		count = fmt.Sprintf("%d matching %q", len(m.clipsList.Items()), q)
	}
	left := lipgloss.NewStyle().Bold(true).Render("snipman") + "  " + styleChrome().Render(crumb)
	right := styleMuted().Render(count)
	if m.demo {
		right = styleMuted().Render("[demo] ") + right
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return fitWidth(left+" "+right, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) viewPanes(l paneLayout) string {
	sep := styleMuted().Render(strings.Repeat("│\n", l.bodyH+1))
	sep = strings.TrimSuffix(sep, "\n")

	side := stylePaneTitle(m.focus == focusCategories).Render("Categories") + "\n" + m.categoriesList.View()
	clipsView := m.clipsList.View()
	if len(m.clipsList.Items()) == 0 {
		clipsView = styleMuted().Render(" " + m.emptyClipsText())
	}
	clips := stylePaneTitle(m.focus != focusCategories).Render("Clips") + "\n" + clipsView

	panes := []string{
		normalizePane(side, l.sideW, l.bodyH+1),
		sep,
		normalizePane(clips, l.clipsW, l.bodyH+1),
	}
	if l.prevW > 0 {
		panes = append(panes, sep, normalizePane(m.viewPreview(l.prevW), l.prevW, l.bodyH+1))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (m appModel) emptyClipsText() string {
	if strings.TrimSpace(m.lib.SearchQuery()) != "" {
		return "No clips match the search."
	}
	return "No clips yet. Press n to add one."
}

func (m appModel) viewPreview(width int) string {
	title := stylePaneTitle(false).Render("Preview")
	c, ok := m.selectedClip()
	if !ok {
		return title
	}
	return title + "\n" + renderClipPreview(c.Content, width-2)
}

func (m appModel) viewFooter() string {
	if m.toast.text != "" {
		return fitWidth(styleToast(m.toast.kind).Render(m.toast.text), m.width)
	}
	if m.modal != modalNone {
		return ""
	}
	if m.focus == focusSearch {
		return styleMuted().Render(fitWidth("enter: done   esc: leave search", m.width))
	}
	return fitWidth(m.help.ShortHelpView(m.keys.ShortHelp()), m.width)
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalClipForm:
		title := "New clip"
		if m.clipForm.editID != "" {
			title = "Edit clip"
		}
		return renderModalBox(m.width, title, m.clipForm.view(m.width))
	case modalCategoryForm:
		title := "New category"
		if m.catForm.editID != "" {
			title = "Rename category"
		}
		return renderModalBox(m.width, title, m.catForm.view())
	case modalConfirm:
		return renderConfirmModal(m.width, m.confirm.title, m.confirm.body, "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}
