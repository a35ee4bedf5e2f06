package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// compactItemDelegate renders one line per item (the category sidebar).
type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactItemDelegate) Height() int                             { return 1 }
func (d compactItemDelegate) Spacing() int                            { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}
	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	txt := fmt.Sprint(item)
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	}
	fmt.Fprint(w, style.Render(fitWidth(" "+txt, contentW)))
}

// clipDelegate renders a title line and a muted first line of content.
type clipDelegate struct {
	title    lipgloss.Style
	desc     lipgloss.Style
	selTitle lipgloss.Style
	selDesc  lipgloss.Style
}

func newClipDelegate() clipDelegate {
	sel := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
	return clipDelegate{
		title:    lipgloss.NewStyle().Bold(true),
		desc:     styleMuted(),
		selTitle: sel.Bold(true),
		selDesc:  sel,
	}
}

func (d clipDelegate) Height() int                             { return 2 }
func (d clipDelegate) Spacing() int                            { return 1 }
func (d clipDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d clipDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(clipItem)
	contentW := m.Width()
	if !ok || contentW < 4 {
		return
	}
	titleSt, descSt := d.title, d.desc
	if index == m.Index() {
		titleSt, descSt = d.selTitle, d.selDesc
	}
	title := titleSt.Render(fitWidth(" "+it.Title(), contentW))
	desc := descSt.Render(fitWidth("   "+it.Description(), contentW))
	fmt.Fprint(w, title+"\n"+desc)
}
