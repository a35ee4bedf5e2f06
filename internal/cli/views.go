package cli

import (
	"strconv"
	"strings"

	"snipman/internal/model"
	"snipman/internal/store"
)

type categoryView struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Icon   model.Icon `json:"icon"`
	Clips  int        `json:"clips"`
	Active bool       `json:"active"`
}

type categoryList []categoryView

func (l categoryList) Header() []string { return []string{"ID", "NAME", "ICON", "CLIPS", "ACTIVE"} }

func (l categoryList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		active := ""
		if c.Active {
			active = "*"
		}
		rows = append(rows, []string{c.ID, c.Name, string(c.Icon), strconv.Itoa(c.Clips), active})
	}
	return rows
}

func viewCategory(lib *store.Library, c model.Category) categoryView {
	return categoryView{
		ID:     c.ID,
		Name:   c.Name,
		Icon:   c.Icon,
		Clips:  lib.ClipCount(c.ID),
		Active: c.ID == lib.ActiveCategoryID(),
	}
}

func viewCategories(lib *store.Library) categoryList {
	cats := lib.Categories()
	out := make(categoryList, 0, len(cats))
	for _, c := range cats {
		out = append(out, viewCategory(lib, c))
	}
	return out
}

type clipList []model.Clip

func (l clipList) Header() []string { return []string{"ID", "CATEGORY", "TITLE", "CONTENT"} }

func (l clipList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		rows = append(rows, []string{c.ID, c.CategoryID, c.Title, preview(c.Content, 48)})
	}
	return rows
}

// preview returns the first non-blank line of s, cut to n runes.
func preview(s string, n int) string {
	line := ""
	for _, ln := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			line = t
			break
		}
	}
	r := []rune(line)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return line
}
