package publish

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"snipman/internal/model"
	"snipman/internal/store"
)

// RenderCategoryMarkdown renders one category page: a heading per clip with
// its content in a fenced block.
func RenderCategoryMarkdown(cat model.Category, clips []model.Clip) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(cat.Name))
	writeLn("")
	writeLn("- ID: " + cat.ID)
	writeLn("- Icon: " + string(model.NormalizeIcon(string(cat.Icon))))
	writeLn("- Clips: " + strconv.Itoa(len(clips)))

	for _, c := range clips {
		writeLn("")
		writeLn("## " + strings.TrimSpace(c.Title))
		writeLn("")
		writeLn("<!-- " + c.ID + " -->")
		writeLn("")
		fence := Fence(c.Content)
		writeLn(fence)
		writeLn(strings.TrimRight(c.Content, "\n"))
		writeLn(fence)
	}
	return buf.String()
}

// RenderIndexMarkdown renders the library index linking every category page.
func RenderIndexMarkdown(lib *store.Library) string {
	var buf bytes.Buffer
	buf.WriteString("# Library\n\n")
	for _, c := range lib.Categories() {
		fmt.Fprintf(&buf, "- [%s](categories/%s.md) (%d)\n", strings.TrimSpace(c.Name), c.ID, lib.ClipCount(c.ID))
	}
	return buf.String()
}

// Fence returns a backtick fence longer than any backtick run in s.
func Fence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}
