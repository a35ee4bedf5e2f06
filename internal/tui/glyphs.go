package tui

import (
	"strings"
	"sync"

	"snipman/internal/model"
)

// Terminals cannot change the user's font, so the UI picks between Unicode
// and ASCII glyph sets for icons and separators.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphBreadcrumbSep() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

// iconGlyph maps an icon tag to a single-cell glyph. Unknown tags render as
// the folder glyph.
func iconGlyph(icon model.Icon) string {
	ascii := glyphs() == glyphSetASCII
	switch model.NormalizeIcon(string(icon)) {
	case model.IconMail:
		if ascii {
			return "@"
		}
		return "✉"
	case model.IconCode:
		if ascii {
			return "<"
		}
		return "λ"
	case model.IconUser:
		if ascii {
			return "&"
		}
		return "♟"
	case model.IconHash:
		return "#"
	default:
		if ascii {
			return "+"
		}
		return "▪"
	}
}
