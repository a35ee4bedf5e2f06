package model

// Icon is a presentation tag for a category. It has no behavioral effect.
type Icon string

const (
	IconMail   Icon = "mail"
	IconCode   Icon = "code"
	IconUser   Icon = "user"
	IconHash   Icon = "hash"
	IconFolder Icon = "folder"
)

// KnownIcons lists the icon tags the views know how to draw.
func KnownIcons() []Icon {
	return []Icon{IconMail, IconCode, IconUser, IconHash, IconFolder}
}

// NormalizeIcon maps unknown or empty tags to IconFolder.
func NormalizeIcon(s string) Icon {
	for _, ic := range KnownIcons() {
		if string(ic) == s {
			return ic
		}
	}
	return IconFolder
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon Icon   `json:"icon"`
}

type Clip struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}
