package store

import (
	"strings"

	"snipman/internal/model"
)

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeCategoryCreated ChangeKind = "category.created"
	ChangeCategoryUpdated ChangeKind = "category.updated"
	ChangeCategoryDeleted ChangeKind = "category.deleted"
	ChangeClipCreated     ChangeKind = "clip.created"
	ChangeClipUpdated     ChangeKind = "clip.updated"
	ChangeClipDeleted     ChangeKind = "clip.deleted"
	ChangeActiveChanged   ChangeKind = "active.changed"
)

type Change struct {
	Kind ChangeKind
	ID   string
}

// Snapshot is a detached copy of the durable library state.
type Snapshot struct {
	Categories       []model.Category `json:"categories"`
	Clips            []model.Clip     `json:"clips"`
	ActiveCategoryID string           `json:"activeCategoryId,omitempty"`
}

// Library owns the category and clip collections, the active category and the
// search query. Every exported mutation leaves these invariants intact:
//
//   - at least one category exists
//   - every clip references an existing category
//   - the active category exists
//
// A Library is owned by a single goroutine; it does no locking and no I/O.
type Library struct {
	categories []model.Category
	clips      []model.Clip
	active     string
	query      string

	newID     IDFunc
	listeners map[int]func(Change)
	nextSub   int
}

type LibraryOption func(*Library)

// WithIDFunc overrides the identifier generator (tests use counters).
func WithIDFunc(fn IDFunc) LibraryOption {
	return func(l *Library) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithActive selects the initial active category. Unknown ids are ignored.
func WithActive(id string) LibraryOption {
	return func(l *Library) {
		if _, ok := l.FindCategory(id); ok {
			l.active = id
		}
	}
}

// NewLibrary builds a Library from loaded collections. Input is normalized so
// the invariants hold: categories with a blank name and clips with a blank
// title or content are dropped, duplicate ids keep their first occurrence and
// clips pointing at unknown categories are dropped. If no category survives,
// the seed categories are used. Names and titles are stored trimmed. The
// active category defaults to the first.
func NewLibrary(categories []model.Category, clips []model.Clip, opts ...LibraryOption) *Library {
	l := &Library{
		newID:     NewID,
		listeners: map[int]func(Change){},
	}

	seenCat := map[string]bool{}
	for _, c := range categories {
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" || c.Name == "" || seenCat[c.ID] {
			continue
		}
		seenCat[c.ID] = true
		c.Icon = model.NormalizeIcon(string(c.Icon))
		l.categories = append(l.categories, c)
	}
	if len(l.categories) == 0 {
		l.categories = model.SeedCategories()
		seenCat = map[string]bool{}
		for _, c := range l.categories {
			seenCat[c.ID] = true
		}
	}

	seenClip := map[string]bool{}
	l.clips = make([]model.Clip, 0, len(clips))
	for _, c := range clips {
		if c.ID == "" || seenClip[c.ID] || !seenCat[c.CategoryID] || !clipHasBody(c) {
			continue
		}
		c.Title = strings.TrimSpace(c.Title)
		seenClip[c.ID] = true
		l.clips = append(l.clips, c)
	}

	l.active = l.categories[0].ID
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Subscribe registers fn to be called after every successful mutation.
// The returned func removes the listener.
func (l *Library) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	id := l.nextSub
	l.nextSub++
	l.listeners[id] = fn
	return func() { delete(l.listeners, id) }
}

func (l *Library) emit(kind ChangeKind, id string) {
	ch := Change{Kind: kind, ID: id}
	for i := 0; i < l.nextSub; i++ {
		if fn, ok := l.listeners[i]; ok {
			fn(ch)
		}
	}
}

func (l *Library) Categories() []model.Category {
	return append([]model.Category(nil), l.categories...)
}

func (l *Library) Clips() []model.Clip {
	return append([]model.Clip(nil), l.clips...)
}

func (l *Library) ActiveCategoryID() string { return l.active }

func (l *Library) ActiveCategory() model.Category {
	c, _ := l.FindCategory(l.active)
	return c
}

func (l *Library) SearchQuery() string { return l.query }

func (l *Library) FindCategory(id string) (model.Category, bool) {
	if i := l.categoryIndex(id); i >= 0 {
		return l.categories[i], true
	}
	return model.Category{}, false
}

func (l *Library) FindClip(id string) (model.Clip, bool) {
	if i := l.clipIndex(id); i >= 0 {
		return l.clips[i], true
	}
	return model.Clip{}, false
}

// ClipCount returns how many clips belong to categoryID, ignoring the query.
func (l *Library) ClipCount(categoryID string) int {
	n := 0
	for _, c := range l.clips {
		if c.CategoryID == categoryID {
			n++
		}
	}
	return n
}

func (l *Library) Snapshot() Snapshot {
	return Snapshot{
		Categories:       l.Categories(),
		Clips:            l.Clips(),
		ActiveCategoryID: l.active,
	}
}

func (l *Library) categoryIndex(id string) int {
	for i := range l.categories {
		if l.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Library) clipIndex(id string) int {
	for i := range l.clips {
		if l.clips[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateCategory appends a category with the default icon and makes it active.
func (l *Library) CreateCategory(name string) (model.Category, error) {
	return l.CreateCategoryWithIcon(name, string(model.IconFolder))
}

func (l *Library) CreateCategoryWithIcon(name, icon string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, invalid("name", "category name is required")
	}
	c := model.Category{
		ID:   l.newID(categoryIDPrefix),
		Name: name,
		Icon: model.NormalizeIcon(icon),
	}
	l.categories = append(l.categories, c)
	l.active = c.ID
	l.emit(ChangeCategoryCreated, c.ID)
	return c, nil
}

// UpdateCategory replaces the name and icon of an existing category.
func (l *Library) UpdateCategory(id, name, icon string) (model.Category, error) {
	i := l.categoryIndex(id)
	if i < 0 {
		return model.Category{}, notFound("category", id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, invalid("name", "category name is required")
	}
	l.categories[i].Name = name
	l.categories[i].Icon = model.NormalizeIcon(icon)
	l.emit(ChangeCategoryUpdated, id)
	return l.categories[i], nil
}

// DeleteCategory removes the category and every clip in it. It returns the
// number of clips removed with it. The last remaining category cannot be
// deleted. When the active category goes away, the first survivor becomes
// active.
func (l *Library) DeleteCategory(id string) (int, error) {
	i := l.categoryIndex(id)
	if i < 0 {
		return 0, notFound("category", id)
	}
	if len(l.categories) <= 1 {
		return 0, ErrLastCategory
	}

	cats := make([]model.Category, 0, len(l.categories)-1)
	cats = append(cats, l.categories[:i]...)
	cats = append(cats, l.categories[i+1:]...)

	clips := make([]model.Clip, 0, len(l.clips))
	removed := 0
	for _, c := range l.clips {
		if c.CategoryID == id {
			removed++
			continue
		}
		clips = append(clips, c)
	}

	l.categories = cats
	l.clips = clips
	if l.active == id {
		l.active = l.categories[0].ID
	}
	l.emit(ChangeCategoryDeleted, id)
	return removed, nil
}

// clipHasBody reports whether a stored clip passes the same non-blank checks
// as validateClip.
func clipHasBody(c model.Clip) bool {
	return strings.TrimSpace(c.Title) != "" && strings.TrimSpace(c.Content) != ""
}

func (l *Library) validateClip(title, content, categoryID string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return "", invalid("content", "content is required")
	}
	if l.categoryIndex(categoryID) < 0 {
		return "", invalid("categoryId", "unknown category "+categoryID)
	}
	return title, nil
}

// CreateClip inserts a new clip at the front of the collection.
func (l *Library) CreateClip(title, content, categoryID string) (model.Clip, error) {
	title, err := l.validateClip(title, content, categoryID)
	if err != nil {
		return model.Clip{}, err
	}
	c := model.Clip{
		ID:         l.newID(clipIDPrefix),
		CategoryID: categoryID,
		Title:      title,
		Content:    content,
	}
	l.clips = append([]model.Clip{c}, l.clips...)
	l.emit(ChangeClipCreated, c.ID)
	return c, nil
}

// UpdateClip replaces title, content and category of a clip in place.
func (l *Library) UpdateClip(id, title, content, categoryID string) (model.Clip, error) {
	i := l.clipIndex(id)
	if i < 0 {
		return model.Clip{}, notFound("clip", id)
	}
	title, err := l.validateClip(title, content, categoryID)
	if err != nil {
		return model.Clip{}, err
	}
	l.clips[i].Title = title
	l.clips[i].Content = content
	l.clips[i].CategoryID = categoryID
	l.emit(ChangeClipUpdated, id)
	return l.clips[i], nil
}

// DeleteClip removes the clip if present and reports whether it did.
func (l *Library) DeleteClip(id string) bool {
	i := l.clipIndex(id)
	if i < 0 {
		return false
	}
	l.clips = append(l.clips[:i:i], l.clips[i+1:]...)
	l.emit(ChangeClipDeleted, id)
	return true
}

// SetActiveCategory switches the displayed category. Unknown ids are ignored.
func (l *Library) SetActiveCategory(id string) bool {
	if l.categoryIndex(id) < 0 {
		return false
	}
	if l.active == id {
		return true
	}
	l.active = id
	l.emit(ChangeActiveChanged, id)
	return true
}

func (l *Library) SetSearchQuery(q string) { l.query = q }

// VisibleClips returns the clips of the active category that match the search
// query, in collection order.
func (l *Library) VisibleClips() []model.Clip {
	return FilterClips(l.clips, l.active, l.query)
}

// FilterClips keeps clips in categoryID whose title or content contains query,
// case-insensitively. An empty categoryID matches every category.
func FilterClips(clips []model.Clip, categoryID, query string) []model.Clip {
	q := strings.ToLower(query)
	out := make([]model.Clip, 0, len(clips))
	for _, c := range clips {
		if categoryID != "" && c.CategoryID != categoryID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Content), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}
