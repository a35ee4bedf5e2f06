package store

import (
	"encoding/json"
	"fmt"
	"io"

	"snipman/internal/model"
)

const bundleVersion = 1

// Bundle is the export/import file format.
type Bundle struct {
	Version          int              `json:"version"`
	Categories       []model.Category `json:"categories"`
	Clips            []model.Clip     `json:"clips"`
	ActiveCategoryID string           `json:"activeCategoryId,omitempty"`
}

func NewBundle(snap Snapshot) Bundle {
	return Bundle{
		Version:          bundleVersion,
		Categories:       snap.Categories,
		Clips:            snap.Clips,
		ActiveCategoryID: snap.ActiveCategoryID,
	}
}

func WriteBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

func ReadBundle(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	if b.Version == 0 {
		b.Version = bundleVersion
	}
	if b.Version > bundleVersion {
		return Bundle{}, fmt.Errorf("read bundle: unsupported version %d", b.Version)
	}
	return b, nil
}

// ImportResult counts what Import added.
type ImportResult struct {
	Categories int `json:"categories"`
	Clips      int `json:"clips"`
	Skipped    int `json:"skipped"`
}

// Import merges a bundle into lib. Categories are matched by id: known ids are
// reused, unknown ones are created with fresh ids. Clips are always created
// fresh so an import never overwrites existing clips. Bundle clip order is
// kept (the first bundle clip ends up first). Invalid clips are skipped.
func Import(lib *Library, b Bundle) ImportResult {
	var res ImportResult
	idMap := map[string]string{}
	for _, c := range b.Categories {
		if _, ok := lib.FindCategory(c.ID); ok {
			idMap[c.ID] = c.ID
			continue
		}
		active := lib.ActiveCategoryID()
		created, err := lib.CreateCategoryWithIcon(c.Name, string(c.Icon))
		if err != nil {
			continue
		}
		lib.SetActiveCategory(active)
		idMap[c.ID] = created.ID
		res.Categories++
	}
	for i := len(b.Clips) - 1; i >= 0; i-- {
		c := b.Clips[i]
		catID, ok := idMap[c.CategoryID]
		if !ok {
			res.Skipped++
			continue
		}
		if _, err := lib.CreateClip(c.Title, c.Content, catID); err != nil {
			res.Skipped++
			continue
		}
		res.Clips++
	}
	return res
}
