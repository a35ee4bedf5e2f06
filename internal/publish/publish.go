package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"snipman/internal/store"
)

type WriteOptions struct {
	Overwrite bool
	// CategoryID limits the export to one category page. The index is
	// always written.
	CategoryID string
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteLibrary writes index.md and categories/<id>.md under toDir.
func WriteLibrary(lib *store.Library, toDir string, opt WriteOptions) (WriteResult, error) {
	if lib == nil {
		return WriteResult{}, errors.New("missing library")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	catID := strings.TrimSpace(opt.CategoryID)
	if catID != "" {
		if _, ok := lib.FindCategory(catID); !ok {
			return WriteResult{}, errors.New("category not found: " + catID)
		}
	}

	catDir := filepath.Join(toDir, "categories")
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(lib)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written := []string{indexPath}

	all := lib.Clips()
	for _, cat := range lib.Categories() {
		if catID != "" && cat.ID != catID {
			continue
		}
		md := RenderCategoryMarkdown(cat, store.FilterClips(all, cat.ID, ""))
		p := filepath.Join(catDir, cat.ID+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
