package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"snipman/internal/model"
)

const (
	KeyCategories = "sm_categories"
	KeyClips      = "sm_clips"
	KeyActive     = "sm_active"
)

var errEmptyCategories = errors.New("no categories")

// Persister reads and writes library snapshots through a KV.
type Persister struct {
	kv  KV
	log *slog.Logger
}

func NewPersister(kv KV, log *slog.Logger) *Persister {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Persister{kv: kv, log: log}
}

// Load reads the stored collections. A missing key yields the seed data for
// that collection; a malformed value is logged and also yields the seed data.
// Only storage read failures are returned as errors.
func (p *Persister) Load(ctx context.Context) (Snapshot, error) {
	out := Snapshot{
		Categories: model.SeedCategories(),
		Clips:      model.SeedClips(),
	}

	if raw, ok, err := p.kv.Get(ctx, KeyCategories); err != nil {
		return Snapshot{}, err
	} else if ok {
		cats, err := DecodeCategories(raw)
		if err != nil {
			p.log.Warn("stored categories unreadable; using defaults", "key", KeyCategories, "err", err)
		} else {
			out.Categories = cats
		}
	}

	if raw, ok, err := p.kv.Get(ctx, KeyClips); err != nil {
		return Snapshot{}, err
	} else if ok {
		clips, err := DecodeClips(raw)
		if err != nil {
			p.log.Warn("stored clips unreadable; using defaults", "key", KeyClips, "err", err)
		} else {
			out.Clips = clips
		}
	}

	if raw, ok, err := p.kv.Get(ctx, KeyActive); err != nil {
		return Snapshot{}, err
	} else if ok {
		out.ActiveCategoryID = strings.TrimSpace(raw)
	}

	return out, nil
}

// Open loads a snapshot and builds a Library from it. Clips that reference
// missing categories are logged and dropped.
func (p *Persister) Open(ctx context.Context, opts ...LibraryOption) (*Library, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	known := map[string]bool{}
	for _, c := range snap.Categories {
		if strings.TrimSpace(c.Name) == "" {
			p.log.Warn("dropping category with blank name", "category", c.ID)
			continue
		}
		known[c.ID] = true
	}
	for _, c := range snap.Clips {
		switch {
		case !known[c.CategoryID]:
			p.log.Warn("dropping clip with unknown category", "clip", c.ID, "categoryId", c.CategoryID)
		case !clipHasBody(c):
			p.log.Warn("dropping clip with blank title or content", "clip", c.ID)
		}
	}
	opts = append([]LibraryOption{WithActive(snap.ActiveCategoryID)}, opts...)
	return NewLibrary(snap.Categories, snap.Clips, opts...), nil
}

// Save overwrites every stored key with the snapshot contents in one write.
func (p *Persister) Save(ctx context.Context, snap Snapshot) error {
	cats := snap.Categories
	if cats == nil {
		cats = []model.Category{}
	}
	clips := snap.Clips
	if clips == nil {
		clips = []model.Clip{}
	}
	catsJSON, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	clipsJSON, err := json.Marshal(clips)
	if err != nil {
		return fmt.Errorf("encode clips: %w", err)
	}
	return p.kv.Set(ctx,
		Entry{Key: KeyCategories, Value: string(catsJSON)},
		Entry{Key: KeyClips, Value: string(clipsJSON)},
		Entry{Key: KeyActive, Value: snap.ActiveCategoryID},
	)
}

// DecodeCategories parses a stored category array. An empty array is
// rejected since the library always holds at least one category.
func DecodeCategories(raw string) ([]model.Category, error) {
	var cats []model.Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, errEmptyCategories
	}
	return cats, nil
}

func DecodeClips(raw string) ([]model.Clip, error) {
	var clips []model.Clip
	if err := json.Unmarshal([]byte(raw), &clips); err != nil {
		return nil, err
	}
	if clips == nil {
		clips = []model.Clip{}
	}
	return clips, nil
}
