package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"snipman/internal/model"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Key     string           `json:"key,omitempty"`
	ID      string           `json:"id,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

func (r *DoctorReport) add(level DoctorIssueLevel, code, msg, key, id string) {
	r.Issues = append(r.Issues, DoctorIssue{Level: level, Code: code, Message: msg, Key: key, ID: id})
}

// Doctor inspects the raw stored values without normalizing them, so it sees
// exactly what Load would have to repair.
func Doctor(ctx context.Context, kv KV) (DoctorReport, error) {
	r := DoctorReport{Issues: []DoctorIssue{}}

	var cats []model.Category
	catsOK := false
	raw, ok, err := kv.Get(ctx, KeyCategories)
	if err != nil {
		return r, err
	}
	switch {
	case !ok:
		r.add(DoctorIssueLevelWarn, "categories_missing", "no stored categories; defaults will be used", KeyCategories, "")
	default:
		if err := json.Unmarshal([]byte(raw), &cats); err != nil {
			r.add(DoctorIssueLevelError, "categories_invalid_json", err.Error(), KeyCategories, "")
		} else if len(cats) == 0 {
			r.add(DoctorIssueLevelError, "categories_empty", "stored category list is empty", KeyCategories, "")
		} else {
			catsOK = true
		}
	}

	known := map[string]bool{}
	for _, c := range cats {
		if strings.TrimSpace(c.ID) == "" {
			r.add(DoctorIssueLevelError, "category_missing_id", "category without id: "+c.Name, KeyCategories, "")
			continue
		}
		if known[c.ID] {
			r.add(DoctorIssueLevelError, "category_duplicate_id", "duplicate category id", KeyCategories, c.ID)
		}
		known[c.ID] = true
		if strings.TrimSpace(c.Name) == "" {
			r.add(DoctorIssueLevelWarn, "category_blank_name", "category has a blank name", KeyCategories, c.ID)
		}
		if string(model.NormalizeIcon(string(c.Icon))) != string(c.Icon) {
			r.add(DoctorIssueLevelWarn, "category_unknown_icon", "unknown icon "+string(c.Icon)+" (shown as folder)", KeyCategories, c.ID)
		}
	}

	raw, ok, err = kv.Get(ctx, KeyClips)
	if err != nil {
		return r, err
	}
	var clips []model.Clip
	if !ok {
		r.add(DoctorIssueLevelWarn, "clips_missing", "no stored clips; defaults will be used", KeyClips, "")
	} else if err := json.Unmarshal([]byte(raw), &clips); err != nil {
		r.add(DoctorIssueLevelError, "clips_invalid_json", err.Error(), KeyClips, "")
	}

	seen := map[string]bool{}
	for _, c := range clips {
		if strings.TrimSpace(c.ID) == "" {
			r.add(DoctorIssueLevelError, "clip_missing_id", "clip without id: "+c.Title, KeyClips, "")
			continue
		}
		if seen[c.ID] {
			r.add(DoctorIssueLevelError, "clip_duplicate_id", "duplicate clip id", KeyClips, c.ID)
		}
		seen[c.ID] = true
		if catsOK && !known[c.CategoryID] {
			r.add(DoctorIssueLevelError, "clip_orphan", "clip references missing category "+c.CategoryID, KeyClips, c.ID)
		}
		if strings.TrimSpace(c.Title) == "" {
			r.add(DoctorIssueLevelWarn, "clip_blank_title", "clip has a blank title", KeyClips, c.ID)
		}
		if strings.TrimSpace(c.Content) == "" {
			r.add(DoctorIssueLevelWarn, "clip_blank_content", "clip has blank content", KeyClips, c.ID)
		}
	}

	raw, ok, err = kv.Get(ctx, KeyActive)
	if err != nil {
		return r, err
	}
	if ok && catsOK && strings.TrimSpace(raw) != "" && !known[strings.TrimSpace(raw)] {
		r.add(DoctorIssueLevelWarn, "active_dangling", "active category does not exist; first category will be used", KeyActive, strings.TrimSpace(raw))
	}

	return r, nil
}
