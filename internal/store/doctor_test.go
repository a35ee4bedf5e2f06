package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCodes(r DoctorReport) []string {
	out := make([]string, 0, len(r.Issues))
	for _, it := range r.Issues {
		out = append(out, it.Code)
	}
	return out
}

func TestDoctor_EmptyStoreOnlyWarns(t *testing.T) {
	r, err := Doctor(context.Background(), NewMemoryKV())
	require.NoError(t, err)
	assert.False(t, r.HasErrors())
	assert.ElementsMatch(t, []string{"categories_missing", "clips_missing"}, issueCodes(r))
}

func TestDoctor_CleanSaveHasNoIssues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, NewPersister(kv, nil).Save(ctx, NewLibrary(nil, nil).Snapshot()))

	r, err := Doctor(ctx, kv)
	require.NoError(t, err)
	assert.Empty(t, r.Issues)
}

func TestDoctor_ReportsInvariantViolations(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx,
		Entry{Key: KeyCategories, Value: `[{"id":"a","name":"A","icon":"mail"},{"id":"a","name":"","icon":"rocket"}]`},
		Entry{Key: KeyClips, Value: `[{"id":"c1","categoryId":"a","title":"t","content":"x"},{"id":"c1","categoryId":"b","title":" ","content":""}]`},
		Entry{Key: KeyActive, Value: "zzz"},
	))

	r, err := Doctor(ctx, kv)
	require.NoError(t, err)
	assert.True(t, r.HasErrors())
	assert.ElementsMatch(t, []string{
		"category_duplicate_id",
		"category_blank_name",
		"category_unknown_icon",
		"clip_duplicate_id",
		"clip_orphan",
		"clip_blank_title",
		"clip_blank_content",
		"active_dangling",
	}, issueCodes(r))
}

func TestDoctor_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx,
		Entry{Key: KeyCategories, Value: `[]`},
		Entry{Key: KeyClips, Value: `nope`},
	))

	r, err := Doctor(ctx, kv)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"categories_empty", "clips_invalid_json"}, issueCodes(r))
}
