package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"snipman/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersister_LoadEmptyUsesSeed(t *testing.T) {
	p := NewPersister(NewMemoryKV(), nil)

	snap, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SeedCategories(), snap.Categories)
	assert.Equal(t, model.SeedClips(), snap.Clips)
	assert.Empty(t, snap.ActiveCategoryID)
}

func TestPersister_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(NewMemoryKV(), nil)

	lib := NewLibrary(model.SeedCategories(), model.SeedClips(), WithIDFunc(counterIDs()))
	cat, err := lib.CreateCategory("Work")
	require.NoError(t, err)
	_, err = lib.CreateClip("first", "a", cat.ID)
	require.NoError(t, err)
	_, err = lib.CreateClip("second", "b", "cat_2")
	require.NoError(t, err)

	require.NoError(t, p.Save(ctx, lib.Snapshot()))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lib.Snapshot(), got)

	reopened, err := p.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, lib.Clips(), reopened.Clips())
	assert.Equal(t, cat.ID, reopened.ActiveCategoryID())
}

func TestPersister_MalformedValuesFallBackPerKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx,
		Entry{Key: KeyCategories, Value: `[{"id":"x","name":"X","icon":"mail"}]`},
		Entry{Key: KeyClips, Value: `{not json`},
	))
	var logs bytes.Buffer
	p := NewPersister(kv, slog.New(slog.NewTextHandler(&logs, nil)))

	snap, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{{ID: "x", Name: "X", Icon: model.IconMail}}, snap.Categories)
	assert.Equal(t, model.SeedClips(), snap.Clips)
	assert.Contains(t, logs.String(), KeyClips)

	logs.Reset()
	require.NoError(t, kv.Set(ctx, Entry{Key: KeyCategories, Value: `[]`}))
	snap, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SeedCategories(), snap.Categories)
	assert.Contains(t, logs.String(), KeyCategories)
}

func TestPersister_OpenDropsOrphansAndFixesActive(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx,
		Entry{Key: KeyCategories, Value: `[{"id":"a","name":"A","icon":"hash"}]`},
		Entry{Key: KeyClips, Value: `[{"id":"c1","categoryId":"a","title":"t","content":"x"},{"id":"c2","categoryId":"gone","title":"t","content":"x"}]`},
		Entry{Key: KeyActive, Value: "gone"},
	))

	lib, err := NewPersister(kv, nil).Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", lib.ActiveCategoryID())
	require.Len(t, lib.Clips(), 1)
	assert.Equal(t, "c1", lib.Clips()[0].ID)
}

func TestPersister_OpenDropsBlankRecordsWithWarning(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx,
		Entry{Key: KeyCategories, Value: `[{"id":"a","name":"A","icon":"hash"},{"id":"b","name":" ","icon":"mail"}]`},
		Entry{Key: KeyClips, Value: `[{"id":"c1","categoryId":"a","title":"t","content":"x"},{"id":"c2","categoryId":"a","title":"","content":"x"}]`},
	))
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	lib, err := NewPersister(kv, log).Open(ctx)
	require.NoError(t, err)
	require.Len(t, lib.Categories(), 1)
	assert.Equal(t, []string{"c1"}, clipIDs(lib.Clips()))
	assert.Contains(t, logs.String(), "dropping category with blank name")
	assert.Contains(t, logs.String(), "dropping clip with blank title or content")
}

func TestPersister_SaveReturnsWriteErrors(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites = errors.New("quota exceeded")
	p := NewPersister(kv, nil)

	err := p.Save(context.Background(), NewLibrary(nil, nil).Snapshot())
	require.EqualError(t, err, "quota exceeded")
}

func TestPersister_SaveWritesEmptyClipArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	p := NewPersister(kv, nil)

	require.NoError(t, p.Save(ctx, Snapshot{Categories: model.SeedCategories()}))
	raw, ok, err := kv.Get(ctx, KeyClips)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)

	snap, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Clips)
}
