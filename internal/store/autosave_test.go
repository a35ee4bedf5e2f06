package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoSaver_WritesLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	p := NewPersister(kv, nil)
	lib := NewLibrary(nil, nil, WithIDFunc(counterIDs()))
	a := NewAutoSaver(p, lib, AutoSaverOpts{Debounce: 20 * time.Millisecond})

	for i := 0; i < 5; i++ {
		_, err := lib.CreateClip("t", "c", "cat_2")
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		snap, err := p.Load(ctx)
		return err == nil && len(snap.Clips) == 5
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, a.Close(ctx))
}

func TestAutoSaver_FlushWritesPending(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(NewMemoryKV(), nil)
	lib := NewLibrary(nil, nil)
	a := NewAutoSaver(p, lib, AutoSaverOpts{Debounce: time.Hour})

	require.True(t, lib.SetActiveCategory("cat_3"))
	require.NoError(t, a.Flush(ctx))

	snap, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cat_3", snap.ActiveCategoryID)

	require.NoError(t, a.Flush(ctx))
	require.NoError(t, a.Close(ctx))
}

func TestAutoSaver_ReportsWriteErrors(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites = errors.New("disk full")
	lib := NewLibrary(nil, nil)
	a := NewAutoSaver(NewPersister(kv, nil), lib, AutoSaverOpts{})

	require.True(t, lib.SetActiveCategory("cat_2"))

	select {
	case err := <-a.Errors():
		assert.EqualError(t, err, "disk full")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a write error")
	}
}

func TestAutoSaver_CloseStopsListening(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(NewMemoryKV(), nil)
	lib := NewLibrary(nil, nil)
	a := NewAutoSaver(p, lib, AutoSaverOpts{Debounce: time.Hour})
	require.True(t, lib.SetActiveCategory("cat_2"))
	require.NoError(t, a.Close(ctx))

	_, err := lib.CreateClip("late", "x", "cat_2")
	require.NoError(t, err)
	require.NoError(t, a.Flush(ctx))

	snap, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cat_2", snap.ActiveCategoryID)
	assert.Empty(t, snap.Clips)
}
