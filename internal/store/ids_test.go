package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_PrefixAndUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID(clipIDPrefix)
		require.True(t, strings.HasPrefix(id, "clip_"), "id %q", id)
		assert.Len(t, strings.TrimPrefix(id, "clip_"), 20)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
