package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{"bundle", "config", "storage", "tui"}, Topics())
}

func TestGet(t *testing.T) {
	body, ok := Get(" Storage ")
	require.True(t, ok)
	assert.Contains(t, body, "sm_categories")

	for _, bad := range []string{"", "nope", "../docs", `content\tui`} {
		_, ok := Get(bad)
		assert.False(t, ok, "topic %q", bad)
	}
}
