package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"loud":    slog.LevelWarn,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in, slog.LevelWarn), "ParseLevel(%q)", in)
	}
}

func TestOpenFile_AppendsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tui.log")
	log, closeFn, err := OpenFile(path, slog.LevelInfo)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("hello", "k", "v")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "msg=hello")
	assert.Contains(t, s, "k=v")
	assert.NotContains(t, s, "hidden")
}

func TestOpenFile_EmptyPathDiscards(t *testing.T) {
	log, closeFn, err := OpenFile("  ", slog.LevelDebug)
	require.NoError(t, err)
	log.Error("nowhere")
	require.NoError(t, closeFn())
}
