package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SaveLoadAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SNIPMAN_CONFIG_DIR", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultNotifySeconds, cfg.NotifyDuration())
	assert.True(t, cfg.PreviewEnabled())

	dataDir, err := DefaultDataDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), dataDir)

	require.NoError(t, SetConfigValue(cfg, "notify_seconds", "5"))
	require.NoError(t, SetConfigValue(cfg, "preview", "false"))
	require.NoError(t, SetConfigValue(cfg, "glyphs", "ASCII"))
	require.NoError(t, SetConfigValue(cfg, "data_dir", "/tmp/snips"))
	require.NoError(t, SaveConfig(cfg))

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, got.NotifyDuration())
	assert.False(t, got.PreviewEnabled())
	assert.Equal(t, "ascii", got.Glyphs)
	dataDir, err = DefaultDataDir(got)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/snips", dataDir)
}

func TestSetConfigValue_Rejects(t *testing.T) {
	cfg := &Config{}
	require.ErrorIs(t, SetConfigValue(cfg, "notify_seconds", "-1"), ErrValidation)
	require.ErrorIs(t, SetConfigValue(cfg, "glyphs", "emoji"), ErrValidation)
	require.ErrorIs(t, SetConfigValue(cfg, "log_level", "loud"), ErrValidation)
	require.ErrorIs(t, SetConfigValue(cfg, "nope", "1"), ErrValidation)
}
