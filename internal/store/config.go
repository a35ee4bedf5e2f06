package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Config holds user preferences stored in <configdir>/config.json.
type Config struct {
	// DataDir overrides where snipman.sqlite lives.
	DataDir  string `json:"data_dir,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
	// LogFile receives TUI logs; the TUI never logs to the terminal it draws on.
	LogFile string `json:"log_file,omitempty"`

	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// NotifySeconds is how long notifications stay visible. Zero means default.
	NotifySeconds int `json:"notify_seconds,omitempty"`
	// Preview shows the content preview pane at startup.
	Preview *bool `json:"preview,omitempty"`
	// AutosaveDebounceMS coalesces bursts of edits before writing.
	AutosaveDebounceMS int `json:"autosave_debounce_ms,omitempty"`
}

const DefaultNotifySeconds = 3

func (c Config) NotifyDuration() int {
	if c.NotifySeconds <= 0 {
		return DefaultNotifySeconds
	}
	return c.NotifySeconds
}

func (c Config) PreviewEnabled() bool {
	return c.Preview == nil || *c.Preview
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.snipman).
	if v := strings.TrimSpace(os.Getenv("SNIPMAN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".snipman"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultDataDir returns the config data_dir, or <configdir>/data.
func DefaultDataDir(cfg *Config) (string, error) {
	if cfg != nil && strings.TrimSpace(cfg.DataDir) != "" {
		return filepath.Clean(strings.TrimSpace(cfg.DataDir)), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ConfigKeys lists the keys accepted by SetConfigValue.
func ConfigKeys() []string {
	keys := []string{"data_dir", "log_level", "log_file", "glyphs", "notify_seconds", "preview", "autosave_debounce_ms"}
	sort.Strings(keys)
	return keys
}

// SetConfigValue parses and assigns one config key from its string form.
func SetConfigValue(cfg *Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "data_dir":
		cfg.DataDir = value
	case "log_level":
		switch strings.ToLower(value) {
		case "", "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(value)
		default:
			return invalid(key, "expected debug|info|warn|error")
		}
	case "log_file":
		cfg.LogFile = value
	case "glyphs":
		switch strings.ToLower(value) {
		case "", "unicode", "ascii":
			cfg.Glyphs = strings.ToLower(value)
		default:
			return invalid(key, "expected unicode|ascii")
		}
	case "notify_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return invalid(key, "expected a non-negative integer")
		}
		cfg.NotifySeconds = n
	case "preview":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(key, "expected true|false")
		}
		cfg.Preview = &b
	case "autosave_debounce_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return invalid(key, "expected a non-negative integer")
		}
		cfg.AutosaveDebounceMS = n
	default:
		return invalid("key", "unknown config key "+strconv.Quote(key))
	}
	return nil
}
