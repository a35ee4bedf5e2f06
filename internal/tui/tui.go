package tui

import (
	"context"
	"log/slog"
	"time"

	"snipman/internal/clipboard"
	"snipman/internal/logging"
	"snipman/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Options wires the interactive UI to a library and its collaborators.
type Options struct {
	Library *store.Library
	// Saver persists changes in the background. Nil means nothing is saved.
	Saver  *store.AutoSaver
	Relay  clipboard.Relay
	Log    *slog.Logger
	Config store.Config
	// Demo marks an in-memory session in the header.
	Demo bool
}

func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyGlyphPreference(opts.Config.Glyphs)

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	if opts.Saver != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if ferr := opts.Saver.Flush(flushCtx); ferr != nil {
			m.log.Error("final save failed", "err", ferr)
			if err == nil {
				err = ferr
			}
		}
	}
	return err
}

func logOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logging.Discard()
	}
	return l
}
