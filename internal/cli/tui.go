package cli

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"snipman/internal/logging"
	"snipman/internal/model"
	"snipman/internal/store"
	"snipman/internal/tui"

	"github.com/spf13/cobra"
)

// tuiOptions builds the UI options with its logger. The UI never logs to
// the terminal it draws on: logs go to log_file / SNIPMAN_LOG_FILE or nowhere.
func tuiOptions(app *App) (tui.Options, func() error, error) {
	cfg := app.config()
	opts := tui.Options{Config: cfg, Log: logging.Discard()}
	path := strings.TrimSpace(envOr("SNIPMAN_LOG_FILE", cfg.LogFile))
	if path == "" {
		return opts, func() error { return nil }, nil
	}
	level := app.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	l, closeFn, err := logging.OpenFile(path, logging.ParseLevel(level, slog.LevelInfo))
	if err != nil {
		return tui.Options{}, nil, err
	}
	opts.Log = l
	return opts, closeFn, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	opts, closeLog, err := tuiOptions(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = closeLog() }()

	ctx := cmd.Context()
	kv, err := openKV(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()

	p := store.NewPersister(kv, opts.Log)
	lib, err := p.Open(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}

	debounce := time.Duration(opts.Config.AutosaveDebounceMS) * time.Millisecond
	saver := store.NewAutoSaver(p, lib, store.AutoSaverOpts{Debounce: debounce})

	opts.Library = lib
	opts.Saver = saver
	opts.Relay = app.clipboardRelay(cmd)
	opts.Log.Info("tui start", "dataDir", app.Dir, "db", kv.Path())

	runErr := tui.Run(ctx, opts)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := errors.Join(runErr, saver.Close(closeCtx)); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Open the TUI on sample data in memory (nothing is saved)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closeLog, err := tuiOptions(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeLog() }()

			kv := store.NewMemoryKV()
			p := store.NewPersister(kv, opts.Log)
			if err := p.Save(cmd.Context(), store.Snapshot{
				Categories: model.SeedCategories(),
				Clips:      model.SeedClips(),
			}); err != nil {
				return writeErr(cmd, err)
			}
			lib, err := p.Open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			opts.Library = lib
			opts.Saver = store.NewAutoSaver(p, lib, store.AutoSaverOpts{})
			opts.Relay = app.clipboardRelay(cmd)
			opts.Demo = true
			if err := tui.Run(cmd.Context(), opts); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
