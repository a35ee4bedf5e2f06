package cli

import (
	"context"
	"errors"

	"snipman/internal/store"
)

// session is one command's view of the store: the KV it reads, the persister
// and a library loaded from it.
type session struct {
	dir string
	kv  *store.SQLiteKV
	p   *store.Persister
	lib *store.Library
}

func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	cfg := app.config()
	d, err := store.DefaultDataDir(&cfg)
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

// openKV opens the data dir's SQLite file without loading the library.
func openKV(ctx context.Context, app *App) (*store.SQLiteKV, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, err
	}
	return store.OpenSQLiteKV(ctx, dir)
}

func openSession(ctx context.Context, app *App) (*session, error) {
	kv, err := openKV(ctx, app)
	if err != nil {
		return nil, err
	}
	p := store.NewPersister(kv, app.logger())
	lib, err := p.Open(ctx)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return &session{dir: app.Dir, kv: kv, p: p, lib: lib}, nil
}

// save writes the library back in one transaction.
func (s *session) save(ctx context.Context) error {
	return s.p.Save(ctx, s.lib.Snapshot())
}

func (s *session) Close() error {
	if s == nil || s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

// withSession opens a session, runs fn and closes it. When fn mutates, the
// library is saved before closing.
func withSession(ctx context.Context, app *App, mutate bool, fn func(s *session) error) (err error) {
	s, err := openSession(ctx, app)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	if err := fn(s); err != nil {
		return err
	}
	if mutate {
		return s.save(ctx)
	}
	return nil
}
