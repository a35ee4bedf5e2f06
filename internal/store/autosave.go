package store

import (
	"context"
	"sync"
	"time"
)

// AutoSaver writes a library snapshot after every change without blocking the
// caller. Snapshots are taken on the mutating goroutine, so the background
// writer never reads the Library itself.
type AutoSaver struct {
	p        *Persister
	debounce time.Duration
	unsub    func()

	mu      sync.Mutex
	timer   *time.Timer
	pending *Snapshot
	running bool
	closed  bool
	idle    *sync.Cond

	errs chan error
}

type AutoSaverOpts struct {
	// Debounce coalesces bursts of changes; zero writes as soon as possible.
	Debounce time.Duration
}

// NewAutoSaver subscribes to lib and starts saving its changes through p.
func NewAutoSaver(p *Persister, lib *Library, opts AutoSaverOpts) *AutoSaver {
	a := &AutoSaver{
		p:        p,
		debounce: opts.Debounce,
		errs:     make(chan error, 8),
	}
	a.idle = sync.NewCond(&a.mu)
	a.unsub = lib.Subscribe(func(Change) {
		a.Notify(lib.Snapshot())
	})
	return a
}

// Errors delivers write failures. Failures are dropped when nobody reads and
// the buffer is full.
func (a *AutoSaver) Errors() <-chan error { return a.errs }

// Notify schedules snap to be written, replacing any snapshot not yet written.
func (a *AutoSaver) Notify(snap Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending = &snap
	if a.timer == nil {
		a.timer = time.AfterFunc(a.debounce, a.onTimer)
		return
	}
	a.timer.Reset(a.debounce)
}

func (a *AutoSaver) onTimer() {
	a.mu.Lock()
	if a.running {
		// The in-flight write will reschedule when it finishes.
		a.mu.Unlock()
		return
	}
	snap := a.pending
	if snap == nil {
		a.mu.Unlock()
		return
	}
	a.pending = nil
	a.running = true
	a.mu.Unlock()

	err := a.p.Save(context.Background(), *snap)
	if err != nil {
		select {
		case a.errs <- err:
		default:
		}
	}

	a.mu.Lock()
	a.running = false
	if a.pending != nil && a.timer != nil {
		a.timer.Reset(a.debounce)
	}
	a.idle.Broadcast()
	a.mu.Unlock()
}

// Flush waits for an in-flight write and then writes any pending snapshot
// synchronously.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	for a.running {
		a.idle.Wait()
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	snap := a.pending
	if snap == nil {
		a.mu.Unlock()
		return nil
	}
	a.pending = nil
	a.running = true
	a.mu.Unlock()

	err := a.p.Save(ctx, *snap)

	a.mu.Lock()
	a.running = false
	if a.pending != nil && a.timer != nil {
		a.timer.Reset(a.debounce)
	}
	a.idle.Broadcast()
	a.mu.Unlock()
	return err
}

// Close flushes, unsubscribes and stops accepting changes.
func (a *AutoSaver) Close(ctx context.Context) error {
	if a.unsub != nil {
		a.unsub()
	}
	err := a.Flush(ctx)
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return err
}
