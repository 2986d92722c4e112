package editor

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/piwi3910/isoforge/internal/model"
)

// ProjectWriter persists a project record. project.Store satisfies it.
type ProjectWriter interface {
	Put(ctx context.Context, p model.Project) error
}

// AutoSaver writes the latest project snapshot after a quiet period.
// Each Schedule call restarts the timer; SaveNow writes immediately.
// A failed write is reported once and retried on the next cycle.
type AutoSaver struct {
	store    ProjectWriter
	notifier Notifier
	debounce func(func())
	timeout  time.Duration

	writeMu sync.Mutex // serializes store writes
	mu      sync.Mutex
	pending *model.Project
	failing bool

	// OnSaved, when set, is called with each record that was written.
	OnSaved func(model.Project)
}

// NewAutoSaver returns a saver that waits delay after the last Schedule.
func NewAutoSaver(store ProjectWriter, delay time.Duration, n Notifier) *AutoSaver {
	if n == nil {
		n = nopNotifier{}
	}
	return &AutoSaver{
		store:    store,
		notifier: n,
		debounce: debounce.New(delay),
		timeout:  10 * time.Second,
	}
}

// Schedule queues p and (re)starts the debounce timer.
func (a *AutoSaver) Schedule(p model.Project) {
	a.mu.Lock()
	a.pending = &p
	a.mu.Unlock()
	a.debounce(a.flush)
}

// SaveNow queues p and writes it without waiting.
func (a *AutoSaver) SaveNow(p model.Project) error {
	a.mu.Lock()
	a.pending = &p
	a.mu.Unlock()
	return a.write()
}

// Pending reports whether a snapshot is waiting to be written.
func (a *AutoSaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Flush writes any pending snapshot now. It is a no-op when nothing is queued.
func (a *AutoSaver) Flush() error {
	return a.write()
}

func (a *AutoSaver) flush() {
	_ = a.write()
}

func (a *AutoSaver) write() error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	queued := a.pending
	a.mu.Unlock()
	if queued == nil {
		return nil
	}
	p := *queued
	p.Touch()

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	err := a.store.Put(ctx, p)

	a.mu.Lock()
	wasFailing := a.failing
	a.failing = err != nil
	if err == nil && a.pending == queued {
		a.pending = nil
	}
	a.mu.Unlock()

	if err != nil {
		if !wasFailing {
			a.notifier.Notify(LevelError, "Failed to save project: "+err.Error())
		}
		return err
	}
	if wasFailing {
		a.notifier.Notify(LevelInfo, "Project saved")
	}
	if a.OnSaved != nil {
		a.OnSaved(p)
	}
	return nil
}
