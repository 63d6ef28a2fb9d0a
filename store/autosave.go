package store

import (
	"log/slog"
	"sync"

	"github.com/ayoisaiah/focustodo/internal/models"
)

// Autosaver writes snapshots to a DB in the background. Only the newest
// snapshot is kept, so a slow disk never holds up the caller and an older
// snapshot never overwrites a newer one.
type Autosaver struct {
	db      DB
	latest  *models.Snapshot
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	saved   uint64
	mu      sync.Mutex
	writeMu sync.Mutex
	once    sync.Once
}

// NewAutosaver starts the background writer for db.
func NewAutosaver(db DB) *Autosaver {
	a := &Autosaver{
		db:      db,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go a.run()

	return a
}

// Observe queues snap for writing and can be used directly as a
// state.Observer. It never blocks on I/O while the saver is running. Once
// Close has been called, snap is written before Observe returns.
func (a *Autosaver) Observe(snap models.Snapshot) {
	a.mu.Lock()
	if a.latest == nil || snap.Version > a.latest.Version {
		a.latest = &snap
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		<-a.stopped
		a.flush()

		return
	default:
	}

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Autosaver) run() {
	defer close(a.stopped)

	for {
		select {
		case <-a.wake:
			a.flush()
		case <-a.done:
			a.flush()
			return
		}
	}
}

// flush writes the pending snapshot, if it is newer than the last one
// written. Failures are logged and otherwise ignored: the in-memory state
// stays authoritative.
func (a *Autosaver) flush() {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	snap := a.latest
	a.latest = nil
	a.mu.Unlock()

	if snap == nil || (a.saved != 0 && snap.Version <= a.saved) {
		return
	}

	err := SaveSnapshot(a.db, *snap)
	if err != nil {
		slog.Error(
			"unable to persist state",
			slog.Uint64("version", snap.Version),
			slog.Any("error", err),
		)

		return
	}

	a.saved = snap.Version

	slog.Debug("state persisted", slog.Uint64("version", snap.Version))
}

// Close writes any pending snapshot and stops the background writer. Later
// calls to Observe write synchronously. It does not close the underlying DB.
func (a *Autosaver) Close() {
	a.once.Do(func() {
		close(a.done)
	})

	<-a.stopped
}
