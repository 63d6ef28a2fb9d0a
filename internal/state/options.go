package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/focustodo/internal/models"
)

const (
	// DefaultDuration is the session length used when none is configured.
	DefaultDuration = 25 * time.Minute

	tickInterval = time.Second
)

// DefaultPresets are the session lengths offered when none are configured.
var DefaultPresets = []time.Duration{
	15 * time.Minute,
	25 * time.Minute,
	45 * time.Minute,
}

// Observer receives a copy of the state after every committed change.
type Observer func(models.Snapshot)

// SessionHook is called after a focus session has been recorded against
// task.
type SessionHook func(task models.Task, sess models.FocusSession)

// Option configures a Manager.
type Option func(*Manager)

// WithSnapshot seeds the manager with previously persisted state.
func WithSnapshot(snap models.Snapshot) Option {
	return func(m *Manager) {
		s := snap.Clone()
		m.initial = &s
	}
}

// WithTickSource replaces the real one-second ticker.
func WithTickSource(ts TickSource) Option {
	return func(m *Manager) {
		m.ticks = ts
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDFunc replaces the UUID generator used for new tasks.
func WithIDFunc(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// WithDefaultDuration sets the length the timer returns to whenever focus mode
// is entered, left or torn down.
func WithDefaultDuration(d time.Duration) Option {
	return func(m *Manager) {
		if d >= time.Second {
			m.defaultDuration = d.Truncate(time.Second)
		}
	}
}

// WithPresets sets the durations accepted by SetTimerDuration.
func WithPresets(presets ...time.Duration) Option {
	return func(m *Manager) {
		m.presets = nil

		for _, p := range presets {
			if p >= time.Second {
				m.presets = append(m.presets, p.Truncate(time.Second))
			}
		}
	}
}

// WithObserver registers fn to be called after every committed change.
func WithObserver(fn Observer) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, fn)
	}
}

// WithSessionHook registers fn to be called when a focus session completes.
func WithSessionHook(fn SessionHook) Option {
	return func(m *Manager) {
		m.hooks = append(m.hooks, fn)
	}
}

func newUUID() string {
	return uuid.NewString()
}
