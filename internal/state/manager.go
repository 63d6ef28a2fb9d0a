// Package state owns the task list, focus mode and the focus countdown. All
// mutations go through a Manager, which guarantees that at most one tick
// source is alive at any time.
package state

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ayoisaiah/focustodo/internal/models"
)

// source is the manager's record of one tick source. Ticks carry the record
// that produced them so that callbacks from a cancelled source can be told
// apart from the live one.
type source struct {
	handle Handle
}

func (s *source) stop() {
	if s.handle != nil {
		s.handle.Stop()
	}
}

type sessionEvent struct {
	task models.Task
	sess models.FocusSession
}

type subscriber struct {
	id int
	fn Observer
}

// Manager is the single owner of the task and timer state.
type Manager struct {
	ticks           TickSource
	now             func() time.Time
	newID           func() string
	initial         *models.Snapshot
	active          *source
	current         string
	presets         []time.Duration
	observers       []Observer
	hooks           []SessionHook
	subscribers     []subscriber
	pending         []sessionEvent
	todos           []models.Task
	timer           models.Timer
	defaultDuration time.Duration
	version         uint64
	nextSubID       int
	mu              sync.Mutex
	subMu           sync.Mutex
	focusMode       bool
}

// New creates a manager. Without WithSnapshot it starts empty and idle.
func New(opts ...Option) *Manager {
	m := &Manager{
		ticks:           RealTicks{},
		now:             time.Now,
		newID:           newUUID,
		defaultDuration: DefaultDuration,
		presets:         slices.Clone(DefaultPresets),
	}

	for _, opt := range opts {
		opt(m)
	}

	if len(m.presets) > 0 && !slices.Contains(m.presets, m.defaultDuration) {
		m.presets = append(m.presets, m.defaultDuration)
		slices.Sort(m.presets)
	}

	snap := models.NewSnapshot(m.defaultDuration)
	if m.initial != nil {
		snap = *m.initial
		m.initial = nil
	}

	m.load(snap)

	return m
}

// load installs snap as the current state, repairing anything that cannot be
// true of a freshly started process.
func (m *Manager) load(snap models.Snapshot) {
	m.todos = make([]models.Task, 0, len(snap.Todos))
	for i := range snap.Todos {
		m.todos = append(m.todos, snap.Todos[i].Clone())
	}

	m.focusMode = snap.FocusMode
	m.current = snap.CurrentTodo
	m.timer = snap.Timer

	// no tick source survives a restart
	m.timer.IsRunning = false

	if m.timer.Duration <= 0 {
		m.timer = models.NewTimer(m.defaultDuration)
	}

	m.timer.TimeLeft = min(max(m.timer.TimeLeft, 0), m.timer.Duration)

	if !m.focusMode || m.indexLocked(m.current) < 0 {
		m.focusMode = false
		m.current = ""
		m.timer = models.NewTimer(m.defaultDuration)
	}
}

// update runs fn under the lock. When fn reports a change, the new state is
// published to observers once the lock has been released.
func (m *Manager) update(fn func() bool) bool {
	m.mu.Lock()

	changed := fn()

	var snap models.Snapshot

	if changed {
		m.version++
		snap = m.snapshotLocked()
	}

	events := m.pending
	m.pending = nil

	m.mu.Unlock()

	if changed {
		m.notify(snap)
	}

	for _, ev := range events {
		for _, hook := range m.hooks {
			hook(ev.task, ev.sess)
		}
	}

	return changed
}

func (m *Manager) notify(snap models.Snapshot) {
	for _, fn := range m.observers {
		fn(snap.Clone())
	}

	m.subMu.Lock()
	subs := slices.Clone(m.subscribers)
	m.subMu.Unlock()

	for _, s := range subs {
		s.fn(snap.Clone())
	}
}

// Observe registers fn to receive the state after every committed change. The
// returned function removes the registration.
func (m *Manager) Observe(fn Observer) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	m.nextSubID++
	id := m.nextSubID

	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()

		m.subscribers = slices.DeleteFunc(m.subscribers, func(s subscriber) bool {
			return s.id == id
		})
	}
}

func (m *Manager) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Todos:       m.todos,
		FocusMode:   m.focusMode,
		CurrentTodo: m.current,
		Timer:       m.timer,
		Version:     m.version,
	}

	return snap.Clone()
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshotLocked()
}

// Task returns a copy of the task with the given id.
func (m *Manager) Task(id string) (models.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return models.Task{}, false
	}

	return m.todos[i].Clone(), true
}

// CurrentTask returns a copy of the focused task.
func (m *Manager) CurrentTask() (models.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.focusMode {
		return models.Task{}, false
	}

	i := m.indexLocked(m.current)
	if i < 0 {
		return models.Task{}, false
	}

	return m.todos[i].Clone(), true
}

// Presets returns the durations accepted by SetTimerDuration. An empty result
// means any duration of at least one second is accepted.
func (m *Manager) Presets() []time.Duration {
	return slices.Clone(m.presets)
}

// DefaultDuration is the length the timer is reset to on focus transitions.
func (m *Manager) DefaultDuration() time.Duration {
	return m.defaultDuration
}

func (m *Manager) indexLocked(id string) int {
	if id == "" {
		return -1
	}

	return slices.IndexFunc(m.todos, func(t models.Task) bool {
		return t.ID == id
	})
}

// cancelTickLocked stops the live tick source if there is one. Every
// transition that invalidates the countdown goes through here.
func (m *Manager) cancelTickLocked() {
	if m.active == nil {
		return
	}

	m.active.stop()
	m.active = nil
}

// teardownLocked leaves focus mode and restores the default timer.
func (m *Manager) teardownLocked() {
	m.cancelTickLocked()
	m.focusMode = false
	m.current = ""
	m.timer = models.NewTimer(m.defaultDuration)
}

// AddTask appends a new incomplete task. It does nothing when the title is
// blank or the priority is unknown.
func (m *Manager) AddTask(
	title string,
	priority models.Priority,
	category string,
) (models.Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" || !priority.Valid() {
		return models.Task{}, false
	}

	var task models.Task

	m.update(func() bool {
		task = models.Task{
			ID:           m.newID(),
			Title:        title,
			Priority:     priority,
			Category:     strings.TrimSpace(category),
			CreatedAt:    m.now(),
			FocusHistory: []models.FocusSession{},
		}

		m.todos = append(m.todos, task)

		return true
	})

	return task.Clone(), true
}

// ToggleCompletion flips the completed flag of a task. Completing the focused
// task also leaves focus mode; marking it incomplete again leaves focus as it
// is.
func (m *Manager) ToggleCompletion(id string) bool {
	return m.update(func() bool {
		i := m.indexLocked(id)
		if i < 0 {
			return false
		}

		task := &m.todos[i]
		task.Completed = !task.Completed

		if task.Completed && m.focusMode && m.current == id {
			m.teardownLocked()
		}

		return true
	})
}

// DeleteTask removes a task. Deleting the focused task leaves focus mode.
func (m *Manager) DeleteTask(id string) bool {
	return m.update(func() bool {
		i := m.indexLocked(id)
		if i < 0 {
			return false
		}

		m.todos = slices.Delete(m.todos, i, i+1)

		if m.current == id {
			m.teardownLocked()
		}

		return true
	})
}

// ToggleFocusMode enters focus mode on the task with the given id (or on the
// first incomplete task if id is empty, unknown or completed), or leaves focus
// mode if it is already active. Entering is a no-op when every task is
// completed.
func (m *Manager) ToggleFocusMode(id string) bool {
	return m.update(func() bool {
		if m.focusMode {
			m.teardownLocked()
			return true
		}

		target := -1

		if i := m.indexLocked(id); i >= 0 && !m.todos[i].Completed {
			target = i
		}

		if target < 0 {
			target = slices.IndexFunc(m.todos, func(t models.Task) bool {
				return !t.Completed
			})
		}

		if target < 0 {
			return false
		}

		m.cancelTickLocked()
		m.focusMode = true
		m.current = m.todos[target].ID
		m.timer = models.NewTimer(m.defaultDuration)

		return true
	})
}

func (m *Manager) allowed(d time.Duration) bool {
	if d < time.Second {
		return false
	}

	return len(m.presets) == 0 || slices.Contains(m.presets, d)
}

func (m *Manager) setDurationLocked(d time.Duration) bool {
	next := models.NewTimer(d)
	if m.active == nil && m.timer == next {
		return false
	}

	m.cancelTickLocked()
	m.timer = next

	return true
}

// SetTimerDuration stops the countdown and sets it to d. Calling it while the
// timer is running cancels the running countdown. Durations outside the
// configured presets are ignored.
func (m *Manager) SetTimerDuration(d time.Duration) bool {
	d = d.Truncate(time.Second)
	if !m.allowed(d) {
		return false
	}

	return m.update(func() bool {
		return m.setDurationLocked(d)
	})
}

// CyclePreset switches to the preset that follows the current duration.
func (m *Manager) CyclePreset() bool {
	if len(m.presets) == 0 {
		return false
	}

	return m.update(func() bool {
		i := slices.Index(m.presets, m.timer.Length())

		return m.setDurationLocked(m.presets[(i+1)%len(m.presets)])
	})
}

// StartTimer starts the countdown. It does nothing outside focus mode, while
// already running, or once the countdown has reached zero.
func (m *Manager) StartTimer() bool {
	return m.update(func() bool {
		if !m.focusMode || m.current == "" || m.timer.IsRunning ||
			m.timer.TimeLeft == 0 {
			return false
		}

		m.cancelTickLocked()

		src := &source{}
		src.handle = m.ticks.Every(tickInterval, func() {
			m.tick(src)
		})

		m.active = src
		m.timer.IsRunning = true

		return true
	})
}

// PauseTimer stops the countdown and keeps the remaining time.
func (m *Manager) PauseTimer() bool {
	return m.update(func() bool {
		if !m.timer.IsRunning {
			return false
		}

		m.cancelTickLocked()
		m.timer.IsRunning = false

		return true
	})
}

// ResetTimer stops the countdown and restores the full duration. Nothing is
// recorded for the interrupted countdown.
func (m *Manager) ResetTimer() bool {
	return m.update(func() bool {
		if m.timer.TimeLeft == m.timer.Duration {
			return false
		}

		m.cancelTickLocked()
		m.timer.IsRunning = false
		m.timer.TimeLeft = m.timer.Duration

		return true
	})
}

// tick advances the countdown by one second on behalf of src.
func (m *Manager) tick(src *source) {
	m.update(func() bool {
		if src != m.active {
			src.stop()
			return false
		}

		if !m.timer.IsRunning || m.timer.TimeLeft <= 0 {
			m.cancelTickLocked()
			return false
		}

		m.timer.TimeLeft--

		if m.timer.TimeLeft == 0 {
			m.recordSessionLocked()
			m.cancelTickLocked()
			m.timer.IsRunning = false
		}

		return true
	})
}

func (m *Manager) recordSessionLocked() {
	i := m.indexLocked(m.current)
	if i < 0 {
		return
	}

	length := m.timer.Length()

	sess := models.FocusSession{
		StartTime: m.now().Add(-length),
		Duration:  length.Minutes(),
	}

	m.todos[i].FocusHistory = append(m.todos[i].FocusHistory, sess)

	m.pending = append(m.pending, sessionEvent{
		task: m.todos[i].Clone(),
		sess: sess,
	})
}

// Reset discards all state and returns to the empty, idle store.
func (m *Manager) Reset() {
	m.update(func() bool {
		m.cancelTickLocked()
		m.load(models.NewSnapshot(m.defaultDuration))

		return true
	})
}

// Close pauses a running countdown so that no tick source outlives the
// manager.
func (m *Manager) Close() {
	m.PauseTimer()

	m.mu.Lock()
	m.cancelTickLocked()
	m.mu.Unlock()
}
