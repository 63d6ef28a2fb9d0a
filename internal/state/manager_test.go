package state_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focustodo/internal/models"
	"github.com/ayoisaiah/focustodo/internal/state"
	"github.com/ayoisaiah/focustodo/internal/state/statetest"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	m     *state.Manager
	ticks *statetest.Ticker
}

func newFixture(t *testing.T, opts ...state.Option) *fixture {
	t.Helper()

	ticks := statetest.NewTicker()

	var n int

	base := []state.Option{
		state.WithTickSource(ticks),
		state.WithClock(func() time.Time { return testNow }),
		state.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("task-%d", n)
		}),
		state.WithPresets(5*time.Second, 15*time.Minute, 25*time.Minute),
		state.WithDefaultDuration(5 * time.Second),
	}

	m := state.New(append(base, opts...)...)

	t.Cleanup(m.Close)

	return &fixture{m: m, ticks: ticks}
}

func (f *fixture) add(t *testing.T, title string) models.Task {
	t.Helper()

	task, ok := f.m.AddTask(title, models.Medium, "")
	require.True(t, ok)

	return task
}

func (f *fixture) timer() models.Timer {
	return f.m.Snapshot().Timer
}

func TestAddTask(t *testing.T) {
	f := newFixture(t)

	task, ok := f.m.AddTask("  write report ", models.High, "work")
	require.True(t, ok)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "write report", task.Title)
	assert.Equal(t, models.High, task.Priority)
	assert.Equal(t, "work", task.Category)
	assert.Equal(t, testNow, task.CreatedAt)
	assert.False(t, task.Completed)
	assert.Empty(t, task.FocusHistory)

	snap := f.m.Snapshot()
	assert.Len(t, snap.Todos, 1)
	assert.False(t, snap.FocusMode)
	assert.Equal(t, models.NewTimer(5*time.Second), snap.Timer)
}

func TestAddTaskRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, ok := f.m.AddTask("   ", models.Low, "")
	assert.False(t, ok)

	_, ok = f.m.AddTask("title", models.Priority("urgent"), "")
	assert.False(t, ok)

	assert.Empty(t, f.m.Snapshot().Todos)
}

func TestAddTaskLeavesFocusUntouched(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())
	f.ticks.Tick()

	before := f.m.Snapshot()

	f.add(t, "B")

	after := f.m.Snapshot()
	assert.Equal(t, before.FocusMode, after.FocusMode)
	assert.Equal(t, before.CurrentTodo, after.CurrentTodo)
	assert.Equal(t, before.Timer, after.Timer)
	assert.Equal(t, 1, f.ticks.Active())
}

func TestToggleCompletionUnknownID(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A")

	before := f.m.Snapshot()

	assert.False(t, f.m.ToggleCompletion("missing"))
	assert.False(t, f.m.DeleteTask("missing"))
	assert.Equal(t, before.Version, f.m.Snapshot().Version)
}

func TestToggleCompletionOfOtherTaskKeepsFocus(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	b := f.add(t, "B")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())

	require.True(t, f.m.ToggleCompletion(b.ID))

	snap := f.m.Snapshot()
	assert.True(t, snap.FocusMode)
	assert.Equal(t, a.ID, snap.CurrentTodo)
	assert.True(t, snap.Timer.IsRunning)
	assert.Equal(t, 1, f.ticks.Active())
}

func TestFocusTeardownOnCompletion(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.SetTimerDuration(15*time.Minute))
	require.True(t, f.m.StartTimer())
	f.ticks.TickN(3)

	require.True(t, f.m.ToggleCompletion(a.ID))

	snap := f.m.Snapshot()
	assert.False(t, snap.FocusMode)
	assert.Empty(t, snap.CurrentTodo)
	assert.Equal(t, models.NewTimer(5*time.Second), snap.Timer)
	assert.Equal(t, 0, f.ticks.Active())

	task, _ := f.m.Task(a.ID)
	assert.True(t, task.Completed)

	// callbacks from the cancelled source must not change anything
	f.ticks.TickOrphans()
	f.ticks.TickOrphans()

	assert.Empty(t, cmp.Diff(snap, f.m.Snapshot()))
}

func TestUncompletingDoesNotRestoreFocus(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	f.add(t, "B")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())

	require.True(t, f.m.ToggleCompletion(a.ID))
	require.True(t, f.m.ToggleCompletion(a.ID))

	snap := f.m.Snapshot()
	assert.False(t, snap.FocusMode)

	task, _ := f.m.Task(a.ID)
	assert.False(t, task.Completed)
}

// focusedOnCompleted is a persisted state in which the focused task is
// already marked as completed.
func focusedOnCompleted() models.Snapshot {
	return models.Snapshot{
		Todos: []models.Task{
			{ID: "a", Title: "A", Priority: models.Low, Completed: true},
		},
		FocusMode:   true,
		CurrentTodo: "a",
		Timer:       models.Timer{TimeLeft: 3, Duration: 5},
	}
}

func TestUncompletingFocusedTaskKeepsFocus(t *testing.T) {
	f := newFixture(t, state.WithSnapshot(focusedOnCompleted()))

	require.True(t, f.m.ToggleCompletion("a"))

	snap := f.m.Snapshot()
	assert.False(t, snap.Todos[0].Completed)
	assert.True(t, snap.FocusMode)
	assert.Equal(t, "a", snap.CurrentTodo)
	assert.Equal(t, models.Timer{TimeLeft: 3, Duration: 5}, snap.Timer)
}

func TestDeletionTeardown(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	b := f.add(t, "B")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())
	f.ticks.TickN(2)

	require.True(t, f.m.DeleteTask(a.ID))

	snap := f.m.Snapshot()
	assert.False(t, snap.FocusMode)
	assert.Empty(t, snap.CurrentTodo)
	assert.Equal(t, models.NewTimer(5*time.Second), snap.Timer)
	assert.Equal(t, 0, f.ticks.Active())
	require.Len(t, snap.Todos, 1)
	assert.Equal(t, b.ID, snap.Todos[0].ID)

	f.ticks.TickOrphans()

	assert.Empty(t, cmp.Diff(snap, f.m.Snapshot()))
}

func TestDeletingCompletedFocusedTask(t *testing.T) {
	f := newFixture(t, state.WithSnapshot(focusedOnCompleted()))

	require.True(t, f.m.DeleteTask("a"))

	snap := f.m.Snapshot()
	assert.False(t, snap.FocusMode)
	assert.Empty(t, snap.CurrentTodo)
	assert.Empty(t, snap.Todos)
	assert.Equal(t, models.NewTimer(5*time.Second), snap.Timer)
}

func TestAutoFocusSelection(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	b := f.add(t, "B")
	f.add(t, "C")

	require.True(t, f.m.ToggleCompletion(a.ID))

	require.True(t, f.m.ToggleFocusMode(""))

	snap := f.m.Snapshot()
	assert.True(t, snap.FocusMode)
	assert.Equal(t, b.ID, snap.CurrentTodo)

	current, ok := f.m.CurrentTask()
	require.True(t, ok)
	assert.Equal(t, "B", current.Title)
}

func TestFocusOnSpecificTask(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	c := f.add(t, "C")

	require.True(t, f.m.ToggleFocusMode(c.ID))
	assert.Equal(t, c.ID, f.m.Snapshot().CurrentTodo)

	// the id is ignored once focused: the call exits
	require.True(t, f.m.ToggleFocusMode(a.ID))
	assert.False(t, f.m.Snapshot().FocusMode)
}

func TestFocusOnCompletedTaskFallsBack(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	b := f.add(t, "B")

	require.True(t, f.m.ToggleCompletion(a.ID))
	require.True(t, f.m.ToggleFocusMode(a.ID))

	assert.Equal(t, b.ID, f.m.Snapshot().CurrentTodo)
}

func TestIdempotentExit(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")

	require.True(t, f.m.ToggleCompletion(a.ID))

	before := f.m.Snapshot()

	assert.False(t, f.m.ToggleFocusMode(""))
	assert.False(t, f.m.ToggleFocusMode(""))
	assert.Empty(t, cmp.Diff(before, f.m.Snapshot()))

	empty := newFixture(t)
	assert.False(t, empty.m.ToggleFocusMode(""))
	assert.False(t, empty.m.Snapshot().FocusMode)
}

func TestExitFocusRegardlessOfTimerState(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(f *fixture)
	}{
		{name: "idle", prepare: func(*fixture) {}},
		{name: "running", prepare: func(f *fixture) {
			f.m.StartTimer()
			f.ticks.Tick()
		}},
		{name: "paused", prepare: func(f *fixture) {
			f.m.StartTimer()
			f.ticks.Tick()
			f.m.PauseTimer()
		}},
		{name: "finished", prepare: func(f *fixture) {
			f.m.StartTimer()
			f.ticks.TickN(5)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.add(t, "A")

			require.True(t, f.m.ToggleFocusMode(""))
			tc.prepare(f)

			require.True(t, f.m.ToggleFocusMode(""))

			snap := f.m.Snapshot()
			assert.False(t, snap.FocusMode)
			assert.Empty(t, snap.CurrentTodo)
			assert.Equal(t, models.NewTimer(5*time.Second), snap.Timer)
			assert.Equal(t, 0, f.ticks.Active())
		})
	}
}

func TestSessionRecording(t *testing.T) {
	var (
		hooked []models.FocusSession
		mu     sync.Mutex
	)

	f := newFixture(t, state.WithSessionHook(
		func(task models.Task, sess models.FocusSession) {
			mu.Lock()
			defer mu.Unlock()

			hooked = append(hooked, sess)

			assert.Equal(t, "A", task.Title)
		},
	))
	a := f.add(t, "A")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())

	f.ticks.TickN(5)

	snap := f.m.Snapshot()
	assert.False(t, snap.Timer.IsRunning)
	assert.Equal(t, 0, snap.Timer.TimeLeft)
	assert.Equal(t, 0, f.ticks.Active())
	assert.True(t, snap.FocusMode, "focus mode survives a finished session")

	task, _ := f.m.Task(a.ID)
	require.Len(t, task.FocusHistory, 1)
	assert.InDelta(t, 5.0/60, task.FocusHistory[0].Duration, 1e-9)
	assert.Equal(t, testNow.Add(-5*time.Second), task.FocusHistory[0].StartTime)
	assert.InDelta(t, 5.0/60, task.FocusMinutes(), 1e-9)

	// further ticks, live or stray, cannot record a second session
	f.ticks.TickN(3)
	f.ticks.TickOrphans()

	task, _ = f.m.Task(a.ID)
	assert.Len(t, task.FocusHistory, 1)
	assert.Len(t, hooked, 1)

	// a finished countdown cannot be restarted until it is reset
	assert.False(t, f.m.StartTimer())
	assert.True(t, f.m.ResetTimer())
	assert.True(t, f.m.StartTimer())
}

func TestNoPartialSessions(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())
	f.ticks.TickN(2)

	assert.Equal(t, 3, f.timer().TimeLeft)

	require.True(t, f.m.ResetTimer())

	timer := f.timer()
	assert.Equal(t, timer.Duration, timer.TimeLeft)
	assert.False(t, timer.IsRunning)
	assert.Equal(t, 0, f.ticks.Active())

	task, _ := f.m.Task(a.ID)
	assert.Empty(t, task.FocusHistory)
}

func TestPauseKeepsTimeLeft(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")

	require.True(t, f.m.ToggleFocusMode(a.ID))

	assert.False(t, f.m.PauseTimer(), "pausing an idle timer is a no-op")

	require.True(t, f.m.StartTimer())
	f.ticks.TickN(2)
	require.True(t, f.m.PauseTimer())

	assert.False(t, f.timer().IsRunning)
	assert.Equal(t, 3, f.timer().TimeLeft)
	assert.Equal(t, 0, f.ticks.Active())

	f.ticks.TickOrphans()
	assert.Equal(t, 3, f.timer().TimeLeft)

	// resuming continues from where the countdown stopped
	require.True(t, f.m.StartTimer())
	f.ticks.TickN(3)

	task, _ := f.m.Task(a.ID)
	assert.Len(t, task.FocusHistory, 1)
}

func TestResetIsNoOpAtFullDuration(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")

	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())

	// nothing has elapsed yet, so the running countdown is left alone
	assert.False(t, f.m.ResetTimer())
	assert.True(t, f.timer().IsRunning)
	assert.Equal(t, 1, f.ticks.Active())
}

func TestStartTimerGuards(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.m.StartTimer(), "no focused task")
	assert.Equal(t, 0, f.ticks.Created())

	f.add(t, "A")
	require.True(t, f.m.ToggleFocusMode(""))

	require.True(t, f.m.StartTimer())
	assert.False(t, f.m.StartTimer(), "already running")
	assert.Equal(t, 1, f.ticks.Created())
}

func TestSetTimerDuration(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A")
	require.True(t, f.m.ToggleFocusMode(""))

	assert.False(t, f.m.SetTimerDuration(7*time.Minute), "not a preset")
	assert.False(t, f.m.SetTimerDuration(0))

	require.True(t, f.m.SetTimerDuration(15*time.Minute))
	assert.Equal(t, models.NewTimer(15*time.Minute), f.timer())

	assert.False(t, f.m.SetTimerDuration(15*time.Minute), "unchanged")
}

func TestSetTimerDurationWhileRunningCancels(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	require.True(t, f.m.ToggleFocusMode(a.ID))
	require.True(t, f.m.StartTimer())
	f.ticks.TickN(2)

	require.True(t, f.m.SetTimerDuration(25*time.Minute))

	assert.Equal(t, models.NewTimer(25*time.Minute), f.timer())
	assert.Equal(t, 0, f.ticks.Active())

	f.ticks.TickOrphans()
	assert.Equal(t, models.NewTimer(25*time.Minute), f.timer())
}

func TestCyclePreset(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A")
	require.True(t, f.m.ToggleFocusMode(""))

	want := []time.Duration{15 * time.Minute, 25 * time.Minute, 5 * time.Second}

	for _, d := range want {
		require.True(t, f.m.CyclePreset())
		assert.Equal(t, d, f.timer().Length())
	}
}

func TestDefaultDurationJoinsPresets(t *testing.T) {
	m := state.New(
		state.WithTickSource(statetest.NewTicker()),
		state.WithPresets(15*time.Minute, 45*time.Minute),
		state.WithDefaultDuration(30*time.Minute),
	)

	assert.Equal(
		t,
		[]time.Duration{15 * time.Minute, 30 * time.Minute, 45 * time.Minute},
		m.Presets(),
	)
	assert.Equal(t, 30*time.Minute, m.DefaultDuration())
	assert.Equal(t, models.NewTimer(30*time.Minute), m.Snapshot().Timer)
}

// TestSingleSourceInvariant drives the manager through every action that
// touches the countdown and checks that there is never more than one live
// tick source and that N ticks remove exactly N seconds.
func TestSingleSourceInvariant(t *testing.T) {
	f := newFixture(t, state.WithDefaultDuration(25*time.Minute))
	a := f.add(t, "A")
	b := f.add(t, "B")

	check := func(step string) {
		t.Helper()

		assert.LessOrEqual(t, f.ticks.Active(), 1, step)

		if f.timer().IsRunning {
			assert.Equal(t, 1, f.ticks.Active(), step)
		} else {
			assert.Equal(t, 0, f.ticks.Active(), step)
		}
	}

	steps := []struct {
		name string
		fn   func()
	}{
		{"focus", func() { f.m.ToggleFocusMode(a.ID) }},
		{"start", func() { f.m.StartTimer() }},
		{"start again", func() { f.m.StartTimer() }},
		{"pause", func() { f.m.PauseTimer() }},
		{"start after pause", func() { f.m.StartTimer() }},
		{"set duration", func() { f.m.SetTimerDuration(15 * time.Minute) }},
		{"start after duration", func() { f.m.StartTimer() }},
		{"reset", func() { f.m.ResetTimer() }},
		{"start after reset", func() { f.m.StartTimer() }},
		{"complete other", func() { f.m.ToggleCompletion(b.ID) }},
		{"exit focus", func() { f.m.ToggleFocusMode("") }},
		{"enter focus", func() { f.m.ToggleFocusMode("") }},
		{"start in new focus", func() { f.m.StartTimer() }},
		{"delete focused", func() { f.m.DeleteTask(a.ID) }},
		{"start without focus", func() { f.m.StartTimer() }},
	}

	for _, step := range steps {
		step.fn()
		check(step.name)

		if !f.timer().IsRunning {
			continue
		}

		before := f.timer().TimeLeft

		f.ticks.TickN(4)

		assert.Equal(t, before-4, f.timer().TimeLeft, step.name)

		// stray callbacks from cancelled sources never decrement
		f.ticks.TickOrphans()
		assert.Equal(t, before-5, f.timer().TimeLeft, step.name)

		check(step.name)
	}
}

func TestObserversSeeEveryCommit(t *testing.T) {
	var versions []uint64

	f := newFixture(t, state.WithObserver(func(s models.Snapshot) {
		versions = append(versions, s.Version)
	}))

	var seen int

	stop := f.m.Observe(func(models.Snapshot) {
		seen++
	})

	a := f.add(t, "A")
	f.m.ToggleFocusMode(a.ID)
	f.m.PauseTimer() // no-op, not published
	f.m.StartTimer()
	f.ticks.TickN(2)

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, versions)
	assert.Equal(t, 5, seen)

	stop()
	f.m.PauseTimer()

	assert.Equal(t, 5, seen)
	assert.Len(t, versions, 6)
}

func TestObserverMayCallBack(t *testing.T) {
	ticks := statetest.NewTicker()

	var m *state.Manager

	m = state.New(
		state.WithTickSource(ticks),
		state.WithObserver(func(s models.Snapshot) {
			// reading from inside an observer must not deadlock
			_ = m.Snapshot()
		}),
	)

	_, ok := m.AddTask("A", models.Low, "")
	assert.True(t, ok)
}

func TestRehydrateNormalises(t *testing.T) {
	persisted := models.Snapshot{
		Todos: []models.Task{
			{ID: "a", Title: "A", Priority: models.Low},
		},
		FocusMode:   true,
		CurrentTodo: "a",
		Timer:       models.Timer{IsRunning: true, TimeLeft: 900, Duration: 600},
	}

	f := newFixture(t, state.WithSnapshot(persisted))

	snap := f.m.Snapshot()
	assert.True(t, snap.FocusMode)
	assert.Equal(t, "a", snap.CurrentTodo)
	assert.Equal(t, models.Timer{TimeLeft: 600, Duration: 600}, snap.Timer)
	assert.NotNil(t, snap.Todos[0].FocusHistory)
	assert.Equal(t, 0, f.ticks.Active())

	// the restored countdown can be resumed
	require.True(t, f.m.StartTimer())
	f.ticks.Tick()
	assert.Equal(t, 599, f.timer().TimeLeft)
}

func TestRehydrateDropsDanglingFocus(t *testing.T) {
	persisted := models.Snapshot{
		Todos:       []models.Task{{ID: "a", Title: "A", Priority: models.Low}},
		FocusMode:   true,
		CurrentTodo: "gone",
		Timer:       models.Timer{TimeLeft: 10, Duration: 60},
	}

	f := newFixture(t, state.WithSnapshot(persisted))

	snap := f.m.Snapshot()
	assert.False(t, snap.FocusMode)
	assert.Empty(t, snap.CurrentTodo)
	assert.Equal(t, models.NewTimer(5*time.Second), snap.Timer)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "A")
	f.m.ToggleFocusMode(a.ID)
	f.m.StartTimer()

	f.m.Reset()

	snap := f.m.Snapshot()
	assert.Empty(t, snap.Todos)
	assert.False(t, snap.FocusMode)
	assert.Equal(t, 0, f.ticks.Active())
}

func TestRealTicksCountDown(t *testing.T) {
	if testing.Short() {
		t.Skip("uses the wall clock")
	}

	done := make(chan struct{})

	m := state.New(
		state.WithPresets(2*time.Second),
		state.WithDefaultDuration(2*time.Second),
		state.WithSessionHook(func(models.Task, models.FocusSession) {
			close(done)
		}),
	)
	defer m.Close()

	a, _ := m.AddTask("A", models.Medium, "")
	require.True(t, m.ToggleFocusMode(a.ID))
	require.True(t, m.StartTimer())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("countdown did not finish")
	}

	task, _ := m.Task(a.ID)
	assert.Len(t, task.FocusHistory, 1)
	assert.False(t, m.Snapshot().Timer.IsRunning)
}
