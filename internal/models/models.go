// Package models defines the tasks, focus sessions and timer state that make
// up a focustodo snapshot
package models

import (
	"slices"
	"strings"
	"time"
)

// Priority is the urgency of a task.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Priorities lists every valid priority from least to most urgent.
var Priorities = []Priority{Low, Medium, High}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// ParsePriority converts user input such as "High" or "h" to a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", string(Low):
		return Low, true
	case "m", string(Medium), "":
		return Medium, true
	case "h", string(High):
		return High, true
	}

	return "", false
}

// FocusSession is one completed countdown recorded against a task.
type FocusSession struct {
	StartTime time.Time `json:"start_time" yaml:"start_time"`
	// Duration is expressed in minutes
	Duration float64 `json:"duration" yaml:"duration"`
}

// Task is a single item on the list.
type Task struct {
	ID           string         `json:"id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	Completed    bool           `json:"completed" yaml:"completed"`
	Priority     Priority       `json:"priority" yaml:"priority"`
	Category     string         `json:"category,omitempty" yaml:"category,omitempty"`
	CreatedAt    time.Time      `json:"created_at" yaml:"created_at"`
	FocusHistory []FocusSession `json:"focus_history" yaml:"focus_history"`
}

// FocusMinutes returns the total minutes recorded against the task.
func (t *Task) FocusMinutes() float64 {
	var total float64
	for _, s := range t.FocusHistory {
		total += s.Duration
	}

	return total
}

// Clone returns a copy of the task that shares no memory with t.
func (t Task) Clone() Task {
	t.FocusHistory = slices.Clone(t.FocusHistory)
	if t.FocusHistory == nil {
		t.FocusHistory = []FocusSession{}
	}

	return t
}

// Timer is the countdown state of focus mode. TimeLeft and Duration are whole
// seconds.
type Timer struct {
	IsRunning bool `json:"is_running" yaml:"is_running"`
	TimeLeft  int  `json:"time_left" yaml:"time_left"`
	Duration  int  `json:"duration" yaml:"duration"`
}

// NewTimer returns an idle timer set to d.
func NewTimer(d time.Duration) Timer {
	secs := int(d / time.Second)

	return Timer{
		TimeLeft: secs,
		Duration: secs,
	}
}

// Length returns Duration as a time.Duration.
func (t Timer) Length() time.Duration {
	return time.Duration(t.Duration) * time.Second
}

// Progress is the fraction of the countdown that has elapsed.
func (t Timer) Progress() float64 {
	if t.Duration <= 0 {
		return 0
	}

	return float64(t.Duration-t.TimeLeft) / float64(t.Duration)
}

// Snapshot is the whole persisted state.
type Snapshot struct {
	Todos       []Task `json:"todos" yaml:"todos"`
	FocusMode   bool   `json:"focus_mode" yaml:"focus_mode"`
	CurrentTodo string `json:"current_todo" yaml:"current_todo"`
	Timer       Timer  `json:"timer" yaml:"timer"`
	// Version increases with every committed change. It is not persisted.
	Version uint64 `json:"-" yaml:"-"`
}

// NewSnapshot returns the empty, idle state.
func NewSnapshot(d time.Duration) Snapshot {
	return Snapshot{
		Todos: []Task{},
		Timer: NewTimer(d),
	}
}

// Task returns the task with the given id.
func (s *Snapshot) Task(id string) (Task, bool) {
	for i := range s.Todos {
		if s.Todos[i].ID == id {
			return s.Todos[i], true
		}
	}

	return Task{}, false
}

// Current returns the focused task, if any.
func (s *Snapshot) Current() (Task, bool) {
	if !s.FocusMode || s.CurrentTodo == "" {
		return Task{}, false
	}

	return s.Task(s.CurrentTodo)
}

// Pending returns the incomplete tasks in collection order.
func (s *Snapshot) Pending() []Task {
	var tasks []Task

	for i := range s.Todos {
		if !s.Todos[i].Completed {
			tasks = append(tasks, s.Todos[i])
		}
	}

	return tasks
}

// CompletedCount returns how many tasks are marked as completed.
func (s *Snapshot) CompletedCount() int {
	var n int

	for i := range s.Todos {
		if s.Todos[i].Completed {
			n++
		}
	}

	return n
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	todos := make([]Task, len(s.Todos))
	for i := range s.Todos {
		todos[i] = s.Todos[i].Clone()
	}

	s.Todos = todos

	return s
}
